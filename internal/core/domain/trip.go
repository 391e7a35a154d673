package domain

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripScheduled  TripStatus = "scheduled"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

// Trip is a driver-published scheduled route offering seats or the whole
// vehicle. Seat accounting lives in the two counters: booked_seats may never
// exceed available_seats, and only reserve/release operations mutate it.
type Trip struct {
	ID               uuid.UUID
	DriverID         uuid.UUID
	VehicleID        *uuid.UUID
	Origin           string
	Destination      string
	DepartureTime    time.Time
	EstimatedArrival *time.Time
	AvailableSeats   int
	BookedSeats      int
	PricePerSeat     float64
	WholeCarPrice    float64
	Status           TripStatus
	Notes            string
	Waypoints        []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (t *Trip) RemainingSeats() int {
	return t.AvailableSeats - t.BookedSeats
}

func (t *Trip) IsFull() bool {
	return t.BookedSeats >= t.AvailableSeats
}

func (t *Trip) IsBookable() bool {
	return t.Status == TripScheduled
}

// TripSearch filters trip lookups. Zero values mean "any".
type TripSearch struct {
	Origin      string
	Destination string
	Date        *time.Time
	MinSeats    int
}
