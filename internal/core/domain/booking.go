package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingSeat     BookingType = "seat"
	BookingWholeCar BookingType = "whole_car"
	BookingCharter  BookingType = "charter"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Booking is a reservation against a trip, or a standalone charter request
// when TripID is nil. Price is stamped at creation from the rates in effect
// and is never recomputed when pricing rules change afterwards.
type Booking struct {
	ID               uuid.UUID
	CustomerID       *uuid.UUID
	CustomerName     string
	CustomerPhone    string
	TripID           *uuid.UUID
	Type             BookingType
	PickupLocation   string
	DropoffLocation  string
	ScheduledTime    time.Time
	SeatsBooked      int
	Price            *float64
	Status           BookingStatus
	AssignedDriverID *uuid.UUID
	Notes            string
	SpecialRequests  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
}

func (b *Booking) IsCharter() bool {
	return b.Type == BookingCharter
}
