package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

type CreateTripRequest struct {
	DriverID       uuid.UUID
	VehicleID      *uuid.UUID
	Origin         string
	Destination    string
	DepartureTime  time.Time
	AvailableSeats int
	PricePerSeat   float64
	WholeCarPrice  float64
	Notes          string
	Waypoints      []string
}

func (r CreateTripRequest) validate() error {
	if len(r.Origin) < 2 {
		return domain.ValidationError{Field: "origin", Msg: "too short"}
	}
	if len(r.Destination) < 2 {
		return domain.ValidationError{Field: "destination", Msg: "too short"}
	}
	if r.AvailableSeats < 1 || r.AvailableSeats > 50 {
		return domain.ValidationError{Field: "available_seats", Msg: "must be between 1 and 50"}
	}
	if r.PricePerSeat <= 0 {
		return domain.ValidationError{Field: "price_per_seat", Msg: "must be positive"}
	}
	if r.WholeCarPrice <= 0 {
		return domain.ValidationError{Field: "whole_car_price", Msg: "must be positive"}
	}
	return nil
}

// TripService manages driver-published trips. Seat counters are off limits
// here; only the inventory service touches them.
type TripService struct {
	trips    ports.TripRepository
	bookings ports.BookingRepository
}

func NewTripService(trips ports.TripRepository, bookings ports.BookingRepository) *TripService {
	return &TripService{trips: trips, bookings: bookings}
}

func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip := &domain.Trip{
		ID:             uuid.New(),
		DriverID:       req.DriverID,
		VehicleID:      req.VehicleID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		BookedSeats:    0,
		PricePerSeat:   req.PricePerSeat,
		WholeCarPrice:  req.WholeCarPrice,
		Status:         domain.TripScheduled,
		Notes:          req.Notes,
		Waypoints:      req.Waypoints,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

type TripUpdate struct {
	DepartureTime *time.Time
	PricePerSeat  *float64
	WholeCarPrice *float64
	Status        *domain.TripStatus
	Notes         *string
}

func (s *TripService) Update(ctx context.Context, id uuid.UUID, upd TripUpdate) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.DepartureTime != nil {
		trip.DepartureTime = *upd.DepartureTime
	}
	if upd.PricePerSeat != nil {
		if *upd.PricePerSeat <= 0 {
			return nil, domain.ValidationError{Field: "price_per_seat", Msg: "must be positive"}
		}
		trip.PricePerSeat = *upd.PricePerSeat
	}
	if upd.WholeCarPrice != nil {
		if *upd.WholeCarPrice <= 0 {
			return nil, domain.ValidationError{Field: "whole_car_price", Msg: "must be positive"}
		}
		trip.WholeCarPrice = *upd.WholeCarPrice
	}
	if upd.Status != nil {
		trip.Status = *upd.Status
	}
	if upd.Notes != nil {
		trip.Notes = *upd.Notes
	}
	trip.UpdatedAt = time.Now().UTC()

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Delete removes a trip, refused while bookings still reference it in any
// state other than cancelled.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.bookings.ByTrip(ctx, id)
	if err != nil {
		return err
	}
	for i := range refs {
		if refs[i].Status != domain.BookingCancelled {
			return domain.ErrTripHasBookings
		}
	}
	return s.trips.Delete(ctx, id)
}

func (s *TripService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	switch status {
	case domain.TripScheduled, domain.TripInProgress, domain.TripCompleted, domain.TripCancelled:
	default:
		return domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	return s.trips.UpdateStatus(ctx, id, status)
}

func (s *TripService) Search(ctx context.Context, q domain.TripSearch) ([]domain.Trip, error) {
	if q.MinSeats < 1 {
		q.MinSeats = 1
	}
	return s.trips.Search(ctx, q)
}

func (s *TripService) Upcoming(ctx context.Context, limit int) ([]domain.Trip, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.trips.Upcoming(ctx, limit)
}

func (s *TripService) ByDriver(ctx context.Context, driverID uuid.UUID, includePast bool) ([]domain.Trip, error) {
	return s.trips.ByDriver(ctx, driverID, includePast)
}
