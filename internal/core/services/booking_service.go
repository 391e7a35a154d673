package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

type CreateBookingRequest struct {
	CustomerID      *uuid.UUID
	CustomerName    string
	CustomerPhone   string
	TripID          *uuid.UUID
	Type            domain.BookingType
	PickupLocation  string
	DropoffLocation string
	ScheduledTime   time.Time
	Seats           int
	Notes           string
	SpecialRequests string
}

func (r CreateBookingRequest) validate() error {
	if len(r.CustomerName) < 2 {
		return domain.ValidationError{Field: "customer_name", Msg: "too short"}
	}
	if len(r.CustomerPhone) < 10 {
		return domain.ValidationError{Field: "customer_phone", Msg: "too short"}
	}
	if r.Seats < 1 {
		return domain.ValidationError{Field: "seats", Msg: "must book at least one seat"}
	}
	switch r.Type {
	case domain.BookingSeat, domain.BookingWholeCar, domain.BookingCharter:
	default:
		return domain.ValidationError{Field: "booking_type", Msg: "unknown type"}
	}
	if r.Type == domain.BookingCharter && r.TripID != nil {
		return domain.ValidationError{Field: "trip_id", Msg: "charter requests carry no trip"}
	}
	if r.Type != domain.BookingCharter && r.TripID == nil {
		return domain.ValidationError{Field: "trip_id", Msg: "required for trip bookings"}
	}
	return nil
}

// BookingService drives booking creation, cancellation and lifecycle. Seats
// are reserved before the booking record exists and handed back if the insert
// fails, so the counters never drift from the bookings that own them.
type BookingService struct {
	bookings   ports.BookingRepository
	trips      ports.TripRepository
	inventory  *InventoryService
	pricing    *PricingService
	pendingTTL time.Duration
}

func NewBookingService(
	bookings ports.BookingRepository,
	trips ports.TripRepository,
	inventory *InventoryService,
	pricing *PricingService,
	pendingTTL time.Duration,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		trips:      trips,
		inventory:  inventory,
		pricing:    pricing,
		pendingTTL: pendingTTL,
	}
}

func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:              uuid.New(),
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		TripID:          req.TripID,
		Type:            req.Type,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		ScheduledTime:   req.ScheduledTime,
		SeatsBooked:     req.Seats,
		Status:          domain.BookingPending,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.TripID != nil {
		trip, err := s.trips.GetByID(ctx, *req.TripID)
		if err != nil {
			return nil, err
		}
		if !trip.IsBookable() {
			return nil, domain.ErrTripNotBookable
		}

		var price float64
		if req.Type == domain.BookingWholeCar {
			taken, err := s.inventory.ReserveWholeCar(ctx, trip.ID)
			if err != nil {
				return nil, err
			}
			booking.SeatsBooked = taken
			price = trip.WholeCarPrice
		} else {
			if err := s.inventory.ReserveSeats(ctx, trip.ID, req.Seats); err != nil {
				return nil, err
			}
			price = trip.PricePerSeat * float64(req.Seats)
		}
		price = domain.Round2(price)
		booking.Price = &price
	} else {
		// Charter requests have no trip rates yet; quote the route with the
		// pricing engine at the requested time.
		calc, err := s.pricing.CalculatePrice(ctx, req.PickupLocation, req.DropoffLocation, req.ScheduledTime)
		if err != nil {
			return nil, err
		}
		booking.Price = &calc.FinalPrice
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if req.TripID != nil {
			s.rollbackReservation(ctx, *req.TripID, booking.SeatsBooked)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return booking, nil
}

func (s *BookingService) rollbackReservation(ctx context.Context, tripID uuid.UUID, seats int) {
	if err := s.inventory.ReleaseSeats(ctx, tripID, seats); err != nil {
		log.Printf("failed to roll back %d reserved seats on trip %s: %v", seats, tripID, err)
	}
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Cancel marks the booking cancelled and releases any trip seats it held.
// Cancelling an already-cancelled booking is a no-op.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == domain.BookingCancelled {
		return nil
	}

	if booking.TripID != nil {
		if err := s.inventory.ReleaseSeats(ctx, *booking.TripID, booking.SeatsBooked); err != nil {
			return err
		}
	}

	booking.Status = domain.BookingCancelled
	booking.UpdatedAt = time.Now().UTC()
	return s.bookings.Update(ctx, booking)
}

// UpdateStatus advances the booking lifecycle, stamping confirmed_at and
// completed_at on those transitions. Cancellation goes through Cancel so the
// seat release cannot be skipped.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if status == domain.BookingCancelled {
		if err := s.Cancel(ctx, id); err != nil {
			return nil, err
		}
		return s.bookings.GetByID(ctx, id)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking.Status = status
	booking.UpdatedAt = now
	switch status {
	case domain.BookingConfirmed:
		booking.ConfirmedAt = &now
	case domain.BookingCompleted:
		booking.CompletedAt = &now
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// AssignDriver attaches a driver to a booking (typically a pending charter),
// optionally binding it to a trip and overriding the price, and confirms it.
// Binding to a trip reserves the booking's seats on it, so a later Cancel
// releases seats the booking actually holds.
func (s *BookingService) AssignDriver(ctx context.Context, id, driverID uuid.UUID, tripID *uuid.UUID, price *float64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reserved := false
	if tripID != nil {
		if booking.TripID != nil && *booking.TripID != *tripID {
			return nil, domain.ValidationError{Field: "trip_id", Msg: "booking is already bound to a trip"}
		}
		if booking.TripID == nil {
			if err := s.inventory.ReserveSeats(ctx, *tripID, booking.SeatsBooked); err != nil {
				return nil, err
			}
			reserved = true
			booking.TripID = tripID
		}
	}

	now := time.Now().UTC()
	booking.AssignedDriverID = &driverID
	booking.Status = domain.BookingConfirmed
	booking.ConfirmedAt = &now
	booking.UpdatedAt = now
	if price != nil {
		rounded := domain.Round2(*price)
		booking.Price = &rounded
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		if reserved {
			s.rollbackReservation(ctx, *tripID, booking.SeatsBooked)
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ByCustomer(ctx, customerID)
}

func (s *BookingService) ByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ByDriver(ctx, driverID)
}

func (s *BookingService) ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ByTrip(ctx, tripID)
}

func (s *BookingService) PendingCharters(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.PendingCharters(ctx)
}

func (s *BookingService) List(ctx context.Context, status *domain.BookingStatus, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	if status != nil {
		return s.bookings.ByStatus(ctx, *status, limit)
	}
	return s.bookings.All(ctx, limit)
}

// RunExpiryWorker cancels PENDING bookings older than the configured TTL,
// releasing their seats. Runs until ctx is done.
func (s *BookingService) RunExpiryWorker(ctx context.Context) {
	if s.pendingTTL <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Printf("booking expiry worker started (ttl %s)", s.pendingTTL)

	for {
		select {
		case <-ctx.Done():
			log.Println("booking expiry worker stopped")
			return
		case <-ticker.C:
			s.expirePending(ctx)
		}
	}
}

func (s *BookingService) expirePending(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.pendingTTL)
	stale, err := s.bookings.PendingOlderThan(ctx, cutoff, 100)
	if err != nil {
		log.Printf("fetching stale pending bookings: %v", err)
		return
	}

	for i := range stale {
		if err := s.Cancel(ctx, stale[i].ID); err != nil {
			log.Printf("expiring booking %s: %v", stale[i].ID, err)
			continue
		}
		log.Printf("booking %s expired and seats released", stale[i].ID)
	}
}
