package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guzoride/guzo/internal/core/domain"
)

// TripRepository owns trip persistence. ReserveSeats, ReserveAllSeats and
// ReleaseSeats are the only writers of the seat counters, and each must apply
// its check-then-update as one atomic storage operation so that concurrent
// reservations can never push booked_seats past available_seats.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q domain.TripSearch) ([]domain.Trip, error)
	Upcoming(ctx context.Context, limit int) ([]domain.Trip, error)
	ByDriver(ctx context.Context, driverID uuid.UUID, includePast bool) ([]domain.Trip, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error

	// ReserveSeats increments booked_seats by seats iff the trip is bookable
	// and at least that many seats remain; otherwise it fails with
	// ErrInsufficientSeats / ErrTripNotBookable / ErrNotFound.
	ReserveSeats(ctx context.Context, tripID uuid.UUID, seats int) error

	// ReserveAllSeats books out the whole trip (booked_seats =
	// available_seats) iff no seats are currently booked, returning the seat
	// count taken so cancellation can restore it.
	ReserveAllSeats(ctx context.Context, tripID uuid.UUID) (int, error)

	// ReleaseSeats decrements booked_seats by seats, clamped at zero.
	ReleaseSeats(ctx context.Context, tripID uuid.UUID, seats int) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Booking, error)
	ByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error)
	ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Booking, error)
	ByStatus(ctx context.Context, status domain.BookingStatus, limit int) ([]domain.Booking, error)
	PendingCharters(ctx context.Context) ([]domain.Booking, error)
	All(ctx context.Context, limit int) ([]domain.Booking, error)

	// CountByRouteSince counts bookings created for the route after the given
	// instant; feeds the demand-based surge recommendation.
	CountByRouteSince(ctx context.Context, origin, destination string, since time.Time) (int, error)

	// PendingOlderThan lists PENDING bookings created before the cutoff, for
	// the expiry worker.
	PendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error)
	ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error)
	ByStatus(ctx context.Context, status domain.PaymentStatus, limit int) ([]domain.Payment, error)

	// CompletedBetween lists completed payments with completed_at in
	// [start, end); feeds the earnings report.
	CompletedBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	ByDriver(ctx context.Context, driverID uuid.UUID, activeOnly bool) ([]domain.Vehicle, error)
	PlateExists(ctx context.Context, plateNumber string) (bool, error)
}

type PricingRuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error)
	// ActiveByRoute returns the active rule for the exact route, or
	// ErrNotFound when the route has none.
	ActiveByRoute(ctx context.Context, origin, destination string) (*domain.PricingRule, error)
	All(ctx context.Context) ([]domain.PricingRule, error)
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SurgeRepository interface {
	Create(ctx context.Context, surge *domain.SurgeMultiplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SurgeMultiplier, error)
	// ActiveForRoute returns active surges whose window contains at and whose
	// route key is the given key or the wildcard.
	ActiveForRoute(ctx context.Context, routeKey string, at time.Time) ([]domain.SurgeMultiplier, error)
	All(ctx context.Context, activeOnly bool) ([]domain.SurgeMultiplier, error)
	Update(ctx context.Context, surge *domain.SurgeMultiplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
