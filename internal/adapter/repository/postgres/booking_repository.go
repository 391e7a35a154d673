package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, customer_id, customer_name, customer_phone, trip_id, booking_type,
	pickup_location, dropoff_location, scheduled_time, seats_booked, price,
	status, assigned_driver_id, notes, special_requests, created_at,
	updated_at, confirmed_at, completed_at
`

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		nullUUID(b.CustomerID),
		b.CustomerName,
		b.CustomerPhone,
		nullUUID(b.TripID),
		b.Type,
		b.PickupLocation,
		b.DropoffLocation,
		b.ScheduledTime,
		b.SeatsBooked,
		nullFloat(b.Price),
		b.Status,
		nullUUID(b.AssignedDriverID),
		b.Notes,
		b.SpecialRequests,
		b.CreatedAt,
		b.UpdatedAt,
		nullTime(b.ConfirmedAt),
		nullTime(b.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `
	UPDATE bookings
	SET trip_id = $1,
		price = $2,
		status = $3,
		assigned_driver_id = $4,
		notes = $5,
		updated_at = $6,
		confirmed_at = $7,
		completed_at = $8
	WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		nullUUID(b.TripID),
		nullFloat(b.Price),
		b.Status,
		nullUUID(b.AssignedDriverID),
		b.Notes,
		b.UpdatedAt,
		nullTime(b.ConfirmedAt),
		nullTime(b.CompletedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	return requireRow(result)
}

func (r *BookingRepository) ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
}

func (r *BookingRepository) ByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE assigned_driver_id = $1 ORDER BY created_at DESC`,
		driverID)
}

func (r *BookingRepository) ByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE trip_id = $1 ORDER BY created_at DESC`,
		tripID)
}

func (r *BookingRepository) ByStatus(ctx context.Context, status domain.BookingStatus, limit int) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY created_at DESC LIMIT $2`,
		status, limit)
}

func (r *BookingRepository) PendingCharters(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE booking_type = 'charter' AND status = 'pending' AND trip_id IS NULL
		 ORDER BY created_at DESC`)
}

func (r *BookingRepository) All(ctx context.Context, limit int) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC LIMIT $1`,
		limit)
}

func (r *BookingRepository) CountByRouteSince(ctx context.Context, origin, destination string, since time.Time) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM bookings
	WHERE pickup_location = $1 AND dropoff_location = $2 AND created_at >= $3
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, origin, destination, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings by route: %w", err)
	}

	return count, nil
}

func (r *BookingRepository) PendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE status = 'pending' AND created_at < $1
		 ORDER BY created_at
		 LIMIT $2`,
		cutoff, limit)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var customerID, tripID, driverID sql.NullString
	var price sql.NullFloat64
	var confirmedAt, completedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&customerID,
		&b.CustomerName,
		&b.CustomerPhone,
		&tripID,
		&b.Type,
		&b.PickupLocation,
		&b.DropoffLocation,
		&b.ScheduledTime,
		&b.SeatsBooked,
		&price,
		&b.Status,
		&driverID,
		&b.Notes,
		&b.SpecialRequests,
		&b.CreatedAt,
		&b.UpdatedAt,
		&confirmedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.CustomerID, err = parseNullUUID(customerID); err != nil {
		return nil, err
	}
	if b.TripID, err = parseNullUUID(tripID); err != nil {
		return nil, err
	}
	if b.AssignedDriverID, err = parseNullUUID(driverID); err != nil {
		return nil, err
	}
	if price.Valid {
		b.Price = &price.Float64
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}

	return &b, nil
}

func parseNullUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, fmt.Errorf("bad uuid %q: %w", v.String, err)
	}
	return &id, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
