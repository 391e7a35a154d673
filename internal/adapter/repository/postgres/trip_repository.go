package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/guzoride/guzo/internal/core/domain"
)

type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `
	id, driver_id, vehicle_id, origin, destination, departure_time,
	estimated_arrival, available_seats, booked_seats, price_per_seat,
	whole_car_price, status, notes, waypoints, created_at, updated_at
`

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
	INSERT INTO trips (` + tripColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		nullUUID(trip.VehicleID),
		trip.Origin,
		trip.Destination,
		trip.DepartureTime,
		nullTime(trip.EstimatedArrival),
		trip.AvailableSeats,
		trip.BookedSeats,
		trip.PricePerSeat,
		trip.WholeCarPrice,
		trip.Status,
		trip.Notes,
		pq.Array(trip.Waypoints),
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
	UPDATE trips
	SET departure_time = $1,
		estimated_arrival = $2,
		price_per_seat = $3,
		whole_car_price = $4,
		status = $5,
		notes = $6,
		updated_at = $7
	WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		trip.DepartureTime,
		nullTime(trip.EstimatedArrival),
		trip.PricePerSeat,
		trip.WholeCarPrice,
		trip.Status,
		trip.Notes,
		trip.UpdatedAt,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}

	return requireRow(result)
}

func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}

	return requireRow(result)
}

func (r *TripRepository) Search(ctx context.Context, q domain.TripSearch) ([]domain.Trip, error) {
	query := `
	SELECT ` + tripColumns + `
	FROM trips
	WHERE status = 'scheduled'
	  AND ($1 = '' OR origin ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR destination ILIKE '%' || $2 || '%')
	  AND ($3::timestamptz IS NULL
		   OR (departure_time >= date_trunc('day', $3::timestamptz)
			   AND departure_time < date_trunc('day', $3::timestamptz) + interval '1 day'))
	  AND booked_seats + $4 <= available_seats
	ORDER BY departure_time
	`

	rows, err := r.db.QueryContext(ctx, query, q.Origin, q.Destination, nullTime(q.Date), q.MinSeats)
	if err != nil {
		return nil, fmt.Errorf("search trips: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

func (r *TripRepository) Upcoming(ctx context.Context, limit int) ([]domain.Trip, error) {
	query := `
	SELECT ` + tripColumns + `
	FROM trips
	WHERE status = 'scheduled'
	  AND departure_time >= NOW()
	  AND booked_seats < available_seats
	ORDER BY departure_time
	LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming trips: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

func (r *TripRepository) ByDriver(ctx context.Context, driverID uuid.UUID, includePast bool) ([]domain.Trip, error) {
	query := `
	SELECT ` + tripColumns + `
	FROM trips
	WHERE driver_id = $1
	  AND ($2 OR departure_time >= NOW())
	ORDER BY departure_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, driverID, includePast)
	if err != nil {
		return nil, fmt.Errorf("trips by driver: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows)
}

func (r *TripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE trips SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update trip status: %w", err)
	}

	return requireRow(result)
}

// ReserveSeats performs the capacity check and the increment in a single
// conditional UPDATE, so no interleaving of concurrent reservations can push
// booked_seats past available_seats.
func (r *TripRepository) ReserveSeats(ctx context.Context, tripID uuid.UUID, seats int) error {
	query := `
	UPDATE trips
	SET booked_seats = booked_seats + $1,
		updated_at = NOW()
	WHERE id = $2
	  AND status = 'scheduled'
	  AND booked_seats + $1 <= available_seats
	`

	result, err := r.db.ExecContext(ctx, query, seats, tripID)
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.classifyReservationFailure(ctx, tripID)
	}

	return nil
}

// ReserveAllSeats books out the trip in one statement, only when nothing is
// booked yet, and reports how many seats that took.
func (r *TripRepository) ReserveAllSeats(ctx context.Context, tripID uuid.UUID) (int, error) {
	query := `
	UPDATE trips
	SET booked_seats = available_seats,
		updated_at = NOW()
	WHERE id = $1
	  AND status = 'scheduled'
	  AND booked_seats = 0
	RETURNING available_seats
	`

	var taken int
	err := r.db.QueryRowContext(ctx, query, tripID).Scan(&taken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, r.classifyReservationFailure(ctx, tripID)
		}
		return 0, fmt.Errorf("reserve whole car: %w", err)
	}

	return taken, nil
}

func (r *TripRepository) ReleaseSeats(ctx context.Context, tripID uuid.UUID, seats int) error {
	query := `
	UPDATE trips
	SET booked_seats = GREATEST(booked_seats - $1, 0),
		updated_at = NOW()
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, seats, tripID)
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}

	return requireRow(result)
}

// classifyReservationFailure re-reads the trip after a zero-row conditional
// update to tell "missing" from "not bookable" from "over capacity".
func (r *TripRepository) classifyReservationFailure(ctx context.Context, tripID uuid.UUID) error {
	trip, err := r.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsBookable() {
		return domain.ErrTripNotBookable
	}
	return domain.ErrInsufficientSeats
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var vehicleID sql.NullString
	var arrival sql.NullTime

	err := row.Scan(
		&trip.ID,
		&trip.DriverID,
		&vehicleID,
		&trip.Origin,
		&trip.Destination,
		&trip.DepartureTime,
		&arrival,
		&trip.AvailableSeats,
		&trip.BookedSeats,
		&trip.PricePerSeat,
		&trip.WholeCarPrice,
		&trip.Status,
		&trip.Notes,
		pq.Array(&trip.Waypoints),
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if vehicleID.Valid {
		id, err := uuid.Parse(vehicleID.String)
		if err != nil {
			return nil, fmt.Errorf("bad vehicle id on trip %s: %w", trip.ID, err)
		}
		trip.VehicleID = &id
	}
	if arrival.Valid {
		trip.EstimatedArrival = &arrival.Time
	}

	return &trip, nil
}

func collectTrips(rows *sql.Rows) ([]domain.Trip, error) {
	var trips []domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	return trips, rows.Err()
}

func nullUUID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
