package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guzoride/guzo/internal/core/domain"
)

func newTripRepo(t *testing.T) (*TripRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTripRepository(db), mock
}

func tripRow(id uuid.UUID, available, booked int, status domain.TripStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "driver_id", "vehicle_id", "origin", "destination", "departure_time",
		"estimated_arrival", "available_seats", "booked_seats", "price_per_seat",
		"whole_car_price", "status", "notes", "waypoints", "created_at", "updated_at",
	}).AddRow(
		id, uuid.New(), nil, "Addis Ababa", "Bahir Dar", now.Add(24*time.Hour),
		nil, available, booked, 800.0,
		3000.0, status, "", "{}", now, now,
	)
}

func TestReserveSeats_Succeeds(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectExec("UPDATE trips").
		WithArgs(2, tripID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReserveSeats(context.Background(), tripID, 2)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeats_OverCapacity(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectExec("UPDATE trips").
		WithArgs(2, tripID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Re-read shows a bookable trip with one seat left, so the failure was
	// capacity, not state.
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WithArgs(tripID).
		WillReturnRows(tripRow(tripID, 4, 3, domain.TripScheduled))

	err := repo.ReserveSeats(context.Background(), tripID, 2)

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeats_TripCancelled(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectExec("UPDATE trips").
		WithArgs(1, tripID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WithArgs(tripID).
		WillReturnRows(tripRow(tripID, 4, 0, domain.TripCancelled))

	err := repo.ReserveSeats(context.Background(), tripID, 1)

	assert.ErrorIs(t, err, domain.ErrTripNotBookable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeats_TripMissing(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectExec("UPDATE trips").
		WithArgs(1, tripID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.ReserveSeats(context.Background(), tripID, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveAllSeats_ReturnsSeatCount(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectQuery("UPDATE trips").
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(4))

	taken, err := repo.ReserveAllSeats(context.Background(), tripID)

	assert.NoError(t, err)
	assert.Equal(t, 4, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveAllSeats_PartiallyBooked(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectQuery("UPDATE trips").
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}))
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WithArgs(tripID).
		WillReturnRows(tripRow(tripID, 4, 1, domain.TripScheduled))

	_, err := repo.ReserveAllSeats(context.Background(), tripID)

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeats(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectExec("UPDATE trips").
		WithArgs(3, tripID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.ReleaseSeats(context.Background(), tripID, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTripRepo(t)
	tripID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id").
		WithArgs(tripID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), tripID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
