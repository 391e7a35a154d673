package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guzoride/guzo/internal/adapter/repository/memory"
	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

func seedTrip(t *testing.T, store *memory.TripStore, available, booked int) uuid.UUID {
	t.Helper()

	trip := &domain.Trip{
		ID:             uuid.New(),
		DriverID:       uuid.New(),
		Origin:         testOrigin,
		Destination:    testDestination,
		DepartureTime:  time.Now().Add(24 * time.Hour),
		AvailableSeats: available,
		BookedSeats:    booked,
		PricePerSeat:   800,
		WholeCarPrice:  3000,
		Status:         domain.TripScheduled,
	}
	require.NoError(t, store.Create(context.Background(), trip))
	return trip.ID
}

func bookedSeats(t *testing.T, store *memory.TripStore, id uuid.UUID) int {
	t.Helper()

	trip, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	return trip.BookedSeats
}

func TestReserveAndRelease(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)
	ctx := context.Background()

	tripID := seedTrip(t, store, 4, 0)

	assert.NoError(t, svc.ReserveSeats(ctx, tripID, 3))
	assert.Equal(t, 3, bookedSeats(t, store, tripID))

	// Only one seat remains; asking for two must fail without mutation.
	err := svc.ReserveSeats(ctx, tripID, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Equal(t, 3, bookedSeats(t, store, tripID))

	assert.NoError(t, svc.ReleaseSeats(ctx, tripID, 3))
	assert.Equal(t, 0, bookedSeats(t, store, tripID))
}

func TestReserveSeats_RejectsNonPositive(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)

	tripID := seedTrip(t, store, 4, 0)

	err := svc.ReserveSeats(context.Background(), tripID, 0)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, bookedSeats(t, store, tripID))
}

func TestReserveSeats_TripMissing(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)

	err := svc.ReserveSeats(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserveSeats_TripNotBookable(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)
	ctx := context.Background()

	tripID := seedTrip(t, store, 4, 0)
	require.NoError(t, store.UpdateStatus(ctx, tripID, domain.TripCancelled))

	err := svc.ReserveSeats(ctx, tripID, 1)
	assert.ErrorIs(t, err, domain.ErrTripNotBookable)
}

func TestReleaseSeats_ClampsAtZero(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)
	ctx := context.Background()

	tripID := seedTrip(t, store, 4, 2)

	// Releasing more than is booked signals a caller bug but must floor at 0.
	assert.NoError(t, svc.ReleaseSeats(ctx, tripID, 5))
	assert.Equal(t, 0, bookedSeats(t, store, tripID))

	assert.NoError(t, svc.ReleaseSeats(ctx, tripID, 1))
	assert.Equal(t, 0, bookedSeats(t, store, tripID))
}

func TestReserveWholeCar(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)
	ctx := context.Background()

	tripID := seedTrip(t, store, 4, 0)

	taken, err := svc.ReserveWholeCar(ctx, tripID)
	assert.NoError(t, err)
	assert.Equal(t, 4, taken)
	assert.Equal(t, 4, bookedSeats(t, store, tripID))

	// A partially booked trip cannot be taken whole.
	other := seedTrip(t, store, 4, 1)
	_, err = svc.ReserveWholeCar(ctx, other)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)

	assert.NoError(t, svc.ReleaseSeats(ctx, tripID, taken))
	assert.Equal(t, 0, bookedSeats(t, store, tripID))
}

// N concurrent single-seat reservations against K remaining seats must yield
// exactly K successes, no matter how the attempts interleave.
func TestReserveSeats_ConcurrentNeverOversells(t *testing.T) {
	store := memory.NewTripStore()
	svc := services.NewInventoryService(store, nil)
	ctx := context.Background()

	const attempts = 25
	tripID := seedTrip(t, store, 10, 3) // 7 remaining

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.ReserveSeats(ctx, tripID, 1)
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
			failures++
		}
	}

	assert.Equal(t, 7, successes)
	assert.Equal(t, attempts-7, failures)
	assert.Equal(t, 10, bookedSeats(t, store, tripID))
}

func TestReserveSeats_InvalidatesAvailabilityCache(t *testing.T) {
	store := memory.NewTripStore()
	rdb, mockRedis := redismock.NewClientMock()
	svc := services.NewInventoryService(store, rdb)

	tripID := seedTrip(t, store, 4, 0)
	mockRedis.ExpectDel(fmt.Sprintf("trips:availability:%s", tripID)).SetVal(1)

	assert.NoError(t, svc.ReserveSeats(context.Background(), tripID, 1))

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
