package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

// InventoryService is the only path through which trip seat counters change.
// The atomic check-then-update itself lives in the repository; this layer
// validates input and keeps the availability cache honest.
type InventoryService struct {
	trips ports.TripRepository
	rdb   *redis.Client
}

// NewInventoryService builds the seat inventory manager. rdb may be nil when
// no cache is deployed.
func NewInventoryService(trips ports.TripRepository, rdb *redis.Client) *InventoryService {
	return &InventoryService{trips: trips, rdb: rdb}
}

// ReserveSeats books seats on a trip. It fails with ErrInsufficientSeats
// (leaving the trip untouched) when fewer seats remain than requested.
func (s *InventoryService) ReserveSeats(ctx context.Context, tripID uuid.UUID, seats int) error {
	if seats < 1 {
		return domain.ValidationError{Field: "seats", Msg: "must book at least one seat"}
	}

	if err := s.trips.ReserveSeats(ctx, tripID, seats); err != nil {
		return err
	}

	s.invalidateAvailability(ctx, tripID)
	return nil
}

// ReserveWholeCar takes every seat on the trip and returns how many were
// taken, so a later cancellation can hand the same count back.
func (s *InventoryService) ReserveWholeCar(ctx context.Context, tripID uuid.UUID) (int, error) {
	taken, err := s.trips.ReserveAllSeats(ctx, tripID)
	if err != nil {
		return 0, err
	}

	s.invalidateAvailability(ctx, tripID)
	return taken, nil
}

// ReleaseSeats hands seats back after a cancellation. The decrement is
// clamped at zero: releasing more than is booked signals a caller bug but
// must not corrupt the counters.
func (s *InventoryService) ReleaseSeats(ctx context.Context, tripID uuid.UUID, seats int) error {
	if seats < 1 {
		return domain.ValidationError{Field: "seats", Msg: "must release at least one seat"}
	}

	if err := s.trips.ReleaseSeats(ctx, tripID, seats); err != nil {
		return err
	}

	s.invalidateAvailability(ctx, tripID)
	return nil
}

func availabilityKey(tripID uuid.UUID) string {
	return fmt.Sprintf("trips:availability:%s", tripID)
}

func (s *InventoryService) invalidateAvailability(ctx context.Context, tripID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	// Best effort: a stale cache entry only delays the UI, the counters in
	// the store stay authoritative.
	s.rdb.Del(ctx, availabilityKey(tripID))
}
