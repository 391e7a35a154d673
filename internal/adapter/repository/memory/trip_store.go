// Package memory holds map-backed repository implementations. They serialize
// seat mutations with a mutex, which makes them both a safe dev fixture store
// and the harness for the reservation race tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

type TripStore struct {
	mu    sync.Mutex
	trips map[uuid.UUID]*domain.Trip
}

func NewTripStore() *TripStore {
	return &TripStore{trips: make(map[uuid.UUID]*domain.Trip)}
}

func (s *TripStore) Create(_ context.Context, trip *domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *trip
	s.trips[trip.ID] = &cp
	return nil
}

func (s *TripStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *trip
	return &cp, nil
}

func (s *TripStore) Update(_ context.Context, trip *domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[trip.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *trip
	s.trips[trip.ID] = &cp
	return nil
}

func (s *TripStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.trips, id)
	return nil
}

func (s *TripStore) Search(_ context.Context, q domain.TripSearch) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Trip
	for _, trip := range s.trips {
		if trip.Status != domain.TripScheduled {
			continue
		}
		if q.Origin != "" && !strings.Contains(strings.ToLower(trip.Origin), strings.ToLower(q.Origin)) {
			continue
		}
		if q.Destination != "" && !strings.Contains(strings.ToLower(trip.Destination), strings.ToLower(q.Destination)) {
			continue
		}
		if q.Date != nil {
			day := q.Date.Truncate(24 * time.Hour)
			if trip.DepartureTime.Before(day) || !trip.DepartureTime.Before(day.Add(24*time.Hour)) {
				continue
			}
		}
		if trip.RemainingSeats() < q.MinSeats {
			continue
		}
		out = append(out, *trip)
	}
	sortByDeparture(out)
	return out, nil
}

func (s *TripStore) Upcoming(_ context.Context, limit int) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []domain.Trip
	for _, trip := range s.trips {
		if trip.Status == domain.TripScheduled && trip.DepartureTime.After(now) && !trip.IsFull() {
			out = append(out, *trip)
		}
	}
	sortByDeparture(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *TripStore) ByDriver(_ context.Context, driverID uuid.UUID, includePast bool) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []domain.Trip
	for _, trip := range s.trips {
		if trip.DriverID != driverID {
			continue
		}
		if !includePast && trip.DepartureTime.Before(now) {
			continue
		}
		out = append(out, *trip)
	}
	sortByDeparture(out)
	return out, nil
}

func (s *TripStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.TripStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[id]
	if !ok {
		return domain.ErrNotFound
	}
	trip.Status = status
	trip.UpdatedAt = time.Now().UTC()
	return nil
}

// ReserveSeats applies the capacity check and the increment under one lock,
// so concurrent callers can never oversell the trip.
func (s *TripStore) ReserveSeats(_ context.Context, tripID uuid.UUID, seats int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return domain.ErrNotFound
	}
	if !trip.IsBookable() {
		return domain.ErrTripNotBookable
	}
	if trip.RemainingSeats() < seats {
		return domain.ErrInsufficientSeats
	}

	trip.BookedSeats += seats
	trip.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *TripStore) ReserveAllSeats(_ context.Context, tripID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if !trip.IsBookable() {
		return 0, domain.ErrTripNotBookable
	}
	if trip.BookedSeats != 0 {
		return 0, domain.ErrInsufficientSeats
	}

	trip.BookedSeats = trip.AvailableSeats
	trip.UpdatedAt = time.Now().UTC()
	return trip.AvailableSeats, nil
}

func (s *TripStore) ReleaseSeats(_ context.Context, tripID uuid.UUID, seats int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return domain.ErrNotFound
	}

	trip.BookedSeats -= seats
	if trip.BookedSeats < 0 {
		trip.BookedSeats = 0
	}
	trip.UpdatedAt = time.Now().UTC()
	return nil
}

func sortByDeparture(trips []domain.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].DepartureTime.Before(trips[j].DepartureTime)
	})
}
