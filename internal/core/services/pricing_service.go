package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

// PricingPolicy holds the fallback fares and peak-hour windows the engine
// uses. It is injected at construction so tests can run alternate policies.
type PricingPolicy struct {
	DefaultBaseFare   float64
	DefaultPerKmRate  float64
	DefaultDistanceKm float64

	// Peak windows are half-open hour ranges: [start, end).
	MorningPeakStart int
	MorningPeakEnd   int
	EveningPeakStart int
	EveningPeakEnd   int
	PeakMultiplier   float64
}

// DefaultPricingPolicy mirrors the platform's standard ETB fares.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		DefaultBaseFare:   50,
		DefaultPerKmRate:  3,
		DefaultDistanceKm: 100,
		MorningPeakStart:  7,
		MorningPeakEnd:    9,
		EveningPeakStart:  17,
		EveningPeakEnd:    19,
		PeakMultiplier:    1.2,
	}
}

const suggestedSeatCount = 4

// Demand thresholds for the advisory surge recommendation.
const (
	demandWindow       = 24 * time.Hour
	highDemandCount    = 20
	highDemandSurge    = 1.5
	moderateCount      = 10
	moderateSurge      = 1.3
	reasonHighDemand   = "high_demand"
	reasonModerate     = "moderate_demand"
	reasonPeakHours    = "peak_hours"
	reasonNormalDemand = "normal"
)

// PricingService computes quoted prices and manages the pricing rules and
// surge multipliers admins maintain. CalculatePrice performs no mutation and
// is deterministic for fixed inputs and stored rules.
type PricingService struct {
	rules    ports.PricingRuleRepository
	surges   ports.SurgeRepository
	bookings ports.BookingRepository
	policy   PricingPolicy
}

func NewPricingService(
	rules ports.PricingRuleRepository,
	surges ports.SurgeRepository,
	bookings ports.BookingRepository,
	policy PricingPolicy,
) *PricingService {
	return &PricingService{
		rules:    rules,
		surges:   surges,
		bookings: bookings,
		policy:   policy,
	}
}

// CalculatePrice quotes the route at the given instant: active rule (or
// defaults) for the base price, then the single highest applicable surge.
// Multipliers are never summed or compounded.
func (s *PricingService) CalculatePrice(ctx context.Context, origin, destination string, at time.Time) (*domain.PriceCalculation, error) {
	basePrice := s.policy.DefaultBaseFare + s.policy.DefaultPerKmRate*s.policy.DefaultDistanceKm

	rule, err := s.rules.ActiveByRoute(ctx, origin, destination)
	switch {
	case err == nil:
		basePrice = rule.CalculatedPrice()
	case errors.Is(err, domain.ErrNotFound):
		// No rule for the route is a policy fallback, not a failure.
	default:
		return nil, err
	}

	surges, err := s.surges.ActiveForRoute(ctx, domain.RouteKey(origin, destination), at)
	if err != nil {
		return nil, err
	}

	multiplier := 1.0
	var reason *string
	for i := range surges {
		if surges[i].Multiplier > multiplier {
			multiplier = surges[i].Multiplier
			r := string(surges[i].Reason)
			reason = &r
		}
	}

	// The implicit peak-hour surge only wins when it strictly beats every
	// explicit one; ties keep the admin-stated reason.
	if peak := s.peakMultiplier(at); peak > multiplier {
		multiplier = peak
		r := reasonPeakHours
		reason = &r
	}

	return &domain.PriceCalculation{
		BasePrice:       domain.Round2(basePrice),
		SurgeMultiplier: multiplier,
		SurgeReason:     reason,
		FinalPrice:      domain.Round2(basePrice * multiplier),
		IsSurgeActive:   multiplier > 1.0,
	}, nil
}

func (s *PricingService) peakMultiplier(at time.Time) float64 {
	hour := at.Hour()
	if hour >= s.policy.MorningPeakStart && hour < s.policy.MorningPeakEnd {
		return s.policy.PeakMultiplier
	}
	if hour >= s.policy.EveningPeakStart && hour < s.policy.EveningPeakEnd {
		return s.policy.PeakMultiplier
	}
	return 1.0
}

// SuggestedPrice derives advisory per-seat and whole-car prices for a driver
// publishing a new trip. Nothing is persisted.
func (s *PricingService) SuggestedPrice(ctx context.Context, origin, destination string, at time.Time) (*domain.SuggestedPrice, error) {
	calc, err := s.CalculatePrice(ctx, origin, destination, at)
	if err != nil {
		return nil, err
	}

	return &domain.SuggestedPrice{
		PricePerSeat:  domain.Round2(calc.FinalPrice / suggestedSeatCount),
		WholeCarPrice: calc.FinalPrice,
		IsSurge:       calc.IsSurgeActive,
		SurgeInfo:     calc.SurgeReason,
	}, nil
}

// RecommendSurge maps the route's trailing-24h booking count to a suggested
// multiplier for admins. Informational only; CalculatePrice never reads it.
func (s *PricingService) RecommendSurge(ctx context.Context, origin, destination string, now time.Time) (*domain.SurgeRecommendation, error) {
	count, err := s.bookings.CountByRouteSince(ctx, origin, destination, now.Add(-demandWindow))
	if err != nil {
		return nil, err
	}

	rec := &domain.SurgeRecommendation{
		RecentBookings: count,
		CurrentHour:    now.Hour(),
	}

	switch {
	case count > highDemandCount:
		rec.RecommendedMultiplier = highDemandSurge
		rec.Reason = reasonHighDemand
	case count > moderateCount:
		rec.RecommendedMultiplier = moderateSurge
		rec.Reason = reasonModerate
	case s.peakMultiplier(now) > 1.0:
		rec.RecommendedMultiplier = s.policy.PeakMultiplier
		rec.Reason = reasonPeakHours
	default:
		rec.RecommendedMultiplier = 1.0
		rec.Reason = reasonNormalDemand
	}

	return rec, nil
}

// ============== Pricing rule administration ==============

type PricingRuleInput struct {
	Origin              string
	Destination         string
	BaseFare            float64
	PerKmRate           float64
	EstimatedDistanceKm float64
}

func (in PricingRuleInput) validate() error {
	if len(in.Origin) < 2 {
		return domain.ValidationError{Field: "origin", Msg: "too short"}
	}
	if len(in.Destination) < 2 {
		return domain.ValidationError{Field: "destination", Msg: "too short"}
	}
	if in.BaseFare <= 0 {
		return domain.ValidationError{Field: "base_fare", Msg: "must be positive"}
	}
	if in.PerKmRate <= 0 {
		return domain.ValidationError{Field: "per_km_rate", Msg: "must be positive"}
	}
	if in.EstimatedDistanceKm <= 0 {
		return domain.ValidationError{Field: "estimated_distance_km", Msg: "must be positive"}
	}
	return nil
}

func (s *PricingService) CreateRule(ctx context.Context, in PricingRuleInput) (*domain.PricingRule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := &domain.PricingRule{
		ID:                  uuid.New(),
		Origin:              in.Origin,
		Destination:         in.Destination,
		BaseFare:            in.BaseFare,
		PerKmRate:           in.PerKmRate,
		EstimatedDistanceKm: in.EstimatedDistanceKm,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *PricingService) Rules(ctx context.Context) ([]domain.PricingRule, error) {
	return s.rules.All(ctx)
}

func (s *PricingService) GetRule(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	return s.rules.GetByID(ctx, id)
}

type PricingRuleUpdate struct {
	BaseFare            *float64
	PerKmRate           *float64
	EstimatedDistanceKm *float64
	IsActive            *bool
}

func (s *PricingService) UpdateRule(ctx context.Context, id uuid.UUID, upd PricingRuleUpdate) (*domain.PricingRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.BaseFare != nil {
		if *upd.BaseFare <= 0 {
			return nil, domain.ValidationError{Field: "base_fare", Msg: "must be positive"}
		}
		rule.BaseFare = *upd.BaseFare
	}
	if upd.PerKmRate != nil {
		if *upd.PerKmRate <= 0 {
			return nil, domain.ValidationError{Field: "per_km_rate", Msg: "must be positive"}
		}
		rule.PerKmRate = *upd.PerKmRate
	}
	if upd.EstimatedDistanceKm != nil {
		if *upd.EstimatedDistanceKm <= 0 {
			return nil, domain.ValidationError{Field: "estimated_distance_km", Msg: "must be positive"}
		}
		rule.EstimatedDistanceKm = *upd.EstimatedDistanceKm
	}
	if upd.IsActive != nil {
		rule.IsActive = *upd.IsActive
	}
	rule.UpdatedAt = time.Now().UTC()

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *PricingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return s.rules.Delete(ctx, id)
}

// ============== Surge administration ==============

type SurgeInput struct {
	RouteKey           string
	Multiplier         float64
	Reason             domain.SurgeReason
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	IsRecurring        bool
	RecurringDays      []int
	RecurringStartHour *int
	RecurringEndHour   *int
	CreatedBy          *uuid.UUID
}

func (in SurgeInput) validate() error {
	if in.RouteKey == "" {
		return domain.ValidationError{Field: "route_key", Msg: "required"}
	}
	if in.Multiplier < 1.0 || in.Multiplier > 5.0 {
		return domain.ValidationError{Field: "multiplier", Msg: "must be between 1.0 and 5.0"}
	}
	if !in.EndTime.After(in.StartTime) {
		return domain.ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	for _, d := range in.RecurringDays {
		if d < 0 || d > 6 {
			return domain.ValidationError{Field: "recurring_days", Msg: "days must be 0-6"}
		}
	}
	return nil
}

func (s *PricingService) CreateSurge(ctx context.Context, in SurgeInput) (*domain.SurgeMultiplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = domain.SurgeManual
	}

	surge := &domain.SurgeMultiplier{
		ID:                 uuid.New(),
		RouteKey:           in.RouteKey,
		Multiplier:         in.Multiplier,
		Reason:             reason,
		Description:        in.Description,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		IsActive:           true,
		IsRecurring:        in.IsRecurring,
		RecurringDays:      in.RecurringDays,
		RecurringStartHour: in.RecurringStartHour,
		RecurringEndHour:   in.RecurringEndHour,
		CreatedBy:          in.CreatedBy,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.surges.Create(ctx, surge); err != nil {
		return nil, err
	}
	return surge, nil
}

func (s *PricingService) Surges(ctx context.Context, activeOnly bool) ([]domain.SurgeMultiplier, error) {
	return s.surges.All(ctx, activeOnly)
}

func (s *PricingService) GetSurge(ctx context.Context, id uuid.UUID) (*domain.SurgeMultiplier, error) {
	return s.surges.GetByID(ctx, id)
}

type SurgeUpdate struct {
	Multiplier  *float64
	Reason      *domain.SurgeReason
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	IsActive    *bool
}

func (s *PricingService) UpdateSurge(ctx context.Context, id uuid.UUID, upd SurgeUpdate) (*domain.SurgeMultiplier, error) {
	surge, err := s.surges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Multiplier != nil {
		if *upd.Multiplier < 1.0 || *upd.Multiplier > 5.0 {
			return nil, domain.ValidationError{Field: "multiplier", Msg: "must be between 1.0 and 5.0"}
		}
		surge.Multiplier = *upd.Multiplier
	}
	if upd.Reason != nil {
		surge.Reason = *upd.Reason
	}
	if upd.Description != nil {
		surge.Description = *upd.Description
	}
	if upd.StartTime != nil {
		surge.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		surge.EndTime = *upd.EndTime
	}
	if !surge.EndTime.After(surge.StartTime) {
		return nil, domain.ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	if upd.IsActive != nil {
		surge.IsActive = *upd.IsActive
	}

	if err := s.surges.Update(ctx, surge); err != nil {
		return nil, err
	}
	return surge, nil
}

func (s *PricingService) DeactivateSurge(ctx context.Context, id uuid.UUID) (*domain.SurgeMultiplier, error) {
	inactive := false
	return s.UpdateSurge(ctx, id, SurgeUpdate{IsActive: &inactive})
}

func (s *PricingService) DeleteSurge(ctx context.Context, id uuid.UUID) error {
	return s.surges.Delete(ctx, id)
}
