package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports/mocks"
	"github.com/guzoride/guzo/internal/core/services"
)

const (
	testOrigin      = "Addis Ababa"
	testDestination = "Lalibela"
	testRouteKey    = "Addis Ababa-Lalibela"
)

func newPricingService(t *testing.T) (*services.PricingService, *mocks.PricingRuleRepository, *mocks.SurgeRepository, *mocks.BookingRepository) {
	rules := mocks.NewPricingRuleRepository(t)
	surges := mocks.NewSurgeRepository(t)
	bookings := mocks.NewBookingRepository(t)
	svc := services.NewPricingService(rules, surges, bookings, services.DefaultPricingPolicy())
	return svc, rules, surges, bookings
}

func offPeak() time.Time {
	return time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)
}

func TestCalculatePrice_DefaultsNoSurge(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := offPeak()

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return(nil, nil)

	calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 350.0, calc.BasePrice)
	assert.Equal(t, 1.0, calc.SurgeMultiplier)
	assert.Nil(t, calc.SurgeReason)
	assert.Equal(t, 350.0, calc.FinalPrice)
	assert.False(t, calc.IsSurgeActive)
}

func TestCalculatePrice_ExplicitSurge(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := offPeak()

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return([]domain.SurgeMultiplier{
		{RouteKey: testRouteKey, Multiplier: 1.5, Reason: domain.SurgeHighDemand, IsActive: true},
	}, nil)

	calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 1.5, calc.SurgeMultiplier)
	if assert.NotNil(t, calc.SurgeReason) {
		assert.Equal(t, "high_demand", *calc.SurgeReason)
	}
	assert.Equal(t, 525.0, calc.FinalPrice)
	assert.True(t, calc.IsSurgeActive)
}

func TestCalculatePrice_UsesActiveRule(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := offPeak()

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(&domain.PricingRule{
		BaseFare: 100, PerKmRate: 5, EstimatedDistanceKm: 500, IsActive: true,
	}, nil)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return(nil, nil)

	calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 2600.0, calc.BasePrice)
	assert.Equal(t, 2600.0, calc.FinalPrice)
}

// Overlapping surges pick the maximum, never a sum or product.
func TestCalculatePrice_MaxNotSum(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC) // morning peak, 1.2x implicit

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return([]domain.SurgeMultiplier{
		{RouteKey: testRouteKey, Multiplier: 1.5, Reason: domain.SurgeHighDemand, IsActive: true},
	}, nil)

	calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 1.5, calc.SurgeMultiplier)
	if assert.NotNil(t, calc.SurgeReason) {
		assert.Equal(t, "high_demand", *calc.SurgeReason)
	}
}

// An equal peak-hour multiplier must not steal the reason from an explicit
// admin-set surge.
func TestCalculatePrice_TieKeepsExplicitReason(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return([]domain.SurgeMultiplier{
		{RouteKey: testRouteKey, Multiplier: 1.2, Reason: domain.SurgeManual, IsActive: true},
	}, nil)

	calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 1.2, calc.SurgeMultiplier)
	if assert.NotNil(t, calc.SurgeReason) {
		assert.Equal(t, "manual", *calc.SurgeReason)
	}
}

func TestCalculatePrice_PeakWindowBoundaries(t *testing.T) {
	cases := []struct {
		hour, minute   int
		wantMultiplier float64
	}{
		{6, 59, 1.0},
		{7, 0, 1.2},
		{8, 59, 1.2},
		{9, 0, 1.0},
		{17, 0, 1.2},
		{18, 59, 1.2},
		{19, 0, 1.0},
	}

	for _, tc := range cases {
		svc, rules, surges, _ := newPricingService(t)
		at := time.Date(2026, 1, 15, tc.hour, tc.minute, 0, 0, time.UTC)

		rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
		surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return(nil, nil)

		calc, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)

		assert.NoError(t, err)
		assert.Equal(t, tc.wantMultiplier, calc.SurgeMultiplier, "at %02d:%02d", tc.hour, tc.minute)
	}
}

func TestCalculatePrice_Deterministic(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := offPeak()

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return([]domain.SurgeMultiplier{
		{RouteKey: testRouteKey, Multiplier: 1.5, Reason: domain.SurgeHighDemand, IsActive: true},
	}, nil)

	first, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)
	assert.NoError(t, err)
	second, err := svc.CalculatePrice(context.Background(), testOrigin, testDestination, at)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSuggestedPrice(t *testing.T) {
	svc, rules, surges, _ := newPricingService(t)
	at := offPeak()

	rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	surges.On("ActiveForRoute", mock.Anything, testRouteKey, at).Return(nil, nil)

	suggestion, err := svc.SuggestedPrice(context.Background(), testOrigin, testDestination, at)

	assert.NoError(t, err)
	assert.Equal(t, 87.5, suggestion.PricePerSeat)
	assert.Equal(t, 350.0, suggestion.WholeCarPrice)
	assert.False(t, suggestion.IsSurge)
}

func TestRecommendSurge(t *testing.T) {
	cases := []struct {
		name           string
		recentBookings int
		hour           int
		wantMultiplier float64
		wantReason     string
	}{
		{"high demand", 25, 2, 1.5, "high_demand"},
		{"moderate demand", 15, 2, 1.3, "moderate_demand"},
		{"peak hours", 5, 8, 1.2, "peak_hours"},
		{"peak window is half open", 5, 9, 1.0, "normal"},
		{"normal", 0, 2, 1.0, "normal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, bookings := newPricingService(t)
			now := time.Date(2026, 1, 15, tc.hour, 30, 0, 0, time.UTC)

			bookings.On("CountByRouteSince", mock.Anything, testOrigin, testDestination, now.Add(-24*time.Hour)).
				Return(tc.recentBookings, nil)

			rec, err := svc.RecommendSurge(context.Background(), testOrigin, testDestination, now)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantMultiplier, rec.RecommendedMultiplier)
			assert.Equal(t, tc.wantReason, rec.Reason)
			assert.Equal(t, tc.recentBookings, rec.RecentBookings)
			assert.Equal(t, tc.hour, rec.CurrentHour)
		})
	}
}

func TestCreateSurge_RejectsBadMultiplier(t *testing.T) {
	svc, _, _, _ := newPricingService(t)

	_, err := svc.CreateSurge(context.Background(), services.SurgeInput{
		RouteKey:   testRouteKey,
		Multiplier: 6.0,
		StartTime:  offPeak(),
		EndTime:    offPeak().Add(time.Hour),
	})

	assert.True(t, domain.IsValidation(err))
}

func TestCreateSurge_DefaultsReasonToManual(t *testing.T) {
	svc, _, surges, _ := newPricingService(t)

	surges.On("Create", mock.Anything, mock.AnythingOfType("*domain.SurgeMultiplier")).Return(nil)

	surge, err := svc.CreateSurge(context.Background(), services.SurgeInput{
		RouteKey:   domain.SurgeRouteAll,
		Multiplier: 1.5,
		StartTime:  offPeak(),
		EndTime:    offPeak().Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.SurgeManual, surge.Reason)
	assert.True(t, surge.IsActive)
}
