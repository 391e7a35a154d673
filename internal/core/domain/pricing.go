package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SurgeReason string

const (
	SurgePeakHours    SurgeReason = "peak_hours"
	SurgeHighDemand   SurgeReason = "high_demand"
	SurgeHoliday      SurgeReason = "holiday"
	SurgeWeather      SurgeReason = "weather"
	SurgeSpecialEvent SurgeReason = "special_event"
	SurgeManual       SurgeReason = "manual"
)

// SurgeRouteAll matches every route when used as a surge route key.
const SurgeRouteAll = "*"

// RouteKey builds the surge lookup key for a route.
func RouteKey(origin, destination string) string {
	return fmt.Sprintf("%s-%s", origin, destination)
}

// PricingRule sets the base fare structure for one route. Only active rules
// are consulted by price calculation; inactive ones are kept as history.
type PricingRule struct {
	ID                  uuid.UUID
	Origin              string
	Destination         string
	BaseFare            float64
	PerKmRate           float64
	EstimatedDistanceKm float64
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r *PricingRule) CalculatedPrice() float64 {
	return r.BaseFare + r.PerKmRate*r.EstimatedDistanceKm
}

// SurgeMultiplier raises prices for a route (or all routes via "*") inside a
// validity window. The recurrence fields are stored for admin tooling but the
// price calculation path only ever evaluates is_active plus the absolute
// window.
type SurgeMultiplier struct {
	ID                 uuid.UUID
	RouteKey           string
	Multiplier         float64
	Reason             SurgeReason
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	IsActive           bool
	IsRecurring        bool
	RecurringDays      []int
	RecurringStartHour *int
	RecurringEndHour   *int
	CreatedBy          *uuid.UUID
	CreatedAt          time.Time
}

// AppliesTo reports whether the surge covers the given route key at the given
// instant. Window bounds are inclusive, matching how admins enter them.
func (s *SurgeMultiplier) AppliesTo(routeKey string, at time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.RouteKey != routeKey && s.RouteKey != SurgeRouteAll {
		return false
	}
	return !at.Before(s.StartTime) && !at.After(s.EndTime)
}

// PriceCalculation is the quoted price for a route at a point in time.
type PriceCalculation struct {
	BasePrice       float64 `json:"base_price"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	SurgeReason     *string `json:"surge_reason"`
	FinalPrice      float64 `json:"final_price"`
	IsSurgeActive   bool    `json:"is_surge_active"`
}

// SuggestedPrice is advisory output for a driver creating a trip; nothing is
// persisted from it.
type SuggestedPrice struct {
	PricePerSeat  float64 `json:"price_per_seat"`
	WholeCarPrice float64 `json:"whole_car_price"`
	IsSurge       bool    `json:"is_surge"`
	SurgeInfo     *string `json:"surge_info"`
}

// SurgeRecommendation is the demand-based multiplier suggestion shown to
// admins. It never feeds back into price calculation.
type SurgeRecommendation struct {
	RecommendedMultiplier float64 `json:"recommended_multiplier"`
	Reason                string  `json:"reason"`
	RecentBookings        int     `json:"recent_bookings"`
	CurrentHour           int     `json:"current_hour"`
}
