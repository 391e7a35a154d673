package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

type PricingHandler struct {
	svc *services.PricingService
}

func NewPricingHandler(svc *services.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// Quote returns the current calculated price for a route, optionally at a
// caller-supplied RFC 3339 instant.
func (h *PricingHandler) Quote(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		respondError(c, http.StatusBadRequest, "origin and destination are required", nil)
		return
	}

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid at, want RFC 3339", err)
			return
		}
		at = parsed
	}

	calc, err := h.svc.CalculatePrice(c.Request.Context(), origin, destination, at)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, calc)
}

func (h *PricingHandler) Suggest(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		respondError(c, http.StatusBadRequest, "origin and destination are required", nil)
		return
	}

	suggestion, err := h.svc.SuggestedPrice(c.Request.Context(), origin, destination, time.Now().UTC())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func (h *PricingHandler) SurgeRecommendation(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		respondError(c, http.StatusBadRequest, "origin and destination are required", nil)
		return
	}

	rec, err := h.svc.RecommendSurge(c.Request.Context(), origin, destination, time.Now().UTC())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ============== Pricing rules ==============

type pricingRuleRequest struct {
	Origin              string  `json:"origin" binding:"required"`
	Destination         string  `json:"destination" binding:"required"`
	BaseFare            float64 `json:"base_fare" binding:"required"`
	PerKmRate           float64 `json:"per_km_rate" binding:"required"`
	EstimatedDistanceKm float64 `json:"estimated_distance_km" binding:"required"`
}

func (h *PricingHandler) CreateRule(c *gin.Context) {
	var req pricingRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.svc.CreateRule(c.Request.Context(), services.PricingRuleInput{
		Origin:              req.Origin,
		Destination:         req.Destination,
		BaseFare:            req.BaseFare,
		PerKmRate:           req.PerKmRate,
		EstimatedDistanceKm: req.EstimatedDistanceKm,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ruleResponse(rule))
}

func (h *PricingHandler) ListRules(c *gin.Context) {
	rules, err := h.svc.Rules(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(rules))
	for i := range rules {
		out = append(out, ruleResponse(&rules[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PricingHandler) GetRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rule, err := h.svc.GetRule(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ruleResponse(rule))
}

func (h *PricingHandler) UpdateRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		BaseFare            *float64 `json:"base_fare"`
		PerKmRate           *float64 `json:"per_km_rate"`
		EstimatedDistanceKm *float64 `json:"estimated_distance_km"`
		IsActive            *bool    `json:"is_active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.svc.UpdateRule(c.Request.Context(), id, services.PricingRuleUpdate{
		BaseFare:            req.BaseFare,
		PerKmRate:           req.PerKmRate,
		EstimatedDistanceKm: req.EstimatedDistanceKm,
		IsActive:            req.IsActive,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ruleResponse(rule))
}

func (h *PricingHandler) DeleteRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRule(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func ruleResponse(rule *domain.PricingRule) gin.H {
	return gin.H{
		"id":                    rule.ID,
		"origin":                rule.Origin,
		"destination":           rule.Destination,
		"base_fare":             rule.BaseFare,
		"per_km_rate":           rule.PerKmRate,
		"estimated_distance_km": rule.EstimatedDistanceKm,
		"calculated_price":      domain.Round2(rule.CalculatedPrice()),
		"is_active":             rule.IsActive,
		"created_at":            rule.CreatedAt,
	}
}

// ============== Surge multipliers ==============

type surgeRequest struct {
	RouteKey           string             `json:"route_key" binding:"required"`
	Multiplier         float64            `json:"multiplier" binding:"required"`
	Reason             domain.SurgeReason `json:"reason"`
	Description        string             `json:"description"`
	StartTime          time.Time          `json:"start_time" binding:"required"`
	EndTime            time.Time          `json:"end_time" binding:"required"`
	IsRecurring        bool               `json:"is_recurring"`
	RecurringDays      []int              `json:"recurring_days"`
	RecurringStartHour *int               `json:"recurring_start_hour"`
	RecurringEndHour   *int               `json:"recurring_end_hour"`
	CreatedBy          *uuid.UUID         `json:"created_by"`
}

func (h *PricingHandler) CreateSurge(c *gin.Context) {
	var req surgeRequest
	if !bindJSON(c, &req) {
		return
	}

	surge, err := h.svc.CreateSurge(c.Request.Context(), services.SurgeInput{
		RouteKey:           req.RouteKey,
		Multiplier:         req.Multiplier,
		Reason:             req.Reason,
		Description:        req.Description,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		IsRecurring:        req.IsRecurring,
		RecurringDays:      req.RecurringDays,
		RecurringStartHour: req.RecurringStartHour,
		RecurringEndHour:   req.RecurringEndHour,
		CreatedBy:          req.CreatedBy,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, surge)
}

func (h *PricingHandler) ListSurges(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	surges, err := h.svc.Surges(c.Request.Context(), activeOnly)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, surges)
}

func (h *PricingHandler) GetSurge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	surge, err := h.svc.GetSurge(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, surge)
}

func (h *PricingHandler) UpdateSurge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Multiplier  *float64            `json:"multiplier"`
		Reason      *domain.SurgeReason `json:"reason"`
		Description *string             `json:"description"`
		StartTime   *time.Time          `json:"start_time"`
		EndTime     *time.Time          `json:"end_time"`
		IsActive    *bool               `json:"is_active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	surge, err := h.svc.UpdateSurge(c.Request.Context(), id, services.SurgeUpdate{
		Multiplier:  req.Multiplier,
		Reason:      req.Reason,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, surge)
}

func (h *PricingHandler) DeactivateSurge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	surge, err := h.svc.DeactivateSurge(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, surge)
}

func (h *PricingHandler) DeleteSurge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSurge(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
