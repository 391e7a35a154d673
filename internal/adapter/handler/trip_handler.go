package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

type TripHandler struct {
	svc *services.TripService
}

func NewTripHandler(svc *services.TripService) *TripHandler {
	return &TripHandler{svc: svc}
}

type createTripRequest struct {
	DriverID       uuid.UUID  `json:"driver_id" binding:"required"`
	VehicleID      *uuid.UUID `json:"vehicle_id"`
	Origin         string     `json:"origin" binding:"required"`
	Destination    string     `json:"destination" binding:"required"`
	DepartureTime  time.Time  `json:"departure_time" binding:"required"`
	AvailableSeats int        `json:"available_seats" binding:"required"`
	PricePerSeat   float64    `json:"price_per_seat" binding:"required"`
	WholeCarPrice  float64    `json:"whole_car_price" binding:"required"`
	Notes          string     `json:"notes"`
	Waypoints      []string   `json:"waypoints"`
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.svc.Create(c.Request.Context(), services.CreateTripRequest{
		DriverID:       req.DriverID,
		VehicleID:      req.VehicleID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		PricePerSeat:   req.PricePerSeat,
		WholeCarPrice:  req.WholeCarPrice,
		Notes:          req.Notes,
		Waypoints:      req.Waypoints,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	trip, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":            trip,
		"remaining_seats": trip.RemainingSeats(),
	})
}

func (h *TripHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		DepartureTime *time.Time         `json:"departure_time"`
		PricePerSeat  *float64           `json:"price_per_seat"`
		WholeCarPrice *float64           `json:"whole_car_price"`
		Status        *domain.TripStatus `json:"status"`
		Notes         *string            `json:"notes"`
	}
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.svc.Update(c.Request.Context(), id, services.TripUpdate{
		DepartureTime: req.DepartureTime,
		PricePerSeat:  req.PricePerSeat,
		WholeCarPrice: req.WholeCarPrice,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status domain.TripStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TripHandler) Search(c *gin.Context) {
	q := domain.TripSearch{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		MinSeats:    1,
	}

	if d := c.Query("date"); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", err)
			return
		}
		q.Date = &date
	}
	if m := c.Query("min_seats"); m != "" {
		seats, err := strconv.Atoi(m)
		if err != nil || seats < 1 {
			respondError(c, http.StatusBadRequest, "invalid min_seats", err)
			return
		}
		q.MinSeats = seats
	}

	trips, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) Upcoming(c *gin.Context) {
	limit := 20
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}

	trips, err := h.svc.Upcoming(c.Request.Context(), limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (h *TripHandler) ByDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	includePast := c.Query("include_past") == "true"

	trips, err := h.svc.ByDriver(c.Request.Context(), id, includePast)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}
