package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type createBookingRequest struct {
	CustomerID      *uuid.UUID         `json:"customer_id"`
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone" binding:"required"`
	TripID          *uuid.UUID         `json:"trip_id"`
	BookingType     domain.BookingType `json:"booking_type"`
	PickupLocation  string             `json:"pickup_location" binding:"required"`
	DropoffLocation string             `json:"dropoff_location" binding:"required"`
	ScheduledTime   time.Time          `json:"scheduled_time" binding:"required"`
	Seats           int                `json:"seats_booked"`
	Notes           string             `json:"notes"`
	SpecialRequests string             `json:"special_requests"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.BookingType == "" {
		req.BookingType = domain.BookingSeat
	}
	if req.Seats == 0 {
		req.Seats = 1
	}

	booking, err := h.svc.Create(c.Request.Context(), services.CreateBookingRequest{
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		TripID:          req.TripID,
		Type:            req.BookingType,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		ScheduledTime:   req.ScheduledTime,
		Seats:           req.Seats,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	booking, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if customer := c.Query("customer_id"); customer != "" {
		id, err := uuid.Parse(customer)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid customer_id", err)
			return
		}
		bookings, err := h.svc.ByCustomer(ctx, id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	if trip := c.Query("trip_id"); trip != "" {
		id, err := uuid.Parse(trip)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid trip_id", err)
			return
		}
		bookings, err := h.svc.ByTrip(ctx, id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	var status *domain.BookingStatus
	if s := c.Query("status"); s != "" {
		st := domain.BookingStatus(s)
		status = &st
	}

	bookings, err := h.svc.List(ctx, status, 100)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(domain.BookingCancelled)})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status domain.BookingStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) AssignDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		DriverID uuid.UUID  `json:"driver_id" binding:"required"`
		TripID   *uuid.UUID `json:"trip_id"`
		Price    *float64   `json:"price"`
	}
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.svc.AssignDriver(c.Request.Context(), id, req.DriverID, req.TripID, req.Price)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ByDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.svc.ByDriver(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) PendingCharters(c *gin.Context) {
	bookings, err := h.svc.PendingCharters(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
