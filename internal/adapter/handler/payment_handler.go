package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

type PaymentHandler struct {
	svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createPaymentRequest struct {
	BookingID  uuid.UUID            `json:"booking_id" binding:"required"`
	CustomerID *uuid.UUID           `json:"customer_id"`
	Amount     float64              `json:"amount" binding:"required"`
	Method     domain.PaymentMethod `json:"payment_method"`
	Notes      string               `json:"notes"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req createPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Method == "" {
		req.Method = domain.PayCash
	}

	payment, err := h.svc.Create(c.Request.Context(), services.CreatePaymentRequest{
		BookingID:  req.BookingID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Method:     req.Method,
		Notes:      req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	payment, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// List requires a booking_id or customer_id filter; there is no unfiltered
// payment listing.
func (h *PaymentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if booking := c.Query("booking_id"); booking != "" {
		id, err := uuid.Parse(booking)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid booking_id", err)
			return
		}
		payments, err := h.svc.ByBooking(ctx, id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	if customer := c.Query("customer_id"); customer != "" {
		id, err := uuid.Parse(customer)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid customer_id", err)
			return
		}
		payments, err := h.svc.ByCustomer(ctx, id)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	respondError(c, http.StatusBadRequest, "booking_id or customer_id is required", nil)
}

func (h *PaymentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		TransactionRef *string `json:"transaction_ref"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	payment, err := h.svc.Complete(c.Request.Context(), id, req.TransactionRef)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) Fail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	payment, err := h.svc.Fail(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// Earnings reports completed payment totals for [start, end), dates given as
// YYYY-MM-DD.
func (h *PaymentHandler) Earnings(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid start, want YYYY-MM-DD", err)
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid end, want YYYY-MM-DD", err)
		return
	}

	report, err := h.svc.Earnings(c.Request.Context(), start, end)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
