package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

const requestIDKey = "request_id"

// RequestID attaches an id to every request for log correlation, honoring an
// incoming X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// respondError sends the standard error payload with the request id included.
func respondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": getRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// respondDomainError maps domain errors onto HTTP statuses: missing objects
// are 404, business-rule rejections 409, bad input 400, the rest 500.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, domain.ErrInsufficientSeats),
		errors.Is(err, domain.ErrTripNotBookable),
		errors.Is(err, domain.ErrTripHasBookings),
		errors.Is(err, domain.ErrPlateExists):
		respondError(c, http.StatusConflict, "conflict", err)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "invalid input", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// bindJSON ensures the body is present and parsable, replying 400 otherwise.
func bindJSON[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body", err)
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}
