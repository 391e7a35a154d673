package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/services"
)

type VehicleHandler struct {
	svc *services.VehicleService
}

func NewVehicleHandler(svc *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

type createVehicleRequest struct {
	DriverID           uuid.UUID          `json:"driver_id" binding:"required"`
	PlateNumber        string             `json:"plate_number" binding:"required"`
	Make               string             `json:"make" binding:"required"`
	Model              string             `json:"model" binding:"required"`
	Year               *int               `json:"year"`
	Color              string             `json:"color"`
	Type               domain.VehicleType `json:"vehicle_type"`
	Capacity           int                `json:"capacity" binding:"required"`
	RegistrationExpiry *time.Time         `json:"registration_expiry"`
	InsuranceExpiry    *time.Time         `json:"insurance_expiry"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req createVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.svc.Create(c.Request.Context(), services.CreateVehicleRequest{
		DriverID:           req.DriverID,
		PlateNumber:        req.PlateNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Type:               req.Type,
		Capacity:           req.Capacity,
		RegistrationExpiry: req.RegistrationExpiry,
		InsuranceExpiry:    req.InsuranceExpiry,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Make               *string             `json:"make"`
		Model              *string             `json:"model"`
		Year               *int                `json:"year"`
		Color              *string             `json:"color"`
		Type               *domain.VehicleType `json:"vehicle_type"`
		Capacity           *int                `json:"capacity"`
		IsActive           *bool               `json:"is_active"`
		RegistrationExpiry *time.Time          `json:"registration_expiry"`
		InsuranceExpiry    *time.Time          `json:"insurance_expiry"`
	}
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.svc.Update(c.Request.Context(), id, services.VehicleUpdate{
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Type:               req.Type,
		Capacity:           req.Capacity,
		IsActive:           req.IsActive,
		RegistrationExpiry: req.RegistrationExpiry,
		InsuranceExpiry:    req.InsuranceExpiry,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
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

func (h *VehicleHandler) ByDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"

	vehicles, err := h.svc.ByDriver(c.Request.Context(), id, activeOnly)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Verify(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.svc.Verify(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}
