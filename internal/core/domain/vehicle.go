package domain

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleSedan   VehicleType = "sedan"
	VehicleSUV     VehicleType = "suv"
	VehicleMinibus VehicleType = "minibus"
	VehicleBus     VehicleType = "bus"
	VehicleVan     VehicleType = "van"
)

// Vehicle is a driver-registered car. Plate numbers are unique across the
// fleet; is_verified is flipped only by the admin verify action.
type Vehicle struct {
	ID                 uuid.UUID
	DriverID           uuid.UUID
	PlateNumber        string
	Make               string
	Model              string
	Year               *int
	Color              string
	Type               VehicleType
	Capacity           int
	IsActive           bool
	IsVerified         bool
	RegistrationExpiry *time.Time
	InsuranceExpiry    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
