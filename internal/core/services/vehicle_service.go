package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

type CreateVehicleRequest struct {
	DriverID           uuid.UUID
	PlateNumber        string
	Make               string
	Model              string
	Year               *int
	Color              string
	Type               domain.VehicleType
	Capacity           int
	RegistrationExpiry *time.Time
	InsuranceExpiry    *time.Time
}

func (r CreateVehicleRequest) validate() error {
	if len(r.PlateNumber) < 4 {
		return domain.ValidationError{Field: "plate_number", Msg: "too short"}
	}
	if len(r.Make) < 2 {
		return domain.ValidationError{Field: "make", Msg: "too short"}
	}
	if r.Model == "" {
		return domain.ValidationError{Field: "model", Msg: "required"}
	}
	if r.Year != nil && (*r.Year < 1990 || *r.Year > 2030) {
		return domain.ValidationError{Field: "year", Msg: "must be between 1990 and 2030"}
	}
	if r.Capacity < 1 || r.Capacity > 50 {
		return domain.ValidationError{Field: "capacity", Msg: "must be between 1 and 50"}
	}
	switch r.Type {
	case "", domain.VehicleSedan, domain.VehicleSUV, domain.VehicleMinibus, domain.VehicleBus, domain.VehicleVan:
	default:
		return domain.ValidationError{Field: "vehicle_type", Msg: "unknown type"}
	}
	return nil
}

// VehicleService manages the driver fleet: registration, updates, and the
// admin verify action. Trips reference vehicles by id only.
type VehicleService struct {
	vehicles ports.VehicleRepository
}

func NewVehicleService(vehicles ports.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	exists, err := s.vehicles.PlateExists(ctx, req.PlateNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPlateExists
	}

	vtype := req.Type
	if vtype == "" {
		vtype = domain.VehicleSedan
	}

	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		ID:                 uuid.New(),
		DriverID:           req.DriverID,
		PlateNumber:        req.PlateNumber,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		Type:               vtype,
		Capacity:           req.Capacity,
		IsActive:           true,
		IsVerified:         false,
		RegistrationExpiry: req.RegistrationExpiry,
		InsuranceExpiry:    req.InsuranceExpiry,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

type VehicleUpdate struct {
	Make               *string
	Model              *string
	Year               *int
	Color              *string
	Type               *domain.VehicleType
	Capacity           *int
	IsActive           *bool
	RegistrationExpiry *time.Time
	InsuranceExpiry    *time.Time
}

func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, upd VehicleUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Make != nil {
		if len(*upd.Make) < 2 {
			return nil, domain.ValidationError{Field: "make", Msg: "too short"}
		}
		vehicle.Make = *upd.Make
	}
	if upd.Model != nil {
		if *upd.Model == "" {
			return nil, domain.ValidationError{Field: "model", Msg: "required"}
		}
		vehicle.Model = *upd.Model
	}
	if upd.Year != nil {
		if *upd.Year < 1990 || *upd.Year > 2030 {
			return nil, domain.ValidationError{Field: "year", Msg: "must be between 1990 and 2030"}
		}
		vehicle.Year = upd.Year
	}
	if upd.Color != nil {
		vehicle.Color = *upd.Color
	}
	if upd.Type != nil {
		switch *upd.Type {
		case domain.VehicleSedan, domain.VehicleSUV, domain.VehicleMinibus, domain.VehicleBus, domain.VehicleVan:
		default:
			return nil, domain.ValidationError{Field: "vehicle_type", Msg: "unknown type"}
		}
		vehicle.Type = *upd.Type
	}
	if upd.Capacity != nil {
		if *upd.Capacity < 1 || *upd.Capacity > 50 {
			return nil, domain.ValidationError{Field: "capacity", Msg: "must be between 1 and 50"}
		}
		vehicle.Capacity = *upd.Capacity
	}
	if upd.IsActive != nil {
		vehicle.IsActive = *upd.IsActive
	}
	if upd.RegistrationExpiry != nil {
		vehicle.RegistrationExpiry = upd.RegistrationExpiry
	}
	if upd.InsuranceExpiry != nil {
		vehicle.InsuranceExpiry = upd.InsuranceExpiry
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.vehicles.Delete(ctx, id)
}

func (s *VehicleService) ByDriver(ctx context.Context, driverID uuid.UUID, activeOnly bool) ([]domain.Vehicle, error) {
	return s.vehicles.ByDriver(ctx, driverID, activeOnly)
}

// Verify marks the vehicle verified. Admin action.
func (s *VehicleService) Verify(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle.IsVerified = true
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}
