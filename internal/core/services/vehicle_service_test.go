package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports/mocks"
	"github.com/guzoride/guzo/internal/core/services"
)

func newVehicleService(t *testing.T) (*services.VehicleService, *mocks.VehicleRepository) {
	vehicles := mocks.NewVehicleRepository(t)
	return services.NewVehicleService(vehicles), vehicles
}

func newVehicleRequest() services.CreateVehicleRequest {
	return services.CreateVehicleRequest{
		DriverID:    uuid.New(),
		PlateNumber: "AA-12345",
		Make:        "Toyota",
		Model:       "Hiace",
		Type:        domain.VehicleMinibus,
		Capacity:    12,
	}
}

func TestCreateVehicle(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	vehicles.On("PlateExists", mock.Anything, "AA-12345").Return(false, nil)
	vehicles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

	vehicle, err := svc.Create(context.Background(), newVehicleRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleMinibus, vehicle.Type)
	assert.True(t, vehicle.IsActive)
	assert.False(t, vehicle.IsVerified)
}

func TestCreateVehicle_DuplicatePlate(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	vehicles.On("PlateExists", mock.Anything, "AA-12345").Return(true, nil)

	_, err := svc.Create(context.Background(), newVehicleRequest())

	assert.ErrorIs(t, err, domain.ErrPlateExists)
	vehicles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVehicle_Validation(t *testing.T) {
	badYear := 1985

	cases := []struct {
		name   string
		mutate func(*services.CreateVehicleRequest)
	}{
		{"short plate", func(r *services.CreateVehicleRequest) { r.PlateNumber = "AA1" }},
		{"short make", func(r *services.CreateVehicleRequest) { r.Make = "T" }},
		{"missing model", func(r *services.CreateVehicleRequest) { r.Model = "" }},
		{"year before 1990", func(r *services.CreateVehicleRequest) { r.Year = &badYear }},
		{"zero capacity", func(r *services.CreateVehicleRequest) { r.Capacity = 0 }},
		{"capacity over 50", func(r *services.CreateVehicleRequest) { r.Capacity = 51 }},
		{"unknown type", func(r *services.CreateVehicleRequest) { r.Type = "tricycle" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, vehicles := newVehicleService(t)
			req := newVehicleRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)

			assert.True(t, domain.IsValidation(err))
			vehicles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateVehicle_DefaultsToSedan(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	vehicles.On("PlateExists", mock.Anything, "AA-12345").Return(false, nil)
	vehicles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

	req := newVehicleRequest()
	req.Type = ""
	req.Capacity = 4

	vehicle, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleSedan, vehicle.Type)
}

func TestUpdateVehicle_Partial(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	existing := &domain.Vehicle{
		ID:       uuid.New(),
		Make:     "Toyota",
		Model:    "Hiace",
		Color:    "white",
		Type:     domain.VehicleMinibus,
		Capacity: 12,
		IsActive: true,
	}
	inactive := false

	vehicles.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	vehicles.On("Update", mock.Anything, mock.AnythingOfType("*domain.Vehicle")).Return(nil)

	updated, err := svc.Update(context.Background(), existing.ID, services.VehicleUpdate{
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Toyota", updated.Make)
	assert.Equal(t, 12, updated.Capacity)
}

func TestUpdateVehicle_RejectsBadCapacity(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	existing := &domain.Vehicle{ID: uuid.New(), Make: "Toyota", Model: "Hiace", Capacity: 12}
	tooMany := 51

	vehicles.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := svc.Update(context.Background(), existing.ID, services.VehicleUpdate{Capacity: &tooMany})

	assert.True(t, domain.IsValidation(err))
	vehicles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyVehicle(t *testing.T) {
	svc, vehicles := newVehicleService(t)

	existing := &domain.Vehicle{ID: uuid.New(), Make: "Toyota", Model: "Hiace", Capacity: 12}

	vehicles.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	vehicles.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.IsVerified
	})).Return(nil)

	updated, err := svc.Verify(context.Background(), existing.ID)

	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
}
