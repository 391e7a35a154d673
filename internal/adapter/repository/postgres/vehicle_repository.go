package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
)

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id, driver_id, plate_number, make, model, year, color, vehicle_type,
	capacity, is_active, is_verified, registration_expiry, insurance_expiry,
	created_at, updated_at
`

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
	INSERT INTO vehicles (` + vehicleColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.DriverID,
		v.PlateNumber,
		v.Make,
		v.Model,
		nullInt(v.Year),
		v.Color,
		v.Type,
		v.Capacity,
		v.IsActive,
		v.IsVerified,
		nullTime(v.RegistrationExpiry),
		nullTime(v.InsuranceExpiry),
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `
	UPDATE vehicles
	SET make = $1,
		model = $2,
		year = $3,
		color = $4,
		vehicle_type = $5,
		capacity = $6,
		is_active = $7,
		is_verified = $8,
		registration_expiry = $9,
		insurance_expiry = $10,
		updated_at = $11
	WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		v.Make,
		v.Model,
		nullInt(v.Year),
		v.Color,
		v.Type,
		v.Capacity,
		v.IsActive,
		v.IsVerified,
		nullTime(v.RegistrationExpiry),
		nullTime(v.InsuranceExpiry),
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}

	return requireRow(result)
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	return requireRow(result)
}

func (r *VehicleRepository) ByDriver(ctx context.Context, driverID uuid.UUID, activeOnly bool) ([]domain.Vehicle, error) {
	query := `
	SELECT ` + vehicleColumns + `
	FROM vehicles
	WHERE driver_id = $1
	  AND ($2 = FALSE OR is_active = TRUE)
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, driverID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("vehicles by driver: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) PlateExists(ctx context.Context, plateNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicles WHERE plate_number = $1)`, plateNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check plate: %w", err)
	}
	return exists, nil
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var year sql.NullInt64
	var regExpiry, insExpiry sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.DriverID,
		&v.PlateNumber,
		&v.Make,
		&v.Model,
		&year,
		&v.Color,
		&v.Type,
		&v.Capacity,
		&v.IsActive,
		&v.IsVerified,
		&regExpiry,
		&insExpiry,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	if regExpiry.Valid {
		v.RegistrationExpiry = &regExpiry.Time
	}
	if insExpiry.Valid {
		v.InsuranceExpiry = &insExpiry.Time
	}

	return &v, nil
}
