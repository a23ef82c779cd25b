package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	query := `
	SELECT id, name, rate_per_hour, rate_per_day, security_deposit
	FROM vehicles
	WHERE id = $1
	`

	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(
		&v.ID,
		&v.Name,
		&v.RatePerHour,
		&v.RatePerDay,
		&v.SecurityDeposit,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `
	SELECT id, name, rate_per_hour, rate_per_day, security_deposit
	FROM vehicles
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.RatePerHour,
			&v.RatePerDay,
			&v.SecurityDeposit,
		); err != nil {
			return nil, err
		}

		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}
