package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/srgjo27/rental_booking/internal/core/domain"
)

type VehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[uuid.UUID]domain.Vehicle
}

func NewVehicleRepository(vehicles ...domain.Vehicle) *VehicleRepository {
	r := &VehicleRepository{vehicles: make(map[uuid.UUID]domain.Vehicle, len(vehicles))}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *VehicleRepository) Put(v domain.Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vehicles[v.ID] = v
}

func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[vehicleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
