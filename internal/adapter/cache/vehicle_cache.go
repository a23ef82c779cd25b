package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
)

// VehicleCache is a read-through cache of vehicle rate facts. Reservations
// are never cached: admission always reads the store.
type VehicleCache struct {
	next ports.VehicleRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewVehicleCache(next ports.VehicleRepository, rdb *redis.Client, ttl time.Duration) *VehicleCache {
	return &VehicleCache{next: next, rdb: rdb, ttl: ttl}
}

func vehicleKey(id uuid.UUID) string {
	return fmt.Sprintf("vehicle:%s", id.String())
}

func (c *VehicleCache) GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	key := vehicleKey(vehicleID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var v domain.Vehicle
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v, nil
		}
		log.Printf("[cache] dropping corrupt entry %s", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[cache] get %s: %v", key, err)
	}

	v, err := c.next.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}

	return v, nil
}

func (c *VehicleCache) List(ctx context.Context) ([]domain.Vehicle, error) {
	return c.next.List(ctx)
}
