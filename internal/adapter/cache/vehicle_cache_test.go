package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rental_booking/internal/adapter/cache"
	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports/mocks"
)

func TestVehicleCache_MissLoadsAndStores(t *testing.T) {
	repo := mocks.NewVehicleRepository(t)
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewVehicleCache(repo, db, time.Minute)

	ctx := context.Background()
	v := &domain.Vehicle{ID: uuid.New(), Name: "Toyota Avanza", RatePerHour: 500, RatePerDay: 5000}
	payload, err := json.Marshal(v)
	require.NoError(t, err)

	key := fmt.Sprintf("vehicle:%s", v.ID.String())
	mockRedis.ExpectGet(key).RedisNil()
	repo.On("GetByID", ctx, v.ID).Return(v, nil).Once()
	mockRedis.ExpectSet(key, payload, time.Minute).SetVal("OK")

	got, err := c.GetByID(ctx, v.ID)

	require.NoError(t, err)
	assert.Equal(t, v, got)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestVehicleCache_HitSkipsRepository(t *testing.T) {
	repo := mocks.NewVehicleRepository(t)
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewVehicleCache(repo, db, time.Minute)

	v := domain.Vehicle{ID: uuid.New(), Name: "Honda Brio", RatePerHour: 400, RatePerDay: 3000}
	payload, err := json.Marshal(v)
	require.NoError(t, err)

	mockRedis.ExpectGet(fmt.Sprintf("vehicle:%s", v.ID.String())).SetVal(string(payload))

	got, err := c.GetByID(context.Background(), v.ID)

	require.NoError(t, err)
	assert.Equal(t, v, *got)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestVehicleCache_RedisDownFallsBackToRepository(t *testing.T) {
	repo := mocks.NewVehicleRepository(t)
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewVehicleCache(repo, db, time.Minute)

	v := &domain.Vehicle{ID: uuid.New(), RatePerHour: 1, RatePerDay: 2}
	key := fmt.Sprintf("vehicle:%s", v.ID.String())

	mockRedis.ExpectGet(key).SetErr(errors.New("connection refused"))
	repo.On("GetByID", mock.Anything, v.ID).Return(v, nil).Once()

	got, err := c.GetByID(context.Background(), v.ID)

	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestVehicleCache_NotFoundIsNotCached(t *testing.T) {
	repo := mocks.NewVehicleRepository(t)
	db, mockRedis := redismock.NewClientMock()
	c := cache.NewVehicleCache(repo, db, time.Minute)

	id := uuid.New()
	mockRedis.ExpectGet(fmt.Sprintf("vehicle:%s", id.String())).RedisNil()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()

	_, err := c.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
