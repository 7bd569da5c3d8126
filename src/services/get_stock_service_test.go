package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/narender/stock-service/common/apierrors"
)

func TestGetStockCacheMissFetchesAndPopulates(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	cache := newFakeCache()
	svc := NewStockService(warehouse, cache)

	qty, appErr := svc.GetStock(context.Background(), 1)
	require.Nil(t, appErr)
	assert.Equal(t, 10, qty)
	assert.Equal(t, 1, warehouse.gets(1))
	assert.Equal(t, map[int]int{1: 10}, cache.values)
}

func TestGetStockCacheHitSkipsWarehouse(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	cache := newFakeCache()
	svc := NewStockService(warehouse, cache)

	_, appErr := svc.GetStock(context.Background(), 1)
	require.Nil(t, appErr)

	// Stock changes upstream, but the cached value keeps answering.
	warehouse.stock[1] = 3

	qty, appErr := svc.GetStock(context.Background(), 1)
	require.Nil(t, appErr)
	assert.Equal(t, 10, qty)
	assert.Equal(t, 1, warehouse.gets(1), "cache hit must not reach the warehouse")
}

func TestGetStockCacheErrorFallsBackToWarehouse(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	cache := newFakeCache()
	cache.getErr = errors.New("cache backend down")
	svc := NewStockService(warehouse, cache)

	qty, appErr := svc.GetStock(context.Background(), 1)
	require.Nil(t, appErr)
	assert.Equal(t, 10, qty)
	assert.Equal(t, 1, warehouse.gets(1))
}

func TestGetStockCacheSetFailureIsNotFatal(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	cache := newFakeCache()
	cache.setErr = errors.New("cache backend down")
	svc := NewStockService(warehouse, cache)

	qty, appErr := svc.GetStock(context.Background(), 1)
	require.Nil(t, appErr)
	assert.Equal(t, 10, qty)
}

func TestGetStockUnknownProduct(t *testing.T) {
	warehouse := newFakeWarehouse(nil)
	svc := NewStockService(warehouse, newFakeCache())

	_, appErr := svc.GetStock(context.Background(), 99)
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeProductNotFound, appErr.Code)
}

func TestGetStockWarehouseErrorsAreNotCached(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	warehouse.failGet[1] = true
	cache := newFakeCache()
	svc := NewStockService(warehouse, cache)

	_, appErr := svc.GetStock(context.Background(), 1)
	require.NotNil(t, appErr)
	assert.Empty(t, cache.values)
}
