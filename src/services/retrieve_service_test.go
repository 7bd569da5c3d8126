package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/src/models"
)

func TestRetrieveCommitsWhenAllLinesSufficient(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 4},
		{ProductID: 1, Amount: 4},
	})
	require.Nil(t, appErr)

	assert.Equal(t, 2, warehouse.quantity(1))
	assert.Equal(t, 1, warehouse.gets(1), "repeated product should be fetched once")
	assert.Equal(t, 1, warehouse.updates(1), "repeated product should be written once")
}

func TestRetrieveRejectsWhenCumulativeDemandExceedsStock(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 5})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 3},
		{ProductID: 1, Amount: 3},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeInsufficientStock, appErr.Code)

	var insufficiency *apierrors.InsufficientStockError
	require.True(t, errors.As(appErr, &insufficiency))
	assert.Equal(t, []int{1}, insufficiency.ProductIDs)

	// Nothing may be written when the batch is rejected.
	assert.Equal(t, 5, warehouse.quantity(1))
	assert.Equal(t, 0, warehouse.totalUpdates())
}

func TestRetrieveMixedBatchListsOnlyInsufficientProducts(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10, 2: 1})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 4},
		{ProductID: 2, Amount: 5},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeInsufficientStock, appErr.Code)

	var insufficiency *apierrors.InsufficientStockError
	require.True(t, errors.As(appErr, &insufficiency))
	assert.Equal(t, []int{2}, insufficiency.ProductIDs)

	// The sufficient line must not commit either: all or nothing.
	assert.Equal(t, 10, warehouse.quantity(1))
	assert.Equal(t, 1, warehouse.quantity(2))
	assert.Equal(t, 0, warehouse.totalUpdates())
}

func TestRetrieveReportsEachInsufficientProductOnce(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 2, 2: 0})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 5},
		{ProductID: 1, Amount: 5},
		{ProductID: 2, Amount: 1},
	})
	require.NotNil(t, appErr)

	var insufficiency *apierrors.InsufficientStockError
	require.True(t, errors.As(appErr, &insufficiency))
	assert.Equal(t, []int{1, 2}, insufficiency.ProductIDs)
}

func TestRetrieveMultipleProductsCommitTogether(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10, 2: 20, 3: 30})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 1},
		{ProductID: 2, Amount: 2},
		{ProductID: 3, Amount: 3},
	})
	require.Nil(t, appErr)

	assert.Equal(t, 9, warehouse.quantity(1))
	assert.Equal(t, 18, warehouse.quantity(2))
	assert.Equal(t, 27, warehouse.quantity(3))
	assert.Equal(t, 3, warehouse.totalUpdates())
}

func TestRetrievePropagatesWarehouseFetchFailure(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10, 2: 20})
	warehouse.failGet[2] = true
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 4},
		{ProductID: 2, Amount: 4},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeServiceUnavailable, appErr.Code)

	assert.Equal(t, 0, warehouse.totalUpdates())
	assert.Equal(t, 10, warehouse.quantity(1))
}

func TestRetrieveUnknownProductFailsBatch(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 2},
		{ProductID: 99, Amount: 1},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeProductNotFound, appErr.Code)
	assert.Equal(t, 0, warehouse.totalUpdates())
}

func TestRetrieveCommitFailureReportsUnconfirmedProducts(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10, 2: 20})
	warehouse.failUpdate[2] = true
	svc := NewStockService(warehouse, nil)

	appErr := svc.Retrieve(context.Background(), []models.LineItem{
		{ProductID: 1, Amount: 4},
		{ProductID: 2, Amount: 4},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeCommitIncomplete, appErr.Code)
	assert.Contains(t, appErr.Message, "2")

	// The sibling write that succeeded stays written: no rollback.
	assert.Equal(t, 6, warehouse.quantity(1))
	assert.Equal(t, 20, warehouse.quantity(2))
}
