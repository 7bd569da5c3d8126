package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/narender/stock-service/common/apierrors"
)

func TestLedgerFetchesEachProductOnce(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	qty, appErr := ledger.Resolve(ctx, 1)
	require.Nil(t, appErr)
	assert.Equal(t, 10, qty)

	ok, appErr := ledger.Reserve(ctx, 1, 4)
	require.Nil(t, appErr)
	assert.True(t, ok)

	qty, appErr = ledger.Apply(ctx, 1, 2)
	require.Nil(t, appErr)
	assert.Equal(t, 8, qty)

	assert.Equal(t, 1, warehouse.gets(1), "product should be fetched once per batch")
}

func TestLedgerReserveInsufficient(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 3})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	ok, appErr := ledger.Reserve(ctx, 1, 5)
	require.Nil(t, appErr)
	assert.False(t, ok)

	// A failed reservation must not change the working quantity.
	qty, appErr := ledger.Resolve(ctx, 1)
	require.Nil(t, appErr)
	assert.Equal(t, 3, qty)
}

func TestLedgerReserveExactQuantity(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 5})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	ok, appErr := ledger.Reserve(ctx, 1, 5)
	require.Nil(t, appErr)
	assert.True(t, ok)

	qty, appErr := ledger.Resolve(ctx, 1)
	require.Nil(t, appErr)
	assert.Equal(t, 0, qty)
}

func TestLedgerConcurrentReservesSameProduct(t *testing.T) {
	// With 10 on hand, exactly two of three concurrent reservations of 4
	// can succeed. A lost update would let all three through.
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	const attempts = 3
	results := make([]bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, appErr := ledger.Reserve(ctx, 1, 4)
			assert.Nil(t, appErr)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 2, succeeded)

	qty, appErr := ledger.Resolve(ctx, 1)
	require.Nil(t, appErr)
	assert.Equal(t, 2, qty)
	assert.Equal(t, 1, warehouse.gets(1))
}

func TestLedgerConcurrentResolveFetchesOnce(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{7: 42})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qty, appErr := ledger.Resolve(ctx, 7)
			assert.Nil(t, appErr)
			assert.Equal(t, 42, qty)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, warehouse.gets(7))
}

func TestLedgerFetchErrorPropagates(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10})
	warehouse.failGet[1] = true
	ledger := NewBatchLedger(warehouse.GetStock)

	_, appErr := ledger.Resolve(context.Background(), 1)
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeServiceUnavailable, appErr.Code)

	// A failed load is not memoized as a value.
	snapshot := ledger.Snapshot()
	assert.Empty(t, snapshot)
}

func TestLedgerSnapshotCoversOnlyTouchedProducts(t *testing.T) {
	warehouse := newFakeWarehouse(map[int]int{1: 10, 2: 20, 3: 30})
	ledger := NewBatchLedger(warehouse.GetStock)
	ctx := context.Background()

	_, appErr := ledger.Apply(ctx, 1, 5)
	require.Nil(t, appErr)
	ok, appErr := ledger.Reserve(ctx, 2, 6)
	require.Nil(t, appErr)
	require.True(t, ok)

	snapshot := ledger.Snapshot()
	assert.Equal(t, map[int]int{1: 15, 2: 14}, snapshot)
}
