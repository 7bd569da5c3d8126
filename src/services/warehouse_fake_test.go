package services

import (
	"context"
	"fmt"
	"sync"

	apierrors "github.com/narender/stock-service/common/apierrors"
)

// fakeWarehouse is an in-memory stand-in for the central warehouse. It
// mimics the real client's plain read/write contract and counts calls so
// tests can assert fetch memoization and write coalescing.
type fakeWarehouse struct {
	mu          sync.Mutex
	stock       map[int]int
	getCalls    map[int]int
	updateCalls map[int]int

	failGet    map[int]bool
	failUpdate map[int]bool
}

func newFakeWarehouse(initial map[int]int) *fakeWarehouse {
	stock := make(map[int]int, len(initial))
	for id, qty := range initial {
		stock[id] = qty
	}
	return &fakeWarehouse{
		stock:       stock,
		getCalls:    make(map[int]int),
		updateCalls: make(map[int]int),
		failGet:     make(map[int]bool),
		failUpdate:  make(map[int]bool),
	}
}

func (f *fakeWarehouse) GetStock(_ context.Context, productID int) (int, *apierrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls[productID]++
	if f.failGet[productID] {
		return 0, apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			"Central warehouse is currently unreachable for stock information",
			fmt.Errorf("simulated outage for product %d", productID))
	}
	qty, ok := f.stock[productID]
	if !ok {
		return 0, apierrors.NewBusinessError(apierrors.ErrCodeProductNotFound,
			fmt.Sprintf("Product %d is unknown to the central warehouse", productID), nil)
	}
	return qty, nil
}

func (f *fakeWarehouse) UpdateStock(_ context.Context, productID, quantity int) *apierrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls[productID]++
	if f.failUpdate[productID] {
		return apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			"Central warehouse is currently unreachable, please try again later",
			fmt.Errorf("simulated outage for product %d", productID))
	}
	f.stock[productID] = quantity
	return nil
}

func (f *fakeWarehouse) quantity(productID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[productID]
}

func (f *fakeWarehouse) gets(productID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[productID]
}

func (f *fakeWarehouse) updates(productID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls[productID]
}

func (f *fakeWarehouse) totalUpdates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.updateCalls {
		total += n
	}
	return total
}

// fakeCache is a map-backed StockCache for lookup tests.
type fakeCache struct {
	mu      sync.Mutex
	values  map[int]int
	getErr  error
	setErr  error
	getHits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[int]int)}
}

func (c *fakeCache) Get(_ context.Context, productID int) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	qty, ok := c.values[productID]
	if ok {
		c.getHits++
	}
	return qty, ok, nil
}

func (c *fakeCache) Set(_ context.Context, productID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.values[productID] = quantity
	return nil
}
