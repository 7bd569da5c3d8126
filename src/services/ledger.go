package services

import (
	"context"
	"sync"

	apierrors "github.com/narender/stock-service/common/apierrors"
)

// fetchQuantityFunc loads a product's current quantity from the warehouse.
type fetchQuantityFunc func(ctx context.Context, productID int) (int, *apierrors.AppError)

// BatchLedger is the request-scoped memo of each product's working quantity
// during one bulk batch. An entry is fetched from the warehouse exactly once,
// on first reference, and mutated in place afterwards. The ledger never
// writes upstream; it only tracks intended final quantities, and it dies with
// the batch.
//
// Each entry carries its own mutex so that a check-then-mutate on one product
// is a single critical section, while operations on different products run
// concurrently. The outer mutex only guards entry creation.
type BatchLedger struct {
	mu      sync.Mutex
	entries map[int]*ledgerEntry
	fetch   fetchQuantityFunc
}

type ledgerEntry struct {
	mu       sync.Mutex
	loaded   bool
	quantity int
}

// NewBatchLedger creates an empty ledger for one batch.
func NewBatchLedger(fetch fetchQuantityFunc) *BatchLedger {
	return &BatchLedger{
		entries: make(map[int]*ledgerEntry),
		fetch:   fetch,
	}
}

func (l *BatchLedger) entry(productID int) *ledgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[productID]
	if !ok {
		e = &ledgerEntry{}
		l.entries[productID] = e
	}
	return e
}

// load fetches the entry's quantity from the warehouse on first use.
// The caller must hold e.mu.
func (l *BatchLedger) load(ctx context.Context, e *ledgerEntry, productID int) *apierrors.AppError {
	if e.loaded {
		return nil
	}
	quantity, appErr := l.fetch(ctx, productID)
	if appErr != nil {
		return appErr
	}
	e.quantity = quantity
	e.loaded = true
	return nil
}

// Resolve returns the ledger's current value for the product, fetching it
// from the warehouse exactly once per batch.
func (l *BatchLedger) Resolve(ctx context.Context, productID int) (int, *apierrors.AppError) {
	e := l.entry(productID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if appErr := l.load(ctx, e, productID); appErr != nil {
		return 0, appErr
	}
	return e.quantity, nil
}

// Apply adds delta to the product's entry, creating it via the memoized
// fetch if absent, and returns the new quantity. The read-modify-write holds
// the entry lock throughout, so concurrent applies to the same product
// serialize instead of losing updates.
func (l *BatchLedger) Apply(ctx context.Context, productID, delta int) (int, *apierrors.AppError) {
	e := l.entry(productID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if appErr := l.load(ctx, e, productID); appErr != nil {
		return 0, appErr
	}
	e.quantity += delta
	return e.quantity, nil
}

// Reserve decrements the product's entry by amount only if the current
// quantity covers it, reporting whether it did. Check and decrement share
// one critical section: two line items racing on the same product cannot
// both observe the pre-decrement quantity.
func (l *BatchLedger) Reserve(ctx context.Context, productID, amount int) (bool, *apierrors.AppError) {
	e := l.entry(productID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if appErr := l.load(ctx, e, productID); appErr != nil {
		return false, appErr
	}
	if e.quantity < amount {
		return false, nil
	}
	e.quantity -= amount
	return true, nil
}

// Snapshot returns the final intended quantity for every product touched in
// this batch. Call it only after all line-item tasks have completed.
func (l *BatchLedger) Snapshot() map[int]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	final := make(map[int]int, len(l.entries))
	for productID, e := range l.entries {
		e.mu.Lock()
		if e.loaded {
			final[productID] = e.quantity
		}
		e.mu.Unlock()
	}
	return final
}
