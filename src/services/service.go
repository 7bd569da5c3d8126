package services

import (
	"context"
	"log/slog"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/globals"
	"github.com/narender/stock-service/src/models"
)

// StockService answers stock queries and coordinates bulk batches against
// the upstream warehouse.
type StockService interface {
	// GetStock returns a product's quantity, reading through the TTL cache.
	GetStock(ctx context.Context, productID int) (int, *apierrors.AppError)
	// Retrieve reserves stock for every line item or commits nothing.
	Retrieve(ctx context.Context, items []models.LineItem) *apierrors.AppError
	// Restock replenishes stock for every line item; it has no failure mode
	// short of the warehouse itself failing.
	Restock(ctx context.Context, items []models.LineItem) *apierrors.AppError
}

// StockCache is the process-wide read-through cache consulted only by
// single-item lookups. Bulk batches never touch it, and nothing invalidates
// it when a batch changes a product's true quantity: a cached value may be
// stale for up to the TTL window.
type StockCache interface {
	// Get returns the cached quantity and whether the key was present.
	Get(ctx context.Context, productID int) (int, bool, error)
	// Set stores the quantity under the cache's TTL.
	Set(ctx context.Context, productID int, quantity int) error
}

type stockService struct {
	warehouse WarehouseClient
	cache     StockCache
	logger    *slog.Logger
}

// NewStockService wires the coordinator against the warehouse client and the
// lookup cache.
func NewStockService(warehouse WarehouseClient, cache StockCache) StockService {
	return &stockService{
		warehouse: warehouse,
		cache:     cache,
		logger:    globals.Logger(),
	}
}

// asAppError normalizes errors crossing a goroutine boundary back into the
// AppError the HTTP layer understands.
func asAppError(err error) *apierrors.AppError {
	if appErr, ok := err.(*apierrors.AppError); ok {
		return appErr
	}
	return apierrors.NewApplicationError(apierrors.ErrCodeInternalProcessing,
		"Batch processing failed unexpectedly", err)
}
