package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/telemetry/metric"
)

// commitLedger writes each touched product's final ledger quantity to the
// warehouse, one write per distinct product, all writes concurrent (the
// ledger already coalesced repeats, so the writes target disjoint products).
//
// Two concurrent batches touching the same product can still clobber each
// other's write here: the warehouse offers no compare-and-swap and this
// service holds no cross-request lock. Known limitation, not masked.
func (s *stockService) commitLedger(ctx context.Context, batchID string, ledger *BatchLedger) *apierrors.AppError {
	final := ledger.Snapshot()
	if len(final) == 0 {
		return nil
	}

	s.logger.DebugContext(ctx, "Batch Controller: Committing final quantities to central warehouse",
		slog.String("batch_id", batchID),
		slog.Int("products", len(final)))

	// Deliberately no shared cancellation: sufficiency is already decided,
	// so every write gets its attempt even if a sibling fails. Failures are
	// collected and reported, not rolled back and not retried; the caller
	// can resubmit the named products.
	var g errgroup.Group
	var mu sync.Mutex
	var unconfirmed []int
	var firstErr *apierrors.AppError

	for productID, quantity := range final {
		g.Go(func() error {
			if upErr := s.warehouse.UpdateStock(ctx, productID, quantity); upErr != nil {
				mu.Lock()
				unconfirmed = append(unconfirmed, productID)
				if firstErr == nil {
					firstErr = upErr
				}
				mu.Unlock()
				return upErr
			}
			metric.UpdateStockLevel(ctx, productID, int64(quantity))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slices.Sort(unconfirmed)
		s.logger.ErrorContext(ctx, "Batch Controller: Commit phase left warehouse writes unconfirmed",
			slog.String("batch_id", batchID),
			slog.String("unconfirmed_product_ids", apierrors.FormatProductIDs(unconfirmed)),
			slog.Any("error", err))
		return apierrors.NewApplicationError(apierrors.ErrCodeCommitIncomplete,
			fmt.Sprintf("Stock update unconfirmed for products: %s; confirmed sibling writes were not rolled back",
				apierrors.FormatProductIDs(unconfirmed)),
			firstErr)
	}
	return nil
}
