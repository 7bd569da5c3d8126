package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/telemetry/metric"
	commontrace "github.com/narender/stock-service/common/telemetry/trace"
	"github.com/narender/stock-service/src/models"
)

func (s *stockService) Restock(ctx context.Context, items []models.LineItem) (appErr *apierrors.AppError) {
	batchID := uuid.NewString()

	newCtx, span := commontrace.StartSpan(ctx,
		attribute.String("stock.batch_id", batchID),
		attribute.Int("stock.batch_size", len(items)),
	)
	ctx = newCtx
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	s.logger.InfoContext(ctx, "Batch Controller: Processing bulk restock",
		slog.String("batch_id", batchID),
		slog.Int("line_items", len(items)))

	ledger := NewBatchLedger(s.warehouse.GetStock)

	// No item-level failure mode: every increment lands. The batch only
	// fails if the warehouse itself does.
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			if _, applyErr := ledger.Apply(gctx, item.ProductID, item.Amount); applyErr != nil {
				return applyErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metric.RecordBatch(ctx, "restock", len(items), false)
		appErr = asAppError(err)
		return
	}

	appErr = s.commitLedger(ctx, batchID, ledger)
	metric.RecordBatch(ctx, "restock", len(items), appErr == nil)
	if appErr == nil {
		s.logger.InfoContext(ctx, "Batch Controller: Restock batch committed",
			slog.String("batch_id", batchID),
			slog.Int("products_written", len(ledger.Snapshot())))
	}
	return
}
