package services

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/telemetry/metric"
	commontrace "github.com/narender/stock-service/common/telemetry/trace"
	"github.com/narender/stock-service/src/models"
)

func (s *stockService) Retrieve(ctx context.Context, items []models.LineItem) (appErr *apierrors.AppError) {
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

	s.logger.InfoContext(ctx, "Batch Controller: Processing bulk retrieval",
		slog.String("batch_id", batchID),
		slog.Int("line_items", len(items)))

	ledger := NewBatchLedger(s.warehouse.GetStock)
	outcomes := make([]models.LineOutcome, len(items))

	// One task per line item. Insufficiency is a local outcome, never an
	// error: every sibling still gets evaluated so the caller learns the
	// full set of unsatisfiable products in one round trip. Only a
	// warehouse failure aborts the group.
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			sufficient, resErr := ledger.Reserve(gctx, item.ProductID, item.Amount)
			if resErr != nil {
				return resErr
			}
			outcomes[i] = models.LineOutcome{ProductID: item.ProductID, Sufficient: sufficient}
			if !sufficient {
				s.logger.WarnContext(gctx, "Batch Controller: Line item blocked - insufficient stock",
					slog.String("batch_id", batchID),
					slog.Int("product_id", item.ProductID),
					slog.Int("requested", item.Amount))
				metric.IncrementReservationFailure(gctx, item.ProductID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metric.RecordBatch(ctx, "retrieve", len(items), false)
		appErr = asAppError(err)
		return
	}

	failed := lo.Uniq(lo.FilterMap(outcomes, func(o models.LineOutcome, _ int) (int, bool) {
		return o.ProductID, !o.Sufficient
	}))
	slices.Sort(failed)

	if len(failed) > 0 {
		// The provisional decrements live only in the ledger, which is
		// discarded here; nothing was written upstream.
		s.logger.WarnContext(ctx, "Batch Controller: Retrieval batch rejected",
			slog.String("batch_id", batchID),
			slog.String("failed_product_ids", apierrors.FormatProductIDs(failed)))
		span.SetStatus(codes.Error, "Insufficient stock")
		metric.RecordBatch(ctx, "retrieve", len(items), false)
		appErr = apierrors.NewInsufficientStockError(failed)
		return
	}

	appErr = s.commitLedger(ctx, batchID, ledger)
	metric.RecordBatch(ctx, "retrieve", len(items), appErr == nil)
	if appErr == nil {
		s.logger.InfoContext(ctx, "Batch Controller: Retrieval batch committed",
			slog.String("batch_id", batchID),
			slog.Int("products_written", len(ledger.Snapshot())))
	}
	return
}
