package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/telemetry/metric"
	commontrace "github.com/narender/stock-service/common/telemetry/trace"
)

func (s *stockService) GetStock(ctx context.Context, productID int) (quantity int, appErr *apierrors.AppError) {
	newCtx, span := commontrace.StartSpan(ctx,
		attribute.Int("product.id", productID),
	)
	ctx = newCtx
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	s.logger.DebugContext(ctx, "Stock Desk: Looking up product stock",
		slog.Int("product_id", productID))

	if s.cache != nil {
		cached, hit, cacheErr := s.cache.Get(ctx, productID)
		if cacheErr != nil {
			// The lookup stays available when the cache backend is down;
			// the warehouse answers instead.
			s.logger.WarnContext(ctx, "Stock Desk: Cache lookup degraded, asking warehouse directly",
				slog.Int("product_id", productID),
				slog.String("error", cacheErr.Error()))
		} else if hit {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			s.logger.DebugContext(ctx, "Stock Desk: Answering from cache",
				slog.Int("product_id", productID),
				slog.Int("quantity", cached))
			return cached, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	quantity, appErr = s.warehouse.GetStock(ctx, productID)
	if appErr != nil {
		return 0, appErr
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, productID, quantity); cacheErr != nil {
			s.logger.WarnContext(ctx, "Stock Desk: Failed to cache stock level",
				slog.Int("product_id", productID),
				slog.String("error", cacheErr.Error()))
		}
	}

	metric.UpdateStockLevel(ctx, productID, int64(quantity))
	s.logger.InfoContext(ctx, "Stock Desk: Stock level retrieved from warehouse",
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity))
	return quantity, nil
}
