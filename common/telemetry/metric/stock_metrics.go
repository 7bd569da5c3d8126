package metric

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	StockInstrumentationName = "github.com/narender/stock-service"

	AttrProductID = "product.id"
	AttrOperation = "stock.operation"

	batchCountMetricName      = "stock.batches.count"
	batchSizeMetricName       = "stock.batch.size"
	reservationFailMetricName = "stock.reservations.failed"
	stockLevelMetricName      = "stock.level"
)

var (
	batchCounter       metric.Int64Counter
	batchSizeHist      metric.Int64Histogram
	reservationFailCtr metric.Int64Counter
	stockLevelGauge    metric.Int64Gauge
)

// InitializeStockMetrics creates the domain instruments on the given meter.
func InitializeStockMetrics(meter metric.Meter) error {
	var err, multiErr error

	batchCounter, err = meter.Int64Counter(
		batchCountMetricName,
		metric.WithDescription("Counts bulk stock batches by operation and outcome."),
		metric.WithUnit("{batch}"),
	)
	multiErr = errors.Join(multiErr, err)

	batchSizeHist, err = meter.Int64Histogram(
		batchSizeMetricName,
		metric.WithDescription("Number of line items per bulk stock batch."),
		metric.WithUnit("{item}"),
	)
	multiErr = errors.Join(multiErr, err)

	reservationFailCtr, err = meter.Int64Counter(
		reservationFailMetricName,
		metric.WithDescription("Counts line items rejected for insufficient stock."),
		metric.WithUnit("{item}"),
	)
	multiErr = errors.Join(multiErr, err)

	stockLevelGauge, err = meter.Int64Gauge(
		stockLevelMetricName,
		metric.WithDescription("Last known stock quantity per product."),
		metric.WithUnit("{items}"),
	)
	multiErr = errors.Join(multiErr, err)

	return multiErr
}

// RecordBatch records one completed bulk batch.
// operation is "retrieve" or "restock"; succeeded reflects the batch decision.
func RecordBatch(ctx context.Context, operation string, size int, succeeded bool) {
	if batchCounter == nil || batchSizeHist == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.Bool("batch.succeeded", succeeded),
	)
	batchCounter.Add(ctx, 1, attrs)
	batchSizeHist.Record(ctx, int64(size), metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// IncrementReservationFailure counts one insufficient-stock rejection.
func IncrementReservationFailure(ctx context.Context, productID int) {
	if reservationFailCtr == nil {
		return
	}
	reservationFailCtr.Add(ctx, 1, metric.WithAttributes(attribute.Int(AttrProductID, productID)))
}

// UpdateStockLevel records the last quantity observed or committed for a product.
func UpdateStockLevel(ctx context.Context, productID int, quantity int64) {
	if stockLevelGauge == nil {
		return
	}
	stockLevelGauge.Record(ctx, quantity, metric.WithAttributes(attribute.Int(AttrProductID, productID)))
}
