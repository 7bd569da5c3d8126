package telemetry

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"

	"github.com/narender/stock-service/common/telemetry/metric"
)

// initMeterProvider sets up the OTLP metric exporter over the shared gRPC
// connection, registers the provider globally, initializes the domain
// instruments, and returns its shutdown function.
func initMeterProvider(ctx context.Context, res *resource.Resource, conn *grpc.ClientConn) (shutdownFunc, error) {
	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Go runtime and host metrics ride the same provider.
	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		log.Printf("Warning: Failed to start runtime metrics: %v", err)
	}
	if err := host.Start(host.WithMeterProvider(mp)); err != nil {
		log.Printf("Warning: Failed to start host metrics: %v", err)
	}

	if err := metric.InitializeStockMetrics(mp.Meter(metric.StockInstrumentationName)); err != nil {
		return mp.Shutdown, fmt.Errorf("failed to initialize stock metric instruments: %w", err)
	}

	return mp.Shutdown, nil
}
