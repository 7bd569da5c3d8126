package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/narender/stock-service/common/config"
)

// newResource builds the shared OTel resource describing this service instance.
func newResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.OTEL_SERVICE_NAME),
			semconv.ServiceVersionKey.String(cfg.SERVICE_VERSION),
			semconv.DeploymentEnvironmentKey.String(cfg.ENVIRONMENT),
		),
		resource.WithProcessRuntimeDescription(),
		resource.WithTelemetrySDK(),
	)
}
