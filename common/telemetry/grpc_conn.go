package telemetry

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/narender/stock-service/common/config"
)

// newOTLPConn builds the single gRPC client connection shared by the trace,
// metric, and log exporters.
func newOTLPConn(cfg *config.Config) (*grpc.ClientConn, error) {
	var transportCreds credentials.TransportCredentials
	if cfg.OTEL_EXPORTER_INSECURE {
		transportCreds = insecure.NewCredentials()
	} else {
		transportCreds = credentials.NewTLS(&tls.Config{})
	}

	conn, err := grpc.NewClient(cfg.OTEL_EXPORTER_OTLP_ENDPOINT,
		grpc.WithTransportCredentials(transportCreds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP gRPC connection to %s: %w", cfg.OTEL_EXPORTER_OTLP_ENDPOINT, err)
	}
	return conn, nil
}
