package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/narender/stock-service/common/config"
)

// shutdownFunc defines the signature for shutdown functions returned by initializers.
type shutdownFunc func(context.Context) error

// InitTelemetry initializes OpenTelemetry tracing, metrics, and logging.
// It creates the shared resource, sets up the OTLP providers, and returns a
// master shutdown function that flushes all of them.
func InitTelemetry(cfg *config.Config) (func(context.Context) error, error) {
	log.Printf("Initializing telemetry for service: %s, endpoint: %s, insecure: %t",
		cfg.OTEL_SERVICE_NAME, cfg.OTEL_EXPORTER_OTLP_ENDPOINT, cfg.OTEL_EXPORTER_INSECURE)

	// Use a timeout for the initial setup context.
	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := newResource(initCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry resource: %w", err)
	}

	// All three signal exporters multiplex over one gRPC connection.
	conn, err := newOTLPConn(cfg)
	if err != nil {
		return nil, err
	}

	shutdownFuncs := make([]shutdownFunc, 0, 3)
	var initErr error

	tracerShutdown, err := initTracerProvider(initCtx, cfg, res, conn)
	if err != nil {
		initErr = errors.Join(initErr, fmt.Errorf("tracer init failed: %w", err))
	} else if tracerShutdown != nil {
		shutdownFuncs = append(shutdownFuncs, tracerShutdown)
	}

	meterShutdown, err := initMeterProvider(initCtx, res, conn)
	if err != nil {
		initErr = errors.Join(initErr, fmt.Errorf("meter init failed: %w", err))
	} else if meterShutdown != nil {
		shutdownFuncs = append(shutdownFuncs, meterShutdown)
	}

	// Must run before log.Init: the otelslog bridge picks up the global
	// logger provider installed here.
	loggerShutdown, err := initLoggerProvider(initCtx, res, conn)
	if err != nil {
		initErr = errors.Join(initErr, fmt.Errorf("logger init failed: %w", err))
	} else if loggerShutdown != nil {
		shutdownFuncs = append(shutdownFuncs, loggerShutdown)
	}

	masterShutdown := createMasterShutdown(shutdownFuncs, conn)

	if initErr != nil {
		log.Printf("OpenTelemetry initialization failed with errors: %v", initErr)
		// Hand back the partial shutdown so whatever did start gets flushed.
		return masterShutdown, initErr
	}

	log.Println("OpenTelemetry initialization complete.")
	return masterShutdown, nil
}

// createMasterShutdown creates a function that calls all individual shutdown
// functions concurrently, then closes the shared exporter connection.
func createMasterShutdown(shutdownFuncs []shutdownFunc, conn *grpc.ClientConn) func(context.Context) error {
	return func(shutdownCtx context.Context) error {
		var wg sync.WaitGroup
		var mu sync.Mutex
		var multiErr error

		individualShutdownTimeout := 5 * time.Second

		wg.Add(len(shutdownFuncs))
		for _, fn := range shutdownFuncs {
			go func(shutdown shutdownFunc) {
				defer wg.Done()
				ctx, cancel := context.WithTimeout(shutdownCtx, individualShutdownTimeout)
				defer cancel()

				if err := shutdown(ctx); err != nil {
					mu.Lock()
					multiErr = errors.Join(multiErr, err)
					mu.Unlock()
				}
			}(fn)
		}

		wg.Wait()

		// Providers have flushed; the connection can go.
		if err := conn.Close(); err != nil {
			mu.Lock()
			multiErr = errors.Join(multiErr, fmt.Errorf("closing OTLP connection: %w", err))
			mu.Unlock()
		}

		if multiErr != nil {
			log.Printf("OpenTelemetry shutdown finished with errors: %v", multiErr)
		}
		return multiErr
	}
}
