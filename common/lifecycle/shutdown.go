package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/narender/stock-service/common/globals"
)

// Shutdowner is anything that can be shut down with a deadline.
type Shutdowner interface {
	ShutdownWithContext(ctx context.Context) error
}

// WaitForGracefulShutdown blocks until a SIGINT or SIGTERM signal is received,
// then coordinates the graceful shutdown of the server and telemetry, in that
// order, using the timeouts from configuration.
func WaitForGracefulShutdown(server Shutdowner, telemetryShutdown func(context.Context) error) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger := globals.Logger()
	cfg := globals.Cfg()

	logger.Info("Received shutdown signal, initiating graceful shutdown", slog.String("signal", sig.String()))

	// Shutdown runs on its own context, independent of any request contexts.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SHUTDOWN_TOTAL_TIMEOUT)
	defer cancel()

	shutdownTasks := []struct {
		name     string
		timeout  time.Duration
		shutdown func(context.Context) error
	}{
		{"server", cfg.SHUTDOWN_SERVER_TIMEOUT, server.ShutdownWithContext},
		{"telemetry", cfg.SHUTDOWN_OTEL_TIMEOUT, telemetryShutdown},
	}

	var shutdownErrs error
	for _, task := range shutdownTasks {
		if task.shutdown == nil {
			continue
		}

		taskCtx, taskCancel := context.WithTimeout(shutdownCtx, task.timeout)
		logger.Info("Shutting down component", slog.String("component", task.name), slog.Duration("timeout", task.timeout))
		if err := task.shutdown(taskCtx); err != nil {
			logger.Error("Error during component shutdown", slog.String("component", task.name), slog.Any("error", err))
			shutdownErrs = errors.Join(shutdownErrs, fmt.Errorf("%s shutdown error: %w", task.name, err))
		}
		taskCancel()
	}

	if shutdownErrs != nil {
		logger.Error("Graceful shutdown finished with errors", slog.Any("error", shutdownErrs))
		return
	}
	logger.Info("Graceful shutdown complete")
}
