package log

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/narender/stock-service/common/config"
)

// Global slog logger instance
var L *slog.Logger

// Init builds the process-wide logger. In production the console handler is
// fanned out to the OTel log bridge so records reach the collector; in
// development only the console handler runs.
func Init(cfg *config.Config) error {
	if L != nil {
		slog.Warn("Logger already initialized") // Use default slog before L is set
		return nil
	}

	var level slog.Level
	switch strings.ToLower(cfg.LOG_LEVEL) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default: // "info" or anything else
		level = slog.LevelInfo
	}

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		AddSource: true,
		Level:     level,
	})

	var handler slog.Handler
	if strings.ToLower(cfg.ENVIRONMENT) == "production" {
		handler = slogmulti.Fanout(
			consoleHandler,
			otelslog.NewHandler(cfg.OTEL_SERVICE_NAME),
		)
	} else {
		handler = consoleHandler
	}

	L = slog.New(handler)
	slog.SetDefault(L)

	L.Info("Logger initialized and set as default",
		slog.String("environment", cfg.ENVIRONMENT),
		slog.String("level", level.String()))
	return nil
}
