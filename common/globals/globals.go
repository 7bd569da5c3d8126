package globals

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/narender/stock-service/common/config"
	"github.com/narender/stock-service/common/log"
	"github.com/narender/stock-service/common/telemetry"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	// once ensures that initialization logic runs exactly once.
	once              sync.Once
	err               error
	telemetryShutdown func(context.Context) error
)

// Init initializes global configuration, logging, and telemetry setup.
// It ensures this initialization happens only once using sync.Once.
// Returns an error if any initialization step fails.
func Init() error {
	once.Do(func() {
		cfg, err = config.LoadConfig()
		if err != nil {
			err = fmt.Errorf("failed to load config during init: %w", err)
			return
		}

		telemetryShutdown, err = telemetry.InitTelemetry(cfg)
		if err != nil {
			err = fmt.Errorf("failed to initialize telemetry during init: %w", err)
			fmt.Printf("CRITICAL: Telemetry initialization failed: %v\n", err)
			return
		}

		if initErr := log.Init(cfg); initErr != nil {
			err = fmt.Errorf("failed to initialize logger during init: %w", initErr)
			return
		}
		logger = log.L
		if logger == nil {
			err = fmt.Errorf("log.Init() succeeded but log.L is nil")
			return
		}
	})

	return err
}

// Cfg returns the loaded configuration, panicking if Init hasn't been successfully called.
func Cfg() *config.Config {
	if cfg == nil {
		panic("configuration not initialized: call globals.Init() first and check error")
	}
	return cfg
}

// Logger returns the initialized logger. Before Init (tests, early boot) it
// falls back to the default slog logger.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// GetCfg returns the loaded configuration, potentially nil if Init failed or wasn't called.
func GetCfg() *config.Config {
	return cfg
}

// TelemetryShutdown returns the master telemetry shutdown function, or nil
// when telemetry was never initialized.
func TelemetryShutdown() func(context.Context) error {
	return telemetryShutdown
}
