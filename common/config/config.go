package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration settings. Field names mirror the
// environment variables they are loaded from.
type Config struct {
	// Service information
	ENVIRONMENT     string `env:"ENVIRONMENT" envDefault:"development"`
	SERVICE_VERSION string `env:"SERVICE_VERSION" envDefault:"dev"`

	// Logging configuration
	LOG_LEVEL string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	STOCK_SERVICE_PORT string `env:"STOCK_SERVICE_PORT" envDefault:"8083"`

	// Upstream warehouse service
	WAREHOUSE_SERVICE_URL    string        `env:"WAREHOUSE_SERVICE_URL" envDefault:"http://localhost:8084"`
	WAREHOUSE_CLIENT_TIMEOUT time.Duration `env:"WAREHOUSE_CLIENT_TIMEOUT" envDefault:"10s"`

	// Stock lookup cache
	REDIS_ADDR      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	REDIS_PASSWORD  string        `env:"REDIS_PASSWORD"`
	REDIS_DB        int           `env:"REDIS_DB" envDefault:"0"`
	STOCK_CACHE_TTL time.Duration `env:"STOCK_CACHE_TTL" envDefault:"5m"`

	// OpenTelemetry configuration
	OTEL_SERVICE_NAME           string  `env:"OTEL_SERVICE_NAME" envDefault:"stock-service"`
	OTEL_EXPORTER_OTLP_ENDPOINT string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTEL_EXPORTER_INSECURE      bool    `env:"OTEL_EXPORTER_INSECURE" envDefault:"true"`
	OTEL_SAMPLE_RATIO           float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1.0"`

	// Shutdown timeouts
	SHUTDOWN_TOTAL_TIMEOUT  time.Duration `env:"SHUTDOWN_TOTAL_TIMEOUT" envDefault:"30s"`
	SHUTDOWN_SERVER_TIMEOUT time.Duration `env:"SHUTDOWN_SERVER_TIMEOUT" envDefault:"10s"`
	SHUTDOWN_OTEL_TIMEOUT   time.Duration `env:"SHUTDOWN_OTEL_TIMEOUT" envDefault:"5s"`

	// Fault injection (debugutils)
	SIMULATE_DELAY_ENABLED            bool    `env:"SIMULATE_DELAY_ENABLED" envDefault:"false"`
	SIMULATE_DELAY_MIN_MS             int     `env:"SIMULATE_DELAY_MIN_MS" envDefault:"0"`
	SIMULATE_DELAY_MAX_MS             int     `env:"SIMULATE_DELAY_MAX_MS" envDefault:"0"`
	SIMULATE_RANDOM_ERROR_ENABLED     bool    `env:"SIMULATE_RANDOM_ERROR_ENABLED" envDefault:"false"`
	SIMULATE_OVERALL_ERROR_CHANCE     float64 `env:"SIMULATE_OVERALL_ERROR_CHANCE" envDefault:"0.1"`
	SIMULATE_APPLICATION_ERROR_WEIGHT int     `env:"SIMULATE_APPLICATION_ERROR_WEIGHT" envDefault:"1"`
	SIMULATE_BUSINESS_ERROR_WEIGHT    int     `env:"SIMULATE_BUSINESS_ERROR_WEIGHT" envDefault:"1"`
}

// LoadConfig reads configuration from a local .env file (if present) and the
// process environment, then validates the result.
func LoadConfig() (*Config, error) {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment configuration: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %v", errs)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() []error {
	validator := NewValidator()

	validator.RequireNonEmpty("OTEL_SERVICE_NAME", c.OTEL_SERVICE_NAME)
	validator.RequireNonEmpty("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTEL_EXPORTER_OTLP_ENDPOINT)
	validator.RequireNonEmpty("WAREHOUSE_SERVICE_URL", c.WAREHOUSE_SERVICE_URL)
	validator.RequireNonEmpty("REDIS_ADDR", c.REDIS_ADDR)

	validator.RequireOneOf("LOG_LEVEL", c.LOG_LEVEL, []string{"debug", "info", "warn", "error"})
	validator.RequireOneOf("ENVIRONMENT", c.ENVIRONMENT, []string{"development", "production"})

	validator.RequirePort("STOCK_SERVICE_PORT", c.STOCK_SERVICE_PORT)
	validator.RequireRatio("OTEL_SAMPLE_RATIO", c.OTEL_SAMPLE_RATIO)

	if c.STOCK_CACHE_TTL <= 0 {
		validator.AddError("STOCK_CACHE_TTL", "must be a positive duration")
	}
	if c.WAREHOUSE_CLIENT_TIMEOUT <= 0 {
		validator.AddError("WAREHOUSE_CLIENT_TIMEOUT", "must be a positive duration")
	}

	return validator.Errors()
}
