// Entry point for the stock service
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/narender/stock-service/common/globals"
	"github.com/narender/stock-service/common/lifecycle"
	commonMiddleware "github.com/narender/stock-service/common/middleware"

	"github.com/narender/stock-service/src/cache"
	"github.com/narender/stock-service/src/handlers"
	"github.com/narender/stock-service/src/services"
)

func main() {

	// --- Initialize Globals (Config & Logger/Telemetry) ---
	if err := globals.Init(); err != nil {
		fmt.Printf("Failed to initialize application globals: %v\n", err)
		panic(err)
	}
	logger := globals.Logger()
	cfg := globals.Cfg()
	logger.Debug("warehouse upstream configured", slog.String("url", cfg.WAREHOUSE_SERVICE_URL))

	// --- Service and Handler Initialization ---
	redisClient := cache.NewClient(cfg)
	stockCache := cache.New(redisClient, cfg.STOCK_CACHE_TTL)
	warehouse := services.NewWarehouseClient()
	service := services.NewStockService(warehouse, stockCache)
	handler := handlers.NewStockHandler(service)

	// --- Service Information Logging ---
	logger.Info("Starting stock-service")

	// --- Fiber App Initialization with Error Handler ---
	app := fiber.New(fiber.Config{
		ErrorHandler: commonMiddleware.ErrorHandler(),
	})

	// --- Middleware Configuration ---
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(recover.New())          // Recover from panics
	app.Use(otelfiber.Middleware()) // otelfiber instrumentation

	// --- Route Definitions ---
	setupRoutes(app, handler)
	logger.Info("Routes registered")

	// --- Server Startup ---
	addr := fmt.Sprintf(":%s", cfg.STOCK_SERVICE_PORT)
	logger.Info("Server starting to listen", slog.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Error("Server listener failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	lifecycle.WaitForGracefulShutdown(app, globals.TelemetryShutdown())
}

// setupRoutes function to keep main clean
func setupRoutes(app *fiber.App, handler *handlers.StockHandler) {
	app.Get("/health", handler.HealthCheck)
	app.Get("/stock/:productId", handler.GetStock)
	app.Post("/stock/retrieve", handler.RetrieveStock)
	app.Post("/stock/restock", handler.RestockStock)
}
