package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func (h *StockHandler) HealthCheck(c *fiber.Ctx) error {
	h.logger.DebugContext(c.UserContext(), "Stock service health check requested")
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}
