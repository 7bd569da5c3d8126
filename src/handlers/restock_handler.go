package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apierrors "github.com/narender/stock-service/common/apierrors"
	apirequests "github.com/narender/stock-service/common/apirequests"
	apiresponses "github.com/narender/stock-service/common/apiresponses"
	"github.com/narender/stock-service/common/debugutils"
	commontrace "github.com/narender/stock-service/common/telemetry/trace"
	"github.com/narender/stock-service/common/validator"
	"github.com/narender/stock-service/src/models"
)

func (h *StockHandler) RestockStock(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	h.logger.InfoContext(ctx, "Stock Desk: Supplier submitting a bulk restock")

	var req apirequests.BulkStockRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		h.logger.ErrorContext(ctx, "Stock Desk: Invalid restock request format", slog.String("error", parseErr.Error()))
		err = apierrors.NewApplicationError(apierrors.ErrCodeMalformedData, "Invalid request body format", parseErr)
		return
	}

	if validatorErr := validator.ValidateRequest(&req); validatorErr != nil {
		h.logger.WarnContext(ctx, "Stock Desk: Invalid restock request data", slog.String("validator_error", validatorErr.Message))
		err = validatorErr
		return
	}

	newCtx, span := commontrace.StartSpan(ctx,
		attribute.Int("stock.batch_size", len(req.Items)))
	ctx = newCtx
	defer func() {
		var telemetryErr error
		if err != nil {
			telemetryErr = err
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	if simAppErr := debugutils.Simulate(ctx); simAppErr != nil {
		err = simAppErr
		return
	}

	h.logger.DebugContext(ctx, "Stock Desk: Handing restock batch to batch controller",
		slog.Int("line_items", len(req.Items)))

	if appErr := h.service.Restock(ctx, toLineItems(req.Items)); appErr != nil {
		if span != nil {
			span.SetStatus(codes.Error, appErr.Error())
		}
		err = appErr
		return
	}

	h.logger.InfoContext(ctx, "Stock Desk: Bulk restock committed",
		slog.Int("line_items", len(req.Items)))
	err = c.Status(http.StatusOK).JSON(apiresponses.NewSuccessResponse(apiresponses.ActionConfirmation{
		Message: "stock replenished",
	}))
	return
}

// toLineItems converts request line items into the domain model, preserving order.
func toLineItems(items []apirequests.BulkLineItem) []models.LineItem {
	lineItems := make([]models.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = models.LineItem{ProductID: item.ProductID, Amount: item.Amount}
	}
	return lineItems
}
