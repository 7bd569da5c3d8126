package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apierrors "github.com/narender/stock-service/common/apierrors"
	apiresponses "github.com/narender/stock-service/common/apiresponses"
	"github.com/narender/stock-service/common/debugutils"
	commontrace "github.com/narender/stock-service/common/telemetry/trace"
	"github.com/narender/stock-service/src/models"
)

func (h *StockHandler) GetStock(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()

	productID, parseErr := c.ParamsInt("productId")
	if parseErr != nil || productID < 1 {
		h.logger.WarnContext(ctx, "Stock Desk: Invalid product id in stock lookup",
			slog.String("raw_product_id", c.Params("productId")))
		err = apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation,
			"productId must be a positive integer", parseErr)
		return
	}

	h.logger.InfoContext(ctx, "Stock Desk: Customer asking for product stock",
		slog.Int("product_id", productID))

	newCtx, span := commontrace.StartSpan(ctx,
		attribute.Int("product.id", productID))
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

	quantity, appErr := h.service.GetStock(ctx, productID)
	if appErr != nil {
		if span != nil {
			span.SetStatus(codes.Error, appErr.Error())
		}
		err = appErr
		return
	}

	span.SetAttributes(attribute.Int("product.quantity", quantity))
	err = c.Status(http.StatusOK).JSON(apiresponses.NewSuccessResponse(models.StockLevel{
		ProductID: productID,
		Quantity:  quantity,
	}))
	return
}
