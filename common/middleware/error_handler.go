package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	oteltrace "go.opentelemetry.io/otel/trace"

	apierrors "github.com/narender/stock-service/common/apierrors"
	apiresponses "github.com/narender/stock-service/common/apiresponses"
	"github.com/narender/stock-service/common/globals"
	"github.com/narender/stock-service/common/telemetry/trace"
)

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case apierrors.ErrCodeInsufficientStock, apierrors.ErrCodeRequestValidation, apierrors.ErrCodeMalformedData:
		return http.StatusBadRequest
	case apierrors.ErrCodeProductNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeServiceUnavailable, apierrors.ErrCodeNetworkError:
		return http.StatusServiceUnavailable
	case apierrors.ErrCodeRequestTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler converts errors escaping the handlers into the standard error
// envelope, records them on the active span, and logs them with request context.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := globals.Logger()

		statusCode := http.StatusInternalServerError
		code := apierrors.ErrCodeUnknown
		userMessage := "An unexpected error occurred. Please try again later."
		var details map[string]interface{}

		var appErr *apierrors.AppError
		var fiberErr *fiber.Error
		if errors.As(err, &appErr) {
			code = appErr.Code
			statusCode = statusForCode(appErr.Code)
			userMessage = appErr.Message
			if appErr.Code == apierrors.ErrCodeInsufficientStock {
				var insuffErr *apierrors.InsufficientStockError
				if errors.As(err, &insuffErr) {
					details = map[string]interface{}{"failedProductIds": insuffErr.ProductIDs}
				}
			}
		} else if errors.As(err, &fiberErr) {
			statusCode = fiberErr.Code
			userMessage = fiberErr.Message
		}

		logLevel := slog.LevelError
		if statusCode < 500 {
			logLevel = slog.LevelWarn
		}

		ctx := c.UserContext()
		span := oteltrace.SpanFromContext(ctx)
		if span != nil && span.IsRecording() {
			trace.RecordSpanError(span, err)
		}

		logger.LogAttrs(ctx, logLevel,
			fmt.Sprintf("HTTP Error: %s %s -> %d", c.Method(), c.Path(), statusCode),
			slog.Any("original_error", err),
			slog.String("error_code", code),
			slog.Int("status_code", statusCode),
			slog.String("user_message", userMessage),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)

		c.Status(statusCode)
		return c.JSON(apiresponses.NewErrorResponse(code, userMessage, details))
	}
}
