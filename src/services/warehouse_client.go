package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apierrors "github.com/narender/stock-service/common/apierrors"
	"github.com/narender/stock-service/common/globals"
)

// WarehouseClient is the upstream collaborator holding the authoritative
// inventory. Reads and writes are plain: the warehouse offers no
// compare-and-swap, so callers own any coordination.
type WarehouseClient interface {
	GetStock(ctx context.Context, productID int) (int, *apierrors.AppError)
	// UpdateStock overwrites the product's quantity (absolute, not a delta).
	UpdateStock(ctx context.Context, productID, quantity int) *apierrors.AppError
}

// StockUpdateRequest represents the request body for overwriting stock
type StockUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// stockLevelResponse represents the warehouse's stock lookup payload
type stockLevelResponse struct {
	Data struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	} `json:"data"`
}

type warehouseHTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewWarehouseClient builds the HTTP client for the central warehouse with
// an auto-instrumented transport.
func NewWarehouseClient() WarehouseClient {
	cfg := globals.Cfg()
	return &warehouseHTTPClient{
		baseURL: cfg.WAREHOUSE_SERVICE_URL,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.WAREHOUSE_CLIENT_TIMEOUT,
		},
		logger: globals.Logger(),
	}
}

func (w *warehouseHTTPClient) GetStock(ctx context.Context, productID int) (int, *apierrors.AppError) {
	url := fmt.Sprintf("%s/products/%d/stock", w.baseURL, productID)

	w.logger.DebugContext(ctx, "Warehouse Runner: Asking central warehouse for current stock",
		slog.Int("product_id", productID),
		slog.String("warehouse_url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Failed to prepare stock query",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return 0, apierrors.NewApplicationError(apierrors.ErrCodeInternalProcessing,
			"Failed to prepare stock query for central warehouse", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.WarnContext(ctx, "Warehouse Runner: Central warehouse is unreachable for stock query",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return 0, apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			"Central warehouse is currently unreachable for stock information", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		w.logger.WarnContext(ctx, "Warehouse Runner: Central warehouse has no record of product",
			slog.Int("product_id", productID))
		return 0, apierrors.NewBusinessError(apierrors.ErrCodeProductNotFound,
			fmt.Sprintf("Product %d is unknown to the central warehouse", productID), nil)
	}
	if resp.StatusCode != http.StatusOK {
		w.logger.WarnContext(ctx, "Warehouse Runner: Central warehouse rejected stock query",
			slog.Int("product_id", productID), slog.Int("status_code", resp.StatusCode))
		return 0, apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			"Central warehouse could not provide stock information",
			fmt.Errorf("warehouse returned status: %d", resp.StatusCode))
	}

	var response stockLevelResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Failed to understand warehouse stock response",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return 0, apierrors.NewApplicationError(apierrors.ErrCodeMalformedData,
			"Failed to understand stock information from central warehouse", err)
	}

	w.logger.DebugContext(ctx, "Warehouse Runner: Central warehouse reported stock",
		slog.Int("product_id", productID),
		slog.Int("quantity", response.Data.Quantity))

	return response.Data.Quantity, nil
}

func (w *warehouseHTTPClient) UpdateStock(ctx context.Context, productID, quantity int) *apierrors.AppError {
	url := fmt.Sprintf("%s/products/%d/stock", w.baseURL, productID)

	jsonData, err := json.Marshal(StockUpdateRequest{Quantity: quantity})
	if err != nil {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Failed to prepare stock update",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return apierrors.NewApplicationError(apierrors.ErrCodeInternalProcessing,
			"Failed to prepare stock update for central warehouse", err)
	}

	w.logger.InfoContext(ctx, "Warehouse Runner: Sending stock update to central warehouse",
		slog.Int("product_id", productID),
		slog.Int("new_quantity", quantity),
		slog.String("warehouse_url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Failed to prepare stock update request",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return apierrors.NewApplicationError(apierrors.ErrCodeInternalProcessing,
			"Failed to prepare network request to central warehouse", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Central warehouse is unreachable for stock update",
			slog.Int("product_id", productID), slog.String("error", err.Error()))
		return apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			"Central warehouse is currently unreachable, please try again later", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.logger.ErrorContext(ctx, "Warehouse Runner: Central warehouse rejected stock update",
			slog.Int("product_id", productID), slog.Int("status_code", resp.StatusCode))
		return apierrors.NewApplicationError(apierrors.ErrCodeServiceUnavailable,
			fmt.Sprintf("Central warehouse rejected the stock update (status code: %d)", resp.StatusCode),
			fmt.Errorf("warehouse returned status: %d", resp.StatusCode))
	}

	w.logger.InfoContext(ctx, "Warehouse Runner: Central warehouse recorded the stock update",
		slog.Int("product_id", productID),
		slog.Int("new_quantity", quantity))

	return nil
}
