package handlers

import (
	"log/slog"

	"github.com/narender/stock-service/common/globals"
	"github.com/narender/stock-service/src/services"
)

type StockHandler struct {
	service services.StockService
	logger  *slog.Logger
}

func NewStockHandler(svc services.StockService) *StockHandler {
	return &StockHandler{
		service: svc,
		logger:  globals.Logger(),
	}
}
