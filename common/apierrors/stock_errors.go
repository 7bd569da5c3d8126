package apierrors

import (
	"fmt"
	"strconv"
	"strings"
)

// InsufficientStockError carries the product ids a reservation batch could
// not satisfy. It travels as the cause of an INSUFFICIENT_STOCK AppError so
// the HTTP layer can surface the id list to the caller.
type InsufficientStockError struct {
	ProductIDs []int
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for products: " + FormatProductIDs(e.ProductIDs)
}

// NewInsufficientStockError builds the batch-level business error for a
// failed reservation, listing every offending product id.
func NewInsufficientStockError(productIDs []int) *AppError {
	cause := &InsufficientStockError{ProductIDs: productIDs}
	msg := fmt.Sprintf("Insufficient stock for products: %s", FormatProductIDs(productIDs))
	return NewBusinessError(ErrCodeInsufficientStock, msg, cause)
}

// FormatProductIDs renders product ids as a comma-separated list.
func FormatProductIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
