package apierrors

// Business error codes
const (
	// Stock Domain Errors
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"  // When the warehouse has no record of the product
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK" // When a reservation exceeds available stock
)
