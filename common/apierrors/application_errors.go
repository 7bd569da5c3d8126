package apierrors

// Application error codes
const (
	// System Errors
	ErrCodeCacheAccess        = "CACHE_ACCESS_ERROR"        // Cache backend interaction failures
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"       // When a dependency is unavailable
	ErrCodeRequestValidation  = "REQUEST_VALIDATION_ERROR"  // Input validation failures
	ErrCodeInternalProcessing = "INTERNAL_PROCESSING_ERROR" // Logic execution failures
	ErrCodeCommitIncomplete   = "STOCK_COMMIT_INCOMPLETE"   // When some commit writes reached the warehouse and others did not

	// Unexpected Errors
	ErrCodeSystemPanic    = "SYSTEM_PANIC"    // Recovered panics
	ErrCodeNetworkError   = "NETWORK_ERROR"   // Network-related failures
	ErrCodeMalformedData  = "MALFORMED_DATA"  // Invalid data formats (JSON parse errors, etc.)
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT" // Operation timeouts
	ErrCodeUnknown        = "UNKNOWN_ERROR"   // Fallback for unclassified errors
)
