package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/narender/stock-service/common/apierrors"
)

// Singleton validator instance
var validate = validator.New()

// ValidateRequest performs validation on the struct payload.
// Returns nil on success, or AppError with ErrCodeRequestValidation on failure.
func ValidateRequest(payload interface{}) *apierrors.AppError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors []string
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		for _, vErr := range vErrs {
			validationErrors = append(validationErrors, fmt.Sprintf("Field '%s' failed validation on '%s' tag", vErr.Field(), vErr.Tag()))
		}
	} else {
		validationErrors = append(validationErrors, err.Error())
	}

	errMsg := "Validation failed: " + strings.Join(validationErrors, "; ")
	return apierrors.NewApplicationError(apierrors.ErrCodeRequestValidation, errMsg, err)
}
