package config

import (
	"fmt"
	"strconv"
)

// Validator provides helper methods for configuration validation
type Validator struct {
	errors []error
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{
		errors: []error{},
	}
}

// AddError adds an error for a field
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, fmt.Errorf("%s: %s", field, message))
}

// RequireNonEmpty validates that a string field is not empty
func (v *Validator) RequireNonEmpty(field, value string) {
	if value == "" {
		v.AddError(field, "cannot be empty")
	}
}

// RequireOneOf validates that a string value is one of the allowed values
func (v *Validator) RequireOneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %v", allowed))
}

// RequirePort validates that a string holds a usable TCP port number
func (v *Validator) RequirePort(field, value string) {
	port, err := strconv.Atoi(value)
	if err != nil {
		v.AddError(field, "must be a valid integer")
		return
	}
	if port < 1 || port > 65535 {
		v.AddError(field, "must be between 1 and 65535")
	}
}

// RequireRatio validates that a float lies within [0.0, 1.0]
func (v *Validator) RequireRatio(field string, value float64) {
	if value < 0.0 || value > 1.0 {
		v.AddError(field, "must be between 0.0 and 1.0")
	}
}

// Errors returns all validation errors
func (v *Validator) Errors() []error {
	return v.errors
}
