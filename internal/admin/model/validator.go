package model

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// FormatValidationError converts validator errors to ErrorDetail
// This is a helper for Validate() methods to keep consistent error return types
func FormatValidationError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		// First error only; one offending field at a time is enough for the UI.
		e := validationErrors[0]
		return &ErrorDetail{
			Code:    "bad_request",
			Message: "Field validation for '" + e.Field() + "' failed on the '" + e.Tag() + "' tag",
		}
	}

	return &ErrorDetail{
		Code:    "bad_request",
		Message: err.Error(),
	}
}
