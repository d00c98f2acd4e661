package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-datacharts-be/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest checks a request DTO's `validate` tags and converts the
// first failure into a caller-facing validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperror.Validation("Invalid request body")
	}
	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return apperror.Validation("Field '%s' is required", field)
	default:
		return apperror.Validation("Field '%s' failed validation rule '%s'", field, first.Tag())
	}
}
