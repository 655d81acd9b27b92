package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks client-side validation failures: the request never
// left the bot, so the user just needs to fix the field and retry.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// validateStruct checks a request against its validate tags before any
// network call, mirroring what the backend would reject anyway.
func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return "please check your input"
	}

	var parts []string
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, "that doesn't look like a valid email address")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "datetime":
			parts = append(parts, field+" must look like YYYY-MM-DD")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
