// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"errors"
	"fmt"
	"reflect"

	"blogly/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// sanitizeAndValidate trims the input in place and reports the first failing rule
// as a validation AppError with a sentence fit for a flash message.
func sanitizeAndValidate(in any) error {
	if err := conform.Strings(in); err != nil {
		return models.NewInternalError(err)
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return models.NewValidationError(describe(verrs[0]))
	}
	return models.NewInternalError(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "http_url":
		return fmt.Sprintf("%s must be an http or https URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
