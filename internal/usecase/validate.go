// Package usecase holds helpers shared by the use case packages.
package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Same tag gin binds with, so requests are checked identically in both places.
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Pointer fields are validated even when they hold "", so optional links
	// need an explicit empty alternative.
	v.RegisterAlias("url_or_empty", "eq=|url")
	return v
}

// Engine exposes the shared validator so request binding uses the same rules.
func Engine() *validator.Validate {
	return validate
}

// Validate checks s against its binding tags. Failures wrap
// domain.ErrInvalidInput with a message naming the first bad field.
func Validate(s any) error {
	return ValidationError(validate.Struct(s))
}

// ValidationError converts a binding or validation error into one wrapping
// domain.ErrInvalidInput. nil stays nil.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fieldMessage(verrs[0]))
	}
	return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "url_or_empty":
		return field + " must be a valid URL or empty"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "unique":
		return field + " must not contain duplicates"
	default:
		return field + " is invalid"
	}
}
