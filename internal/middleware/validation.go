package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/campulist/campulist/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var configureOnce sync.Once

// ConfigureValidator makes gin's validator report fields by their json or
// form name
func ConfigureValidator() {
	configureOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
}

// BindJSON decodes and validates the request body into obj
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.NewBadRequestError(FormatValidationError(err))
	}
	return nil
}

// BindQuery decodes and validates query parameters into obj
func BindQuery(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return apperrors.NewBadRequestError(FormatValidationError(err))
	}
	return nil
}

// UUIDParam returns the named path parameter when it is a UUID
func UUIDParam(c *gin.Context, name string) (string, error) {
	value := c.Param(name)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return value, nil
	}
	if err := v.Var(value, "required,uuid"); err != nil {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("%s must be a valid UUID.", name))
	}
	return value, nil
}

// FormatValidationError renders a binding error as one readable message
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, e := range verrs {
			parts = append(parts, formatFieldError(e))
		}
		return strings.Join(parts, "; ") + "."
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "Request body is not valid JSON."
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s has the wrong type.", typeErr.Field)
	}
	return "Invalid request: " + err.Error()
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "uuid":
		return e.Field() + " must be a valid UUID"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
