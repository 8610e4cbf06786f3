package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lfarias/academico/internal/app/models/dto"
)

// HandleBindingError responds to a failed request binding. Validator field
// errors become a field -> message map; anything else (malformed JSON, wrong
// types) gets the generic error shape.
func HandleBindingError(c *gin.Context, obj interface{}, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, fieldErrorMap(obj, validationErrs))
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request body: "+err.Error()))
}

// fieldErrorMap builds the field -> violation message mapping using the
// fields' JSON names
func fieldErrorMap(obj interface{}, errs validator.ValidationErrors) dto.FieldErrors {
	fieldErrors := make(dto.FieldErrors, len(errs))
	for _, fieldErr := range errs {
		name := jsonFieldName(obj, fieldErr.StructField())
		fieldErrors[name] = formatValidationError(fieldErr)
	}
	return fieldErrors
}

// jsonFieldName resolves a struct field to its JSON name
func jsonFieldName(obj interface{}, structField string) string {
	typ := reflect.TypeOf(obj)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if field, ok := typ.FieldByName(structField); ok {
		tag := field.Tag.Get("json")
		if name := strings.Split(tag, ",")[0]; name != "" && name != "-" {
			return name
		}
	}
	return structField
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "cpf":
		return e.Field() + " must contain exactly 11 digits"
	case "pastdate":
		return e.Field() + " must be a date in the past"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
