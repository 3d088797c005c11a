package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

// Validator checks structs tagged with `validate` and reports the first
// failing field under its JSON name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator whose field names come from json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
	return &Validator{validate: v}
}

// Struct validates s. The returned error is an *apperrors.ValidationError
// naming the first offending field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), formatValidationError(fe))
	}
	return apperrors.NewValidationError("", err.Error())
}

// FromDecodeError converts a JSON decoding failure into a ValidationError,
// naming the field when the decoder knows it.
func FromDecodeError(err error) *apperrors.ValidationError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return apperrors.NewValidationError("", "request body must be a JSON object")
		}
		return apperrors.NewValidationError(field, field+" must be a "+describeKind(typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr):
		return apperrors.NewValidationError("", "request body is not valid JSON")
	case errors.Is(err, io.EOF):
		return apperrors.NewValidationError("", "request body is required")
	default:
		return apperrors.NewValidationError("", "invalid request body")
	}
}

func describeKind(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Ptr:
		return "value of the right type"
	default:
		return k.String()
	}
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// notBlank rejects strings made only of whitespace. The value itself is
// validated as given and never rewritten.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
