package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// ErrInvalidLabel is returned for labels that cannot identify a possession.
var ErrInvalidLabel = errors.New("invalid label")

// MaxLabelLength matches the width of the possession.label column.
const MaxLabelLength = 100

var validate = newValidator()

// newValidator builds the validator shared by every request type. Field errors are
// reported under their JSON names so clients can map them back to their payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("isodate", validateISODate)

	return v
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := valuation.ParseDate(fl.Field().String())
	return err == nil
}

// Struct runs the struct tag rules of a request and converts failures into a
// field-keyed *Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = message(fe)
	}
	return &Error{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ValidateLabel checks a possession label taken from a URL.
func ValidateLabel(label string) error {
	if err := validate.Var(label, fmt.Sprintf("required,max=%d,excludes=/", MaxLabelLength)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return nil
}
