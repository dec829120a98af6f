package http

import (
	"errors"
	"reflect"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator checks request bodies against their `validate` tags and
// reports field names as they appear on the wire.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errs.NewValueIsInvalidErrorWithCause(fe.Field(), fe)
	}
	return errs.NewValueIsInvalidErrorWithCause("body", err)
}
