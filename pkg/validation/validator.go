// Package validation runs go-playground/validator struct checks and turns
// failures into the 422 error the API returns for bad input.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/artem13815/places/pkg/apperr"
)

const invalidInputMessage = "Invalid inputs passed, please check your data."

// ErrInvalidInput is returned for every failed struct validation.
var ErrInvalidInput = apperr.Validation(invalidInputMessage)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// "trimmed" rejects whitespace-only strings
		_ = validate.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates v. The returned error is an *apperr.Error of kind
// validation; its cause lists the failing fields for logs.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return apperr.Internal(invalidInputMessage, err)
	}
	fields := make([]string, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: invalidInputMessage,
		Err:     errors.New("invalid fields " + strings.Join(fields, ",")),
	}
}
