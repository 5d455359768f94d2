package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const feeTag = "fee"

var customValidations = map[string]validator.Func{
	feeTag: validateFee,
}

// validateFee accepts a non-negative decimal amount.
func validateFee(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range customValidations {
		// tags are package constants, registration cannot fail
		_ = v.RegisterValidation(tag, fn)
	}
	return &Validator{validate: v}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Validate returns one entry per failed rule.
func (v *Validator) Validate(data any) ([]FieldError, error) {
	err := v.validate.Struct(data)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out, nil
}
