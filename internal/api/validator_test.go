package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ConfigurationModel(t *testing.T) {
	v := NewValidator()

	valid := ConfigurationModel{
		CustomerID:    "87654321",
		Username:      "TestAccount",
		PaymentPage:   "https://nz.ewaygateway.com/",
		AdditionalFee: "1.50",
	}

	t.Run("Valid", func(t *testing.T) {
		errs, err := v.Validate(valid)
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("Fee is optional", func(t *testing.T) {
		m := valid
		m.AdditionalFee = ""
		errs, err := v.Validate(m)
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		errs, err := v.Validate(ConfigurationModel{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []FieldError{
			{Field: "customer_id", Tag: "required"},
			{Field: "username", Tag: "required"},
			{Field: "payment_page", Tag: "required"},
		}, errs)
	})

	t.Run("Bad url and negative fee", func(t *testing.T) {
		m := valid
		m.PaymentPage = "not a url"
		m.AdditionalFee = "-1"

		errs, err := v.Validate(m)
		require.NoError(t, err)
		assert.ElementsMatch(t, []FieldError{
			{Field: "payment_page", Tag: "url"},
			{Field: "additional_fee", Tag: "fee"},
		}, errs)
	})

	t.Run("Non numeric fee", func(t *testing.T) {
		m := valid
		m.AdditionalFee = "abc"

		errs, err := v.Validate(m)
		require.NoError(t, err)
		assert.Equal(t, []FieldError{{Field: "additional_fee", Tag: "fee"}}, errs)
	})
}
