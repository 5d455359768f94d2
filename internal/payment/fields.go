package payment

import (
	"net/url"
	"strconv"
	"strings"

	"eway-hosted/internal/order"
	"eway-hosted/internal/settings"

	"github.com/shopspring/decimal"
)

// Query parameter names understood by the hosted payment page.
const (
	FieldCustomerID         = "CustomerID"
	FieldUserName           = "UserName"
	FieldAmount             = "Amount"
	FieldCurrency           = "Currency"
	FieldLanguage           = "Language"
	FieldFirstName          = "CustomerFirstName"
	FieldLastName           = "CustomerLastName"
	FieldAddress            = "CustomerAddress"
	FieldCity               = "CustomerCity"
	FieldState              = "CustomerState"
	FieldPostCode           = "CustomerPostCode"
	FieldCountry            = "CustomerCountry"
	FieldEmail              = "CustomerEmail"
	FieldPhone              = "CustomerPhone"
	FieldInvoiceDescription = "InvoiceDescription"
	FieldCancelURL          = "CancelURL"
	FieldReturnURL          = "ReturnUrl"
	FieldMerchantReference  = "MerchantReference"
	FieldMerchantInvoice    = "MerchantInvoice"
	FieldMerchantOption1    = "MerchantOption1"
	FieldAccessPaymentCode  = "AccessPaymentCode"
)

// Supported hosted page languages are EN, FR, DE, ES and NL.
const defaultLanguage = "EN"

type field struct {
	name  string
	value string
}

// RequestFields is an ordered set of query parameters. The customer id is
// always sent first; every other empty value is dropped from the encoding.
type RequestFields struct {
	customerID string
	fields     []field
}

func NewRequestFields(customerID string) *RequestFields {
	return &RequestFields{customerID: customerID}
}

func (f *RequestFields) Add(name, value string) *RequestFields {
	f.fields = append(f.fields, field{name: name, value: value})
	return f
}

// Get returns the first value stored under name.
func (f *RequestFields) Get(name string) (string, bool) {
	if name == FieldCustomerID {
		return f.customerID, true
	}
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.value, true
		}
	}
	return "", false
}

func (f *RequestFields) Encode() string {
	var b strings.Builder
	b.WriteString(FieldCustomerID)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(f.customerID))

	for _, fl := range f.fields {
		if fl.value == "" {
			continue
		}
		b.WriteByte('&')
		b.WriteString(fl.name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fl.value))
	}
	return b.String()
}

// FormatAmount renders a total as dollars and cents, e.g. 10.05, using a
// dot separator and no grouping regardless of the host locale.
func FormatAmount(total decimal.Decimal) string {
	return total.StringFixed(2)
}

// BuildRequestFields assembles the access request for an order.
func BuildRequestFields(
	o *order.Order,
	billing BillingDetails,
	currencyCode string,
	returnURL string,
	cfg settings.Settings,
) *RequestFields {
	orderID := strconv.FormatUint(uint64(o.ID), 10)

	return NewRequestFields(cfg.CustomerID).
		Add(FieldUserName, cfg.Username).
		Add(FieldAmount, FormatAmount(o.Total)).
		Add(FieldCurrency, currencyCode).
		Add(FieldLanguage, defaultLanguage).
		Add(FieldFirstName, billing.FirstName).
		Add(FieldLastName, billing.LastName).
		Add(FieldAddress, billing.Address).
		Add(FieldCity, billing.City).
		Add(FieldState, billing.State).
		Add(FieldPostCode, billing.PostCode).
		Add(FieldCountry, billing.Country).
		Add(FieldEmail, billing.Email).
		Add(FieldPhone, billing.Phone).
		Add(FieldInvoiceDescription, orderID).
		Add(FieldCancelURL, returnURL).
		Add(FieldReturnURL, returnURL).
		Add(FieldMerchantReference, orderID).
		Add(FieldMerchantInvoice, orderID).
		Add(FieldMerchantOption1, orderID)
}

// buildResultFields assembles the transaction result lookup.
func buildResultFields(accessCode string, cfg settings.Settings) *RequestFields {
	return NewRequestFields(cfg.CustomerID).
		Add(FieldAccessPaymentCode, accessCode).
		Add(FieldUserName, cfg.Username)
}
