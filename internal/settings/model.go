package settings

import "github.com/shopspring/decimal"

// Settings is the merchant configuration for the hosted payment page.
// It is loaded once per request and passed by value.
type Settings struct {
	CustomerID    string
	Username      string
	PaymentPage   string
	AdditionalFee decimal.Decimal
}

// Entry is a single persisted key-value setting.
type Entry struct {
	Name  string
	Value string
}

const (
	keyPrefix        = "ewayhostedpaymentsettings."
	keyCustomerID    = keyPrefix + "customerid"
	keyUsername      = keyPrefix + "username"
	keyPaymentPage   = keyPrefix + "paymentpage"
	keyAdditionalFee = keyPrefix + "additionalfee"
)

// Default returns the sandbox account installed with the plugin.
func Default() Settings {
	return Settings{
		CustomerID:    "87654321",
		Username:      "TestAccount",
		PaymentPage:   "https://nz.ewaygateway.com/",
		AdditionalFee: decimal.Zero,
	}
}

func (s Settings) entries() []Entry {
	return []Entry{
		{Name: keyCustomerID, Value: s.CustomerID},
		{Name: keyUsername, Value: s.Username},
		{Name: keyPaymentPage, Value: s.PaymentPage},
		{Name: keyAdditionalFee, Value: s.AdditionalFee.String()},
	}
}
