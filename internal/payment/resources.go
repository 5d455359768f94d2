package payment

import "eway-hosted/internal/locale"

const (
	resourcePrefix         = "Plugins.Payments.eWayHosted."
	resourceDescriptionKey = resourcePrefix + "PaymentMethodDescription"
	redirectionTip         = "You will be redirected to eWay site to complete the order."
)

// Resources lists the admin and checkout strings added on install.
var Resources = []locale.Resource{
	{Name: resourcePrefix + "RedirectionTip", Value: redirectionTip},
	{Name: resourcePrefix + "CustomerId", Value: "Customer ID"},
	{Name: resourcePrefix + "CustomerId.Hint", Value: "Enter customer ID."},
	{Name: resourcePrefix + "Username", Value: "Username"},
	{Name: resourcePrefix + "Username.Hint", Value: "Enter username."},
	{Name: resourcePrefix + "PaymentPage", Value: "Payment page"},
	{Name: resourcePrefix + "PaymentPage.Hint", Value: "Enter payment page."},
	{Name: resourcePrefix + "AdditionalFee", Value: "Additional fee"},
	{Name: resourcePrefix + "AdditionalFee.Hint", Value: "Enter additional fee to charge your customers."},
	{Name: resourceDescriptionKey, Value: redirectionTip},
}
