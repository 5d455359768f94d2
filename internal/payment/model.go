package payment

import (
	"strings"

	"eway-hosted/internal/order"
	"eway-hosted/internal/utils"
)

// Acknowledgment is the gateway's answer to an access request.
// RedirectURI is meaningful only when Success is true, Error only when it is false.
type Acknowledgment struct {
	Success     bool
	RedirectURI *string
	Error       *string
}

// TransactionOutcome is the final transaction result fetched with an access
// payment code. A nil field means the gateway did not send it.
type TransactionOutcome struct {
	AuthCode          *string
	ResponseCode      *string
	ReturnAmount      *string
	TransactionStatus *string
	TransactionNumber *string
	MerchantOption1   *string
	MerchantOption2   *string
	MerchantOption3   *string
	ReferenceInvoice  *string
	ReferenceNumber   *string
	ResponseMessage   *string
	ErrorMessage      *string
}

func failedOutcome(message string) *TransactionOutcome {
	return &TransactionOutcome{ErrorMessage: &message}
}

// Succeeded applies the merchant-return decision rule: no error text and a
// transaction status of "true" in any letter case.
func (o *TransactionOutcome) Succeeded() bool {
	if o == nil {
		return false
	}
	if utils.PtrString(o.ErrorMessage) != "" {
		return false
	}
	return strings.EqualFold(utils.PtrString(o.TransactionStatus), "true")
}

// CorrelationID returns the order id echoed back in MerchantOption1.
func (o *TransactionOutcome) CorrelationID() (uint, error) {
	return utils.ToUint(utils.PtrString(o.MerchantOption1))
}

// RedirectTarget is where the shopper's browser must be sent next.
type RedirectTarget struct {
	URL string
}

// BillingDetails is the billing address with state and country resolved to names.
type BillingDetails struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	PostCode  string
	Country   string
	Email     string
	Phone     string
}

type MethodType string

const MethodTypeRedirection MethodType = "REDIRECTION"

type RecurringType string

const RecurringNotSupported RecurringType = "NOT_SUPPORTED"

// ProcessPaymentResult is the checkout-time result: redirection methods
// leave the order pending until the shopper returns.
type ProcessPaymentResult struct {
	NewPaymentStatus order.PaymentStatus
}
