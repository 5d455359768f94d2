package payment

import (
	"context"

	"eway-hosted/internal/settings"
)

// Gateway is the eWAY hosted payment page API.
type Gateway interface {
	// RequestAccess asks the gateway for a hosted page session.
	RequestAccess(ctx context.Context, cfg settings.Settings, fields *RequestFields) (*Acknowledgment, error)
	// CheckAccessCode fetches the transaction result for an access payment
	// code. It never fails: transport and decoding problems come back as an
	// outcome carrying only ErrorMessage. The raw body is returned for auditing.
	CheckAccessCode(ctx context.Context, cfg settings.Settings, accessCode string) (*TransactionOutcome, []byte)
}
