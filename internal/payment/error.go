package payment

import (
	"errors"
	"fmt"
)

var (
	ErrNotSupported      = errors.New("not supported")
	ErrTimeout           = errors.New("eway gateway timeout")
	ErrEmptyRedirect     = errors.New("eway accepted the request without a redirect uri")
	ErrMalformedResponse = errors.New("malformed eway response")
)

// GatewayError is a request the gateway refused. Message is the gateway's
// own error text and may be empty.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return "eway rejected the payment request"
	}
	return fmt.Sprintf("eway rejected the payment request: %s", e.Message)
}
