package payment

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	rootTransactionRequest  = "TransactionRequest"
	rootTransactionResponse = "TransactionResponse"
)

// parseRoot returns the document element, or nil for an empty document.
func parseRoot(body []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return doc.Root(), nil
}

// childValues maps each direct child element to its text. Elements without
// text are skipped; a repeated element keeps its last value.
func childValues(root *etree.Element) map[string]string {
	values := make(map[string]string)
	for _, child := range root.ChildElements() {
		text := child.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		values[child.Tag] = text
	}
	return values
}

func optional(values map[string]string, name string) *string {
	v, ok := values[name]
	if !ok {
		return nil
	}
	return &v
}

// ParseAcknowledgment reads a TransactionRequest document. Any other root
// element yields an empty, unsuccessful acknowledgment without an error.
func ParseAcknowledgment(body []byte) (*Acknowledgment, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	ack := &Acknowledgment{}
	if root == nil || root.Tag != rootTransactionRequest {
		return ack, nil
	}

	values := childValues(root)

	if raw, ok := values["Result"]; ok {
		success, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		ack.Success = success
	}
	ack.RedirectURI = optional(values, "URI")
	ack.Error = optional(values, "Error")

	return ack, nil
}

// ParseTransactionOutcome reads a TransactionResponse document, or the
// TransactionRequest shape the gateway reuses for some errors. Any other
// root element yields an outcome with every field unset.
func ParseTransactionOutcome(body []byte) (*TransactionOutcome, error) {
	root, err := parseRoot(body)
	if err != nil {
		return nil, err
	}

	out := &TransactionOutcome{}
	if root == nil {
		return out, nil
	}

	switch root.Tag {
	case rootTransactionResponse:
		values := childValues(root)
		out.AuthCode = optional(values, "AuthCode")
		out.ResponseCode = optional(values, "ResponseCode")
		out.ReturnAmount = optional(values, "ReturnAmount")
		out.TransactionStatus = optional(values, "TrxnStatus")
		out.TransactionNumber = optional(values, "TrxnNumber")
		out.MerchantOption1 = optional(values, "MerchantOption1")
		out.MerchantOption2 = optional(values, "MerchantOption2")
		out.MerchantOption3 = optional(values, "MerchantOption3")
		out.ReferenceInvoice = optional(values, "MerchantInvoice")
		out.ReferenceNumber = optional(values, "MerchantReference")
		out.ResponseMessage = optional(values, "TrxnResponseMessage")
		out.ErrorMessage = optional(values, "ErrorMessage")
	case rootTransactionRequest:
		out.ErrorMessage = optional(childValues(root), "Error")
	}

	return out, nil
}

func parseBool(raw string) (bool, error) {
	switch v := strings.TrimSpace(raw); {
	case strings.EqualFold(v, "true"):
		return true, nil
	case strings.EqualFold(v, "false"):
		return false, nil
	default:
		return false, fmt.Errorf("%w: Result %q is not a boolean", ErrMalformedResponse, raw)
	}
}
