package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// MinAgeBeforePayment guards against a return racing the order placement.
const MinAgeBeforePayment = time.Minute

type Order struct {
	ID               uint
	CustomerID       uint
	BillingAddressID uuid.UUID
	Total            decimal.Decimal
	PaymentStatus    PaymentStatus
	CreatedAt        time.Time
	PaidAt           *time.Time
}

// EligibleForPayment reports whether o may be marked paid at now:
// it must still be pending and at least MinAgeBeforePayment old.
func EligibleForPayment(o *Order, now time.Time) bool {
	if o == nil || o.PaymentStatus != PaymentStatusPending {
		return false
	}
	return now.Sub(o.CreatedAt) >= MinAgeBeforePayment
}
