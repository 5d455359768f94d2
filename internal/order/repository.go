package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eway-hosted/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, orderID uint) (*Order, error)
	MarkAsPaid(ctx context.Context, orderID uint, paidAt time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	const q = `
		SELECT id, customer_id, billing_address_id, order_total, payment_status, created_at, paid_at
		FROM orders
		WHERE id = $1
	`

	var (
		o      Order
		paidAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&o.ID, &o.CustomerID, &o.BillingAddressID, &o.Total, &o.PaymentStatus, &o.CreatedAt, &paidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
		return nil, err
	}

	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}

	return &o, nil
}

// MarkAsPaid flips a pending order to paid. Orders that are no longer
// pending are left untouched and reported as ErrOrderNotPending.
func (r *repository) MarkAsPaid(ctx context.Context, orderID uint, paidAt time.Time) error {
	const q = `
		UPDATE orders
		SET payment_status = $1, paid_at = $2
		WHERE id = $3 AND payment_status = $4
	`

	res, err := r.db.ExecContext(ctx, q, PaymentStatusPaid, paidAt, orderID, PaymentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update order payment status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrOrderNotPending
	}

	return nil
}
