package order

import (
	"context"
	"time"

	"eway-hosted/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetOrder(ctx context.Context, orderID uint) (*Order, error)
	CanMarkAsPaid(o *Order) bool
	MarkAsPaid(ctx context.Context, o *Order) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return newServiceWithClock(repo, time.Now)
}

func newServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}

func (s *service) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) CanMarkAsPaid(o *Order) bool {
	return EligibleForPayment(o, s.now().UTC())
}

func (s *service) MarkAsPaid(ctx context.Context, o *Order) error {
	now := s.now().UTC()

	if o.PaymentStatus != PaymentStatusPending {
		return ErrOrderNotPending
	}
	if !EligibleForPayment(o, now) {
		return ErrOrderTooRecent
	}

	if err := s.repo.MarkAsPaid(ctx, o.ID, now); err != nil {
		return err
	}

	o.PaymentStatus = PaymentStatusPaid
	o.PaidAt = &now

	logger.FromCtx(ctx).Info("order marked as paid", zap.Uint("order_id", o.ID))
	return nil
}
