package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Service interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Delete(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Load returns ErrNotInstalled when no customer id has been stored.
func (s *service) Load(ctx context.Context) (Settings, error) {
	values, err := s.repo.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return Settings{}, err
	}

	customerID, ok := values[keyCustomerID]
	if !ok {
		return Settings{}, ErrNotInstalled
	}

	fee := decimal.Zero
	if raw := strings.TrimSpace(values[keyAdditionalFee]); raw != "" {
		fee, err = decimal.NewFromString(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: additional fee %q", ErrInvalidSettings, raw)
		}
	}

	return Settings{
		CustomerID:    customerID,
		Username:      values[keyUsername],
		PaymentPage:   strings.TrimSpace(values[keyPaymentPage]),
		AdditionalFee: fee,
	}, nil
}

func (s *service) Save(ctx context.Context, st Settings) error {
	if st.AdditionalFee.IsNegative() {
		return fmt.Errorf("%w: additional fee must not be negative", ErrInvalidSettings)
	}
	st.PaymentPage = strings.TrimSpace(st.PaymentPage)
	return s.repo.Save(ctx, st.entries())
}

func (s *service) Delete(ctx context.Context) error {
	return s.repo.DeleteByPrefix(ctx, keyPrefix)
}
