package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eway-hosted/internal/address"
	"eway-hosted/internal/directory"
	"eway-hosted/internal/locale"
	"eway-hosted/internal/logger"
	"eway-hosted/internal/order"
	"eway-hosted/internal/settings"
	"eway-hosted/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReturnPath is where the gateway sends the shopper back, relative to the store URL.
const ReturnPath = "payments/eway/return"

type ProcessorConfig struct {
	StoreURL          string
	PrimaryCurrencyID uint
}

// Processor is the eWAY hosted payment method.
type Processor struct {
	gateway   Gateway
	addresses address.Repository
	directory directory.Repository
	locales   locale.Repository
	settings  settings.Service
	results   Repository

	returnURL         string
	primaryCurrencyID uint
	now               func() time.Time
}

func NewProcessor(
	gateway Gateway,
	addresses address.Repository,
	dir directory.Repository,
	locales locale.Repository,
	settingsSvc settings.Service,
	results Repository,
	cfg ProcessorConfig,
) *Processor {
	return &Processor{
		gateway:           gateway,
		addresses:         addresses,
		directory:         dir,
		locales:           locales,
		settings:          settingsSvc,
		results:           results,
		returnURL:         cfg.StoreURL + ReturnPath,
		primaryCurrencyID: cfg.PrimaryCurrencyID,
		now:               time.Now,
	}
}

// ----------------- Redirect -----------------

// PostProcessPayment asks the gateway for a hosted page session and returns
// where to send the shopper.
func (p *Processor) PostProcessPayment(
	ctx context.Context,
	o *order.Order,
	cfg settings.Settings,
) (*RedirectTarget, error) {

	log := logger.FromCtx(ctx).With(zap.Uint("order_id", o.ID))

	billing, err := p.billingDetails(ctx, o)
	if err != nil {
		log.Error("Failed loading billing address", zap.Error(err))
		return nil, err
	}

	currencyCode, err := p.currencyCode(ctx)
	if err != nil {
		log.Error("Failed loading primary currency", zap.Error(err))
		return nil, err
	}

	fields := BuildRequestFields(o, billing, currencyCode, p.returnURL, cfg)

	ack, err := p.gateway.RequestAccess(ctx, cfg, fields)
	if err != nil {
		return nil, fmt.Errorf("eway access request: %w", err)
	}

	if !ack.Success {
		return nil, &GatewayError{Message: utils.PtrString(ack.Error)}
	}

	uri := utils.PtrString(ack.RedirectURI)
	if uri == "" {
		return nil, ErrEmptyRedirect
	}

	log.Info("Redirecting shopper to eWAY hosted page")
	return &RedirectTarget{URL: uri}, nil
}

func (p *Processor) billingDetails(ctx context.Context, o *order.Order) (BillingDetails, error) {
	addr, err := p.addresses.GetByID(ctx, o.BillingAddressID)
	if err != nil {
		return BillingDetails{}, err
	}

	details := BillingDetails{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Address:   addr.Address1,
		City:      addr.City,
		PostCode:  addr.ZipPostalCode,
		Email:     addr.Email,
		Phone:     addr.Phone,
	}

	if addr.StateProvinceID != nil {
		state, err := p.directory.GetStateProvinceByID(ctx, *addr.StateProvinceID)
		if err != nil {
			return BillingDetails{}, err
		}
		if state != nil {
			details.State = state.Name
		}
	}

	if addr.CountryID != nil {
		country, err := p.directory.GetCountryByID(ctx, *addr.CountryID)
		if err != nil {
			return BillingDetails{}, err
		}
		if country != nil {
			details.Country = country.Name
		}
	}

	return details, nil
}

func (p *Processor) currencyCode(ctx context.Context) (string, error) {
	currency, err := p.directory.GetCurrencyByID(ctx, p.primaryCurrencyID)
	if err != nil {
		return "", err
	}
	if currency == nil {
		return "", nil
	}
	return currency.Code, nil
}

// ----------------- Merchant return -----------------

// CheckAccessCode fetches the transaction outcome for an access payment code.
// Failures are reported through the outcome's ErrorMessage.
func (p *Processor) CheckAccessCode(
	ctx context.Context,
	accessCode string,
	cfg settings.Settings,
) *TransactionOutcome {

	outcome, raw := p.gateway.CheckAccessCode(ctx, cfg, accessCode)

	if p.results != nil {
		rec := newResultRecord(accessCode, outcome, raw)
		if err := p.results.SaveResult(ctx, rec); err != nil {
			logger.FromCtx(ctx).Warn("Failed saving eWAY result record",
				zap.String("order_reference", rec.OrderReference),
				zap.Error(err),
			)
		}
	}

	return outcome
}

// CanRePostProcessPayment reports whether the shopper may be sent to the
// hosted page again for o.
func (p *Processor) CanRePostProcessPayment(o *order.Order) bool {
	if o == nil {
		return false
	}
	return order.EligibleForPayment(o, p.now().UTC())
}

// ----------------- Method descriptor -----------------

// ProcessPayment leaves the order pending; payment happens on the hosted page.
func (p *Processor) ProcessPayment(context.Context, *order.Order) ProcessPaymentResult {
	return ProcessPaymentResult{NewPaymentStatus: order.PaymentStatusPending}
}

func (p *Processor) HidePaymentMethod(context.Context) bool {
	return false
}

func (p *Processor) AdditionalHandlingFee(cfg settings.Settings) decimal.Decimal {
	return cfg.AdditionalFee
}

func (p *Processor) Capture(context.Context, *order.Order) error {
	return fmt.Errorf("capture method %w", ErrNotSupported)
}

func (p *Processor) Refund(context.Context, *order.Order, decimal.Decimal) error {
	return fmt.Errorf("refund method %w", ErrNotSupported)
}

func (p *Processor) Void(context.Context, *order.Order) error {
	return fmt.Errorf("void method %w", ErrNotSupported)
}

func (p *Processor) ProcessRecurringPayment(context.Context, *order.Order) error {
	return fmt.Errorf("recurring payment %w", ErrNotSupported)
}

func (p *Processor) CancelRecurringPayment(context.Context, *order.Order) error {
	return fmt.Errorf("recurring payment %w", ErrNotSupported)
}

func (p *Processor) SupportCapture() bool         { return false }
func (p *Processor) SupportRefund() bool          { return false }
func (p *Processor) SupportPartiallyRefund() bool { return false }
func (p *Processor) SupportVoid() bool            { return false }
func (p *Processor) SkipPaymentInfo() bool        { return false }

func (p *Processor) PaymentMethodType() MethodType {
	return MethodTypeRedirection
}

func (p *Processor) RecurringPaymentType() RecurringType {
	return RecurringNotSupported
}

// Description returns the checkout text for the method, or the resource key
// when it has not been installed.
func (p *Processor) Description(ctx context.Context) string {
	value, err := p.locales.Get(ctx, resourceDescriptionKey)
	if err != nil {
		if !errors.Is(err, locale.ErrResourceNotFound) {
			logger.FromCtx(ctx).Warn("Failed loading payment method description", zap.Error(err))
		}
		return resourceDescriptionKey
	}
	return value
}

// ----------------- Install -----------------

func (p *Processor) Install(ctx context.Context) error {
	if err := p.settings.Save(ctx, settings.Default()); err != nil {
		return fmt.Errorf("save default settings: %w", err)
	}

	for _, res := range Resources {
		if err := p.locales.AddOrUpdate(ctx, res.Name, res.Value); err != nil {
			return fmt.Errorf("add locale resource %s: %w", res.Name, err)
		}
	}

	logger.FromCtx(ctx).Info("eWAY hosted payment method installed")
	return nil
}

func (p *Processor) Uninstall(ctx context.Context) error {
	if err := p.settings.Delete(ctx); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}

	for _, res := range Resources {
		if err := p.locales.Delete(ctx, res.Name); err != nil {
			return fmt.Errorf("delete locale resource %s: %w", res.Name, err)
		}
	}

	logger.FromCtx(ctx).Info("eWAY hosted payment method uninstalled")
	return nil
}
