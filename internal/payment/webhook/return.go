package webhook

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"eway-hosted/internal/logger"
	"eway-hosted/internal/order"
	"eway-hosted/internal/payment"
	"eway-hosted/internal/settings"
	"eway-hosted/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const accessCodeField = "AccessPaymentCode"

// Processor is the part of the payment method the HTTP handlers drive.
type Processor interface {
	PostProcessPayment(ctx context.Context, o *order.Order, cfg settings.Settings) (*payment.RedirectTarget, error)
	CheckAccessCode(ctx context.Context, accessCode string, cfg settings.Settings) *payment.TransactionOutcome
	CanRePostProcessPayment(o *order.Order) bool
}

// Handler serves the checkout redirect and the merchant return.
type Handler struct {
	Processor Processor
	OrderSvc  order.Service
	Settings  settings.Service
	StoreURL  string
}

func NewHandler(processor Processor, orderSvc order.Service, settingsSvc settings.Service, storeURL string) *Handler {
	return &Handler{
		Processor: processor,
		OrderSvc:  orderSvc,
		Settings:  settingsSvc,
		StoreURL:  storeURL,
	}
}

func (h *Handler) AppendRoutes(r chi.Router) {
	r.Route("/payments/eway", func(r chi.Router) {
		r.Post("/orders/{orderID}/redirect", h.Redirect)
		r.Post("/orders/{orderID}/repost", h.Repost)
		r.Post("/return", h.MerchantReturn)
		r.Get("/return", h.MerchantReturn)
	})
}

// ----------------- Merchant return -----------------

// MerchantReturn validates the access payment code the gateway sent the
// shopper back with and marks the order paid when the transaction succeeded.
func (h *Handler) MerchantReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	accessCode := r.FormValue(accessCodeField)

	cfg, err := h.Settings.Load(ctx)
	if err != nil {
		log.Error("eWAY hosted module cannot be loaded", zap.Error(err))
		http.Error(w, "eWAY Hosted module cannot be loaded", http.StatusServiceUnavailable)
		return
	}

	outcome := h.Processor.CheckAccessCode(ctx, accessCode, cfg)

	log = log.With(
		zap.Stringp("trxn_status", outcome.TransactionStatus),
		zap.Stringp("merchant_option1", outcome.MerchantOption1),
	)

	if !outcome.Succeeded() {
		log.Warn("eWAY transaction not approved",
			zap.Stringp("error_message", outcome.ErrorMessage),
			zap.Stringp("response_message", outcome.ResponseMessage),
		)
		h.redirectToLanding(w, r)
		return
	}

	orderID, err := outcome.CorrelationID()
	if err != nil {
		log.Warn("eWAY result carries no usable order id", zap.Error(err))
		h.redirectToLanding(w, r)
		return
	}
	log = log.With(zap.Uint("order_id", orderID))

	o, err := h.OrderSvc.GetOrder(ctx, orderID)
	if err != nil {
		log.Warn("Order for eWAY result not found", zap.Error(err))
		h.redirectToLanding(w, r)
		return
	}

	if !h.OrderSvc.CanMarkAsPaid(o) {
		log.Warn("Order cannot be marked as paid",
			zap.String("payment_status", string(o.PaymentStatus)),
			zap.Time("created_at", o.CreatedAt),
		)
		h.redirectToLanding(w, r)
		return
	}

	if err := h.OrderSvc.MarkAsPaid(ctx, o); err != nil {
		log.Error("Failed marking order as paid", zap.Error(err))
		h.redirectToLanding(w, r)
		return
	}

	http.Redirect(w, r, h.StoreURL+"checkout/completed/"+strconv.FormatUint(uint64(o.ID), 10), http.StatusFound)
}

func (h *Handler) redirectToLanding(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.StoreURL, http.StatusFound)
}

// ----------------- Checkout redirect -----------------

// Redirect sends the shopper of a freshly placed order to the hosted page.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, false)
}

// Repost sends the shopper back to the hosted page for an order that is
// still unpaid.
func (h *Handler) Repost(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, true)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, repost bool) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := utils.ToUint(chi.URLParam(r, "orderID"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	log := logger.FromCtx(ctx).With(
		zap.Uint("order_id", orderID),
		zap.Uint("user_id", userID),
		zap.Bool("repost", repost),
	)

	o, err := h.OrderSvc.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error("Failed loading order", zap.Error(err))
		utils.WriteJSONError(w, "failed to load order", http.StatusInternalServerError)
		return
	}

	// other customers' orders answer as missing
	if !canAccessOrder(ctx, o, userID) {
		log.Warn("Order requested by another customer", zap.Uint("owner_id", o.CustomerID))
		utils.WriteJSONError(w, order.ErrOrderNotFound.Error(), http.StatusNotFound)
		return
	}

	if o.PaymentStatus != order.PaymentStatusPending {
		utils.WriteJSONError(w, order.ErrOrderNotPending.Error(), http.StatusConflict)
		return
	}
	if repost && !h.Processor.CanRePostProcessPayment(o) {
		utils.WriteJSONError(w, "payment cannot be retried yet", http.StatusConflict)
		return
	}

	cfg, err := h.Settings.Load(ctx)
	if err != nil {
		log.Error("eWAY hosted module cannot be loaded", zap.Error(err))
		utils.WriteJSONError(w, "eWAY Hosted module cannot be loaded", http.StatusServiceUnavailable)
		return
	}

	target, err := h.Processor.PostProcessPayment(ctx, o, cfg)
	if err != nil {
		log.Error("eWAY payment initiation failed", zap.Error(err))
		utils.WriteJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, target.URL, http.StatusFound)
}

func canAccessOrder(ctx context.Context, o *order.Order, userID uint) bool {
	if utils.GetUserRoleFromContext(ctx) == utils.RoleAdmin {
		return true
	}
	return o.CustomerID == userID
}
