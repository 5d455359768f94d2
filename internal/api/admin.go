package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"eway-hosted/internal/logger"
	"eway-hosted/internal/metrics"
	"eway-hosted/internal/payment"
	"eway-hosted/internal/settings"
	"eway-hosted/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentResultsLimit = 20

// ConfigurationModel is the admin form for the payment method.
type ConfigurationModel struct {
	CustomerID    string `json:"customer_id" validate:"required"`
	Username      string `json:"username" validate:"required"`
	PaymentPage   string `json:"payment_page" validate:"required,url"`
	AdditionalFee string `json:"additional_fee" validate:"omitempty,fee"`
}

func toModel(s settings.Settings) ConfigurationModel {
	return ConfigurationModel{
		CustomerID:    s.CustomerID,
		Username:      s.Username,
		PaymentPage:   s.PaymentPage,
		AdditionalFee: s.AdditionalFee.StringFixed(2),
	}
}

func (m ConfigurationModel) toSettings() settings.Settings {
	fee := decimal.Zero
	if raw := strings.TrimSpace(m.AdditionalFee); raw != "" {
		fee = decimal.RequireFromString(raw)
	}
	return settings.Settings{
		CustomerID:    strings.TrimSpace(m.CustomerID),
		Username:      strings.TrimSpace(m.Username),
		PaymentPage:   strings.TrimSpace(m.PaymentPage),
		AdditionalFee: fee,
	}
}

type ResultView struct {
	ID                int64  `json:"id"`
	OrderReference    string `json:"order_reference"`
	TransactionStatus string `json:"trxn_status"`
	TransactionNumber string `json:"trxn_number"`
	ResponseMessage   string `json:"response_message,omitempty"`
	ErrorMessage      string `json:"error_message,omitempty"`
	Succeeded         bool   `json:"succeeded"`
	CreatedAt         string `json:"created_at"`
}

type StatsResponse struct {
	Gateway map[string]uint64 `json:"gateway"`
	Recent  []ResultView      `json:"recent_results"`
}

// Admin serves the payment method configuration pages.
type Admin struct {
	settings  settings.Service
	results   payment.Repository
	stats     *metrics.Gateway
	validator *Validator
}

func NewAdmin(settingsSvc settings.Service, results payment.Repository, stats *metrics.Gateway) *Admin {
	return &Admin{
		settings:  settingsSvc,
		results:   results,
		stats:     stats,
		validator: NewValidator(),
	}
}

func (a *Admin) AppendRoutes(r chi.Router) {
	r.Route("/admin/payments/eway", func(r chi.Router) {
		r.Get("/configure", a.getConfiguration)
		r.Post("/configure", a.saveConfiguration)
		r.Get("/stats", a.getStats)
	})
}

func (a *Admin) getConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.settings.Load(r.Context())
	if err != nil {
		if errors.Is(err, settings.ErrNotInstalled) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("Failed loading eWAY settings", zap.Error(err))
		utils.WriteJSONError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toModel(cfg))
}

func (a *Admin) saveConfiguration(w http.ResponseWriter, r *http.Request) {
	var model ConfigurationModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	fieldErrs, err := a.validator.Validate(model)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(fieldErrs) > 0 {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": fieldErrs,
		})
		return
	}

	if err := a.settings.Save(r.Context(), model.toSettings()); err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.FromCtx(r.Context()).Error("Failed saving eWAY settings", zap.Error(err))
		utils.WriteJSONError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	logger.FromCtx(r.Context()).Info("eWAY settings updated", zap.String("customer_id", model.CustomerID))
	utils.WriteJSON(w, http.StatusOK, model)
}

func (a *Admin) getStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Gateway: a.stats.Snapshot(),
		Recent:  []ResultView{},
	}

	recs, err := a.results.ListRecentResults(r.Context(), recentResultsLimit)
	if err != nil {
		logger.FromCtx(r.Context()).Error("Failed loading recent eWAY results", zap.Error(err))
		utils.WriteJSONError(w, "failed to load results", http.StatusInternalServerError)
		return
	}

	for _, rec := range recs {
		resp.Recent = append(resp.Recent, ResultView{
			ID:                rec.ID,
			OrderReference:    rec.OrderReference,
			TransactionStatus: rec.TransactionStatus,
			TransactionNumber: rec.TransactionNumber,
			ResponseMessage:   rec.ResponseMessage,
			ErrorMessage:      rec.ErrorMessage,
			Succeeded:         rec.Succeeded,
			CreatedAt:         rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
