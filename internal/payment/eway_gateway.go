package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"eway-hosted/internal/logger"
	"eway-hosted/internal/metrics"
	"eway-hosted/internal/settings"

	"go.uber.org/zap"
)

const (
	requestEndpoint = "Request"
	resultEndpoint  = "Result"

	// responses are a handful of short XML elements
	maxResponseBytes = 1 << 20
)

type ewayGateway struct {
	httpClient *http.Client
	stats      *metrics.Gateway
}

// ----------------- Constructor -----------------

func NewEwayGateway(timeout time.Duration, stats *metrics.Gateway) Gateway {
	if stats == nil {
		stats = &metrics.Gateway{}
	}

	return &ewayGateway{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: stats,
	}
}

// ----------------- RequestAccess -----------------

func (g *ewayGateway) RequestAccess(
	ctx context.Context,
	cfg settings.Settings,
	fields *RequestFields,
) (*Acknowledgment, error) {

	orderID, _ := fields.Get(FieldMerchantOption1)
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("endpoint", requestEndpoint),
	)

	g.stats.RequestCalls.Inc()

	body, err := g.get(ctx, cfg.PaymentPage+requestEndpoint+"?"+fields.Encode())
	if err != nil {
		g.stats.RequestFailures.Inc()
		log.Error("eWAY access request failed", zap.Error(err))
		return nil, err
	}

	ack, err := ParseAcknowledgment(body)
	if err != nil {
		g.stats.RequestFailures.Inc()
		log.Error("Failed decoding eWAY acknowledgment",
			zap.Error(err),
			zap.ByteString("response", body),
		)
		return nil, err
	}

	if !ack.Success {
		g.stats.RequestFailures.Inc()
		log.Warn("eWAY refused access request", zap.Stringp("gateway_error", ack.Error))
		return ack, nil
	}

	log.Info("eWAY access request accepted")
	return ack, nil
}

// ----------------- CheckAccessCode -----------------

func (g *ewayGateway) CheckAccessCode(
	ctx context.Context,
	cfg settings.Settings,
	accessCode string,
) (*TransactionOutcome, []byte) {

	log := logger.FromCtx(ctx).With(zap.String("endpoint", resultEndpoint))

	g.stats.ResultCalls.Inc()

	url := cfg.PaymentPage + resultEndpoint + "?" + buildResultFields(accessCode, cfg).Encode()

	body, err := g.get(ctx, url)
	if err != nil {
		g.stats.ResultFailures.Inc()
		log.Error("eWAY result request failed", zap.Error(err))
		return failedOutcome(err.Error()), nil
	}

	outcome, err := ParseTransactionOutcome(body)
	if err != nil {
		g.stats.ResultFailures.Inc()
		log.Error("Failed decoding eWAY transaction result",
			zap.Error(err),
			zap.ByteString("response", body),
		)
		return failedOutcome(err.Error()), body
	}

	log.Info("eWAY transaction result received",
		zap.Stringp("trxn_status", outcome.TransactionStatus),
		zap.Stringp("trxn_number", outcome.TransactionNumber),
		zap.Stringp("merchant_option1", outcome.MerchantOption1),
	)
	return outcome, body
}

// get performs a single GET and returns the body of a 2xx response.
func (g *ewayGateway) get(ctx context.Context, url string) ([]byte, error) {
	timer := metrics.StartTimer()
	defer g.stats.Observe(timer)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed building eway request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read eway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("eway returned status %d", resp.StatusCode)
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
