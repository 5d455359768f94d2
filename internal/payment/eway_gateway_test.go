package payment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"eway-hosted/internal/metrics"
	"eway-hosted/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func testSettings() settings.Settings {
	return settings.Settings{
		CustomerID:  "87654321",
		Username:    "TestAccount",
		PaymentPage: "https://nz.ewaygateway.com/",
	}
}

func newTestGateway() (*ewayGateway, *metrics.Gateway) {
	stats := &metrics.Gateway{}
	return NewEwayGateway(5*time.Second, stats).(*ewayGateway), stats
}

func TestEwayGateway_RequestAccess(t *testing.T) {
	cfg := testSettings()
	fields := NewRequestFields(cfg.CustomerID).
		Add(FieldUserName, cfg.Username).
		Add(FieldAmount, "10.05").
		Add(FieldMerchantOption1, "1001")

	t.Run("Success", func(t *testing.T) {
		gw, stats := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t,
				"https://nz.ewaygateway.com/Request?CustomerID=87654321&UserName=TestAccount&Amount=10.05&MerchantOption1=1001",
				req.URL.String(),
			)
			return xmlResponse(http.StatusOK,
				`<TransactionRequest><Result>True</Result><URI>https://pay/x</URI></TransactionRequest>`)
		})

		ack, err := gw.RequestAccess(context.Background(), cfg, fields)
		require.NoError(t, err)
		assert.True(t, ack.Success)
		assert.Equal(t, "https://pay/x", *ack.RedirectURI)
		assert.Equal(t, uint64(1), stats.RequestCalls.Load())
		assert.Equal(t, uint64(0), stats.RequestFailures.Load())
	})

	t.Run("Gateway refusal", func(t *testing.T) {
		gw, stats := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusOK,
				`<TransactionRequest><Result>False</Result><Error>Invalid CustomerID</Error></TransactionRequest>`)
		})

		ack, err := gw.RequestAccess(context.Background(), cfg, fields)
		require.NoError(t, err)
		assert.False(t, ack.Success)
		assert.Equal(t, "Invalid CustomerID", *ack.Error)
		assert.Equal(t, uint64(1), stats.RequestFailures.Load())
	})

	t.Run("Non 2xx status", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusInternalServerError, "oops")
		})

		_, err := gw.RequestAccess(context.Background(), cfg, fields)
		assert.EqualError(t, err, "eway returned status 500")
	})

	t.Run("Malformed XML", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusOK, `<TransactionRequest><Result>`)
		})

		_, err := gw.RequestAccess(context.Background(), cfg, fields)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("Network error", func(t *testing.T) {
		gw, stats := newTestGateway()
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := gw.RequestAccess(context.Background(), cfg, fields)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NotErrorIs(t, err, ErrTimeout)
		assert.Equal(t, uint64(1), stats.RequestFailures.Load())
	})

	t.Run("Timeout", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, timeoutError{}
		})

		_, err := gw.RequestAccess(context.Background(), cfg, fields)
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		_, err := gw.RequestAccess(ctx, cfg, fields)
		assert.ErrorIs(t, err, ErrTimeout)
	})
}

func TestEwayGateway_CheckAccessCode(t *testing.T) {
	cfg := testSettings()

	t.Run("Success", func(t *testing.T) {
		body := `<TransactionResponse><TrxnStatus>True</TrxnStatus><MerchantOption1>1001</MerchantOption1></TransactionResponse>`

		gw, stats := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t,
				"https://nz.ewaygateway.com/Result?CustomerID=87654321&AccessPaymentCode=abc&UserName=TestAccount",
				req.URL.String(),
			)
			return xmlResponse(http.StatusOK, body)
		})

		out, raw := gw.CheckAccessCode(context.Background(), cfg, "abc")
		assert.True(t, out.Succeeded())
		assert.Equal(t, body, string(raw))
		assert.Equal(t, uint64(1), stats.ResultCalls.Load())
		assert.Equal(t, uint64(0), stats.ResultFailures.Load())
	})

	t.Run("Network error becomes outcome", func(t *testing.T) {
		gw, stats := newTestGateway()
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		})

		out, raw := gw.CheckAccessCode(context.Background(), cfg, "abc")
		require.NotNil(t, out.ErrorMessage)
		assert.Contains(t, *out.ErrorMessage, "connection reset")
		assert.Nil(t, out.TransactionStatus)
		assert.Nil(t, raw)
		assert.False(t, out.Succeeded())
		assert.Equal(t, uint64(1), stats.ResultFailures.Load())
	})

	t.Run("Non 2xx status becomes outcome", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusBadGateway, "")
		})

		out, _ := gw.CheckAccessCode(context.Background(), cfg, "abc")
		assert.Equal(t, "eway returned status 502", *out.ErrorMessage)
	})

	t.Run("Malformed XML becomes outcome", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusOK, `<TransactionResponse><TrxnStatus>`)
		})

		out, raw := gw.CheckAccessCode(context.Background(), cfg, "abc")
		require.NotNil(t, out.ErrorMessage)
		assert.Contains(t, *out.ErrorMessage, ErrMalformedResponse.Error())
		assert.NotEmpty(t, raw)
	})

	t.Run("Unknown root is empty outcome", func(t *testing.T) {
		gw, _ := newTestGateway()
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return xmlResponse(http.StatusOK, `<Foo/>`)
		})

		out, _ := gw.CheckAccessCode(context.Background(), cfg, "abc")
		assert.Equal(t, &TransactionOutcome{}, out)
	})
}
