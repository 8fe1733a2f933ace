package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursecart/config"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, baseURL string, timeout time.Duration) service.PaymentGateway {
	t.Helper()

	cfg := &config.Config{
		PaymentGateway: &config.PaymentGatewayConfig{
			BaseURL: baseURL,
			AppID:   "test-app-id",
			Secret:  "test-secret",
			Timeout: timeout,
		},
	}

	return NewCashfreeGateway(cfg, slog.New(slog.DiscardHandler))
}

func TestCashfreeGateway_CreatePaymentSession(t *testing.T) {
	var captured createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "test-app-id", r.Header.Get("x-client-id"))
		require.Equal(t, "test-secret", r.Header.Get("x-client-secret"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(createOrderResponse{
			OrderID:          captured.OrderID,
			PaymentSessionID: "session_abc",
			PaymentLink:      "https://pay.example.com/session_abc",
		})
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, time.Second)
	session, err := gw.CreatePaymentSession(context.Background(), service.CreateSessionInput{
		OrderNumber: "ORD-20260831-ABCDEF",
		AmountMinor: 3892,
		Currency:    "INR",
		BuyerName:   "Asha",
		BuyerEmail:  "asha@example.com",
		BuyerPhone:  "9999999999",
		ReturnURL:   "https://shop.example.com/checkout/confirm",
	})
	require.NoError(t, err)

	assert.Equal(t, "session_abc", session.SessionID)
	assert.Equal(t, "https://pay.example.com/session_abc", session.RedirectTarget)
	assert.Equal(t, "ORD-20260831-ABCDEF", captured.OrderID)
	assert.InDelta(t, 38.92, captured.OrderAmount, 0.001)
	assert.Equal(t, "INR", captured.OrderCurrency)
	assert.Equal(t, "https://shop.example.com/checkout/confirm", captured.OrderMeta.ReturnURL)
}

func TestCashfreeGateway_VerifyPayment_Paid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/orders/ORD-20260831-ABCDEF", r.URL.Path)

		json.NewEncoder(w).Encode(orderStatusResponse{
			OrderID:       "ORD-20260831-ABCDEF",
			CfOrderID:     "cf_12345",
			OrderStatus:   "PAID",
			OrderAmount:   38.92,
			OrderCurrency: "INR",
		})
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, time.Second)
	result, err := gw.VerifyPayment(context.Background(), "ORD-20260831-ABCDEF")
	require.NoError(t, err)

	assert.Equal(t, service.VerdictSuccess, result.Status)
	assert.Equal(t, int64(3892), result.AmountMinor)
	assert.Equal(t, "cf_12345", result.PaymentRef)
}

func TestCashfreeGateway_VerifyPayment_NotPaid(t *testing.T) {
	for _, status := range []string{"ACTIVE", "EXPIRED", "TERMINATED"} {
		t.Run(status, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(orderStatusResponse{OrderStatus: status})
			}))
			defer srv.Close()

			gw := newGateway(t, srv.URL, time.Second)
			result, err := gw.VerifyPayment(context.Background(), "ORD-1")
			require.NoError(t, err)
			assert.Equal(t, service.VerdictFailed, result.Status)
		})
	}
}

func TestCashfreeGateway_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, time.Second)
	_, err := gw.VerifyPayment(context.Background(), "ORD-1")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrGatewayUnavailable.ErrorCode(), appErr.ErrorCode())
}

func TestCashfreeGateway_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := newGateway(t, srv.URL, 20*time.Millisecond)
	_, err := gw.VerifyPayment(context.Background(), "ORD-1")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrGatewayUnavailable.ErrorCode(), appErr.ErrorCode())
}

func TestStubGateway(t *testing.T) {
	cfg := &config.Config{
		PaymentGateway: &config.PaymentGatewayConfig{ReturnURL: "https://shop.example.com/checkout/confirm"},
	}
	gw := NewStubGateway(cfg)

	session, err := gw.CreatePaymentSession(context.Background(), service.CreateSessionInput{OrderNumber: "ORD-1"})
	require.NoError(t, err)
	assert.Equal(t, "stub-session-ORD-1", session.SessionID)

	result, err := gw.VerifyPayment(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, service.VerdictFailed, result.Status)

	gw.(*stubGateway).MarkPaid("ORD-1")
	result, err = gw.VerifyPayment(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, service.VerdictSuccess, result.Status)
}
