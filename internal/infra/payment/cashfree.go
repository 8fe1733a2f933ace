// Package payment contains the server-side adapters to the external payment
// processor. Credentials live in configuration and never reach the client.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"coursecart/config"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/service"

	"github.com/pkg/errors"
)

const apiVersion = "2022-09-01"

// minorPerMajor converts between the ledger's minor units and the
// major-unit decimal amounts the provider's API speaks.
const minorPerMajor = 100

// paidStatus is the provider's sole success signal. Every other order_status
// (ACTIVE, EXPIRED, TERMINATED, ...) means the money did not move.
const paidStatus = "PAID"

// cashfreeGateway implements the PaymentGateway interface against a
// Cashfree-style REST API: one call to open an order session, one call to
// read the authoritative order status.
type cashfreeGateway struct {
	baseURL string
	appID   string
	secret  string
	client  *http.Client
	logger  *slog.Logger
}

// NewCashfreeGateway is the constructor for cashfreeGateway. The HTTP client
// timeout bounds every gateway call; a timeout is reported as gateway
// unavailability, never as a payment failure.
func NewCashfreeGateway(cfg *config.Config, logger *slog.Logger) service.PaymentGateway {
	return &cashfreeGateway{
		baseURL: cfg.PaymentGateway.BaseURL,
		appID:   cfg.PaymentGateway.AppID,
		secret:  cfg.PaymentGateway.Secret,
		client:  &http.Client{Timeout: cfg.PaymentGateway.Timeout},
		logger:  logger,
	}
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       orderMeta       `json:"order_meta"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url"`
}

type createOrderResponse struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
	PaymentLink      string `json:"payment_link"`
}

type orderStatusResponse struct {
	OrderID       string  `json:"order_id"`
	CfOrderID     string  `json:"cf_order_id"`
	OrderStatus   string  `json:"order_status"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
}

// CreatePaymentSession opens a processor-side order and returns the session
// the client needs to start the hosted payment flow.
func (g *cashfreeGateway) CreatePaymentSession(ctx context.Context, input service.CreateSessionInput) (*service.Session, error) {
	payload := createOrderRequest{
		OrderID:       input.OrderNumber,
		OrderAmount:   minorToMajor(input.AmountMinor),
		OrderCurrency: input.Currency,
		CustomerDetails: customerDetails{
			CustomerID:    input.OrderNumber, // processor only needs a stable per-order handle
			CustomerName:  input.BuyerName,
			CustomerEmail: input.BuyerEmail,
			CustomerPhone: input.BuyerPhone,
		},
		OrderMeta: orderMeta{ReturnURL: input.ReturnURL},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal create order payload")
	}

	var resp createOrderResponse
	if err := g.do(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}

	redirect := resp.PaymentLink
	if redirect == "" {
		redirect = resp.PaymentSessionID
	}

	return &service.Session{
		SessionID:      resp.PaymentSessionID,
		RedirectTarget: redirect,
	}, nil
}

// VerifyPayment reads the authoritative order status from the processor.
// Only the provider's PAID status maps to a success verdict.
func (g *cashfreeGateway) VerifyPayment(ctx context.Context, externalOrderID string) (*service.VerifyResult, error) {
	var resp orderStatusResponse
	if err := g.do(ctx, http.MethodGet, g.baseURL+"/orders/"+externalOrderID, nil, &resp); err != nil {
		return nil, err
	}

	status := service.VerdictFailed
	if resp.OrderStatus == paidStatus {
		status = service.VerdictSuccess
	}

	return &service.VerifyResult{
		Status:      status,
		AmountMinor: majorToMinor(resp.OrderAmount),
		Currency:    resp.OrderCurrency,
		PaymentRef:  resp.CfOrderID,
	}, nil
}

// do executes one authenticated gateway call and decodes the JSON response.
// Transport errors and non-2xx responses both surface as ErrGatewayUnavailable.
func (g *cashfreeGateway) do(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", g.appID)
	req.Header.Set("x-client-secret", g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Payment gateway call failed", slog.String("url", url), slog.Any("error", err))

		return domainerrors.ErrGatewayUnavailable.WrapMessage("gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		g.logger.Warn("Payment gateway returned non-2xx",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)

		return domainerrors.ErrGatewayUnavailable.WrapMessage(fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ErrGatewayUnavailable.WrapMessage("failed to decode gateway response")
	}

	return nil
}

func minorToMajor(minor int64) float64 {
	return float64(minor) / minorPerMajor
}

func majorToMinor(major float64) int64 {
	return int64(math.Round(major * minorPerMajor))
}
