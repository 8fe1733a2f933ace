// Package service defines interfaces for infrastructure-backed domain
// services, implemented under internal/infra.
package service

import "context"

// VerdictStatus is the authoritative outcome of a payment verification.
type VerdictStatus string

const (
	// VerdictSuccess — the processor confirmed the money moved.
	VerdictSuccess VerdictStatus = "SUCCESS"
	// VerdictFailed — the processor reported anything other than a completed
	// payment.
	VerdictFailed VerdictStatus = "FAILED"
)

// CreateSessionInput carries everything the processor needs to open a
// checkout session. Amounts are in minor currency units; the adapter performs
// whatever unit conversion the provider demands.
type CreateSessionInput struct {
	OrderNumber string // Used as the processor-side order id, so verification can key on it.
	AmountMinor int64
	Currency    string
	BuyerName   string
	BuyerEmail  string
	BuyerPhone  string
	ReturnURL   string
}

// Session identifies one checkout attempt at the processor.
type Session struct {
	SessionID      string // Short-lived processor-issued session identifier.
	RedirectTarget string // Where the buyer's browser goes to complete payment.
}

// VerifyResult is the processor's authoritative answer about one order.
type VerifyResult struct {
	Status      VerdictStatus
	AmountMinor int64
	Currency    string
	PaymentRef  string // Processor-side transaction reference.
}

// PaymentGateway is the server-side adapter to the external payment
// processor. Both operations run with server-held credentials only and must
// never be reachable with buyer-suppliable trust. VerifyPayment is the only
// source of truth for whether money moved; any client-supplied "I paid"
// signal is advisory.
type PaymentGateway interface {
	// CreatePaymentSession asks the processor to open a session for the
	// order. A network error, timeout or non-2xx response surfaces as
	// ErrGatewayUnavailable: the order stays pending and the buyer may retry.
	CreatePaymentSession(ctx context.Context, input CreateSessionInput) (*Session, error)

	// VerifyPayment asks the processor for the authoritative status of the
	// order identified by the processor-side order id.
	VerifyPayment(ctx context.Context, externalOrderID string) (*VerifyResult, error)
}
