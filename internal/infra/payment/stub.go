package payment

import (
	"context"
	"sync"

	"coursecart/config"
	"coursecart/internal/domain/service"
)

// stubGateway is a config-selectable in-process gateway for disconnected
// operation (tests, demos). Sessions open successfully; verification reports
// failure unless the order was explicitly marked paid, mirroring the real
// adapter's "unverified means unpaid" posture.
type stubGateway struct {
	returnURL string

	mu   sync.Mutex
	paid map[string]bool
}

// NewStubGateway is the constructor for stubGateway.
func NewStubGateway(cfg *config.Config) service.PaymentGateway {
	return &stubGateway{
		returnURL: cfg.PaymentGateway.ReturnURL,
		paid:      make(map[string]bool),
	}
}

// CreatePaymentSession opens a fake session that redirects straight back to
// the return URL.
func (g *stubGateway) CreatePaymentSession(_ context.Context, input service.CreateSessionInput) (*service.Session, error) {
	return &service.Session{
		SessionID:      "stub-session-" + input.OrderNumber,
		RedirectTarget: g.returnURL,
	}, nil
}

// VerifyPayment reports success only for orders previously marked paid.
func (g *stubGateway) VerifyPayment(_ context.Context, externalOrderID string) (*service.VerifyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := service.VerdictFailed
	if g.paid[externalOrderID] {
		status = service.VerdictSuccess
	}

	return &service.VerifyResult{
		Status:     status,
		PaymentRef: "stub-payment-" + externalOrderID,
	}, nil
}

// MarkPaid flips an order to paid so demo flows can exercise the success path.
func (g *stubGateway) MarkPaid(externalOrderID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paid[externalOrderID] = true
}
