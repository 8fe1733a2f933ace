package payment

import (
	"log/slog"

	"coursecart/config"
	"coursecart/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the dependencies for gateway construction, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New selects the gateway implementation from configuration. The stub is an
// explicit configuration choice, never an implicit environment-based
// fallback.
func New(params Params) (service.PaymentGateway, error) {
	switch params.Config.PaymentGateway.Provider {
	case "cashfree":
		return NewCashfreeGateway(params.Config, params.Logger), nil
	case "stub":
		return NewStubGateway(params.Config), nil
	default:
		return nil, errors.Errorf("unknown payment gateway provider: %s", params.Config.PaymentGateway.Provider)
	}
}
