// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coursecart/config"
	deliverycontext "coursecart/internal/delivery/context"
	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/pricing"
	"coursecart/internal/domain/repository"
	"coursecart/internal/domain/service"
	"coursecart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	gateway   service.PaymentGateway
	catalog   service.CourseCatalog
	pricer    *pricing.Engine
	returnURL string
	logger    *slog.Logger
	now       func() time.Time
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Gateway   service.PaymentGateway
	Catalog   service.CourseCatalog
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService. It receives all dependencies as interfaces.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		gateway:   params.Gateway,
		catalog:   params.Catalog,
		pricer:    pricing.NewEngine(params.Config.Pricing.TaxRateBasisPoints, params.Config.Pricing.Currency),
		returnURL: params.Config.PaymentGateway.ReturnURL,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitCheckout validates and prices the submitted cart entirely server-side,
// records the order as pending and opens a payment session for its total. The
// order survives even when the session cannot be opened, so a gateway outage
// never loses a recorded purchase attempt.
func (srv *checkoutService) SubmitCheckout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	items, err := srv.normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	quote, err := srv.pricer.Price(items)
	if err != nil {
		srv.log(ctx).Warn("Cart pricing failed", slog.Any("buyerID", input.BuyerID), slog.Any("error", err))

		return nil, err
	}

	order := srv.buildOrder(input, items, quote)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The buyer profile is materialized lazily from the billing details.
		// Order creation must not proceed against a missing profile row.
		profile := &entity.BuyerProfile{
			UserID: input.BuyerID,
			Name:   input.Billing.Name,
			Phone:  input.Billing.Phone,
		}
		if err := repoFactory.UserRepo().UpsertBuyerProfile(ctx, profile); err != nil {
			return domainerrors.ErrProfileCreationFailed.WrapMessage(err.Error())
		}

		return repoFactory.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to record checkout order",
			slog.Any("buyerID", input.BuyerID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to execute checkout transaction")
	}

	srv.log(ctx).Info("Order recorded",
		slog.String("orderNumber", order.OrderNumber),
		slog.Int64("totalMinor", order.TotalMinor),
	)

	session, err := srv.gateway.CreatePaymentSession(ctx, service.CreateSessionInput{
		OrderNumber: order.OrderNumber,
		AmountMinor: order.TotalMinor,
		Currency:    order.Currency,
		BuyerName:   order.Billing.Name,
		BuyerEmail:  order.Billing.Email,
		BuyerPhone:  order.Billing.Phone,
		ReturnURL:   srv.returnURL,
	})
	if err != nil {
		// The pending order stays on record; the buyer retries via confirm
		// or a fresh checkout once the provider recovers.
		srv.log(ctx).Error("Failed to open payment session",
			slog.String("orderNumber", order.OrderNumber),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to open payment session")
	}

	return &usecase.CheckoutOutput{
		Order:          order,
		SessionID:      session.SessionID,
		RedirectTarget: session.RedirectTarget,
	}, nil
}

// normalizeItems validates the submitted cart lines and collapses duplicate
// (course, plan) selections.
func (srv *checkoutService) normalizeItems(inputs []usecase.CheckoutItemInput) ([]entity.CartItem, error) {
	if len(inputs) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	var cart entity.Cart
	for _, item := range inputs {
		plan := entity.Plan(item.Plan)
		if !plan.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown plan: " + item.Plan)
		}
		if item.CourseID == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("cart item is missing a course id")
		}

		cart.Add(entity.CartItem{
			CourseID: item.CourseID,
			Plan:     plan,
			Price:    item.Price,
		})
	}

	return cart.Items, nil
}

// buildOrder assembles the pending order with its billing snapshot, resolved
// line items and the quote's totals.
func (srv *checkoutService) buildOrder(input *usecase.CheckoutInput, items []entity.CartItem, quote *pricing.Quote) *entity.Order {
	lineItems := make([]entity.OrderLineItem, 0, len(items))
	for _, item := range items {
		amount, _ := pricing.ParseAmount(item.Price) // already validated by Price
		lineItems = append(lineItems, entity.OrderLineItem{
			CourseID:   item.CourseID,
			Plan:       item.Plan,
			CourseName: srv.catalog.ResolveTitle(item.CourseID),
			PriceMinor: amount,
		})
	}

	buyerID := input.BuyerID

	return &entity.Order{
		OrderNumber:   srv.generateOrderNumber(),
		BuyerID:       &buyerID,
		Billing:       input.Billing,
		LineItems:     lineItems,
		Currency:      quote.Currency,
		SubtotalMinor: quote.SubtotalMinor,
		TaxMinor:      quote.TaxMinor,
		TotalMinor:    quote.TotalMinor,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

// generateOrderNumber derives the human-facing order number: the checkout
// date plus a random suffix. The column's unique constraint backstops the
// negligible collision chance.
func (srv *checkoutService) generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	return "ORD-" + srv.now().UTC().Format("20060102") + "-" + suffix
}

// ConfirmOrder reconciles the order against the payment provider. The
// client's return from the payment flow is only a trigger: the verdict comes
// from a fresh gateway verification, and the terminal status is applied with
// a conditional write so concurrent confirmations settle the order exactly once.
func (srv *checkoutService) ConfirmOrder(ctx context.Context, input *usecase.ConfirmOrderInput) (*usecase.ConfirmOutput, error) {
	order, err := srv.loadOwnedOrder(ctx, input.BuyerID, input.OrderNumber)
	if err != nil {
		return nil, err
	}

	// A settled order never changes again; re-confirmation just reports it.
	if order.PaymentStatus.IsTerminal() {
		return &usecase.ConfirmOutput{
			Order:     order,
			ClearCart: order.PaymentStatus == entity.PaymentStatusCompleted,
		}, nil
	}

	result, err := srv.gateway.VerifyPayment(ctx, order.OrderNumber)
	if err != nil {
		// Verification could not run, so the order stays pending rather than
		// being guessed into a terminal state.
		srv.log(ctx).Error("Payment verification unavailable",
			slog.String("orderNumber", order.OrderNumber),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to verify payment")
	}

	target := entity.PaymentStatusFailed
	if result.Status == service.VerdictSuccess {
		target = entity.PaymentStatusCompleted
	}

	if result.Status == service.VerdictSuccess && result.AmountMinor != 0 && result.AmountMinor != order.TotalMinor {
		srv.log(ctx).Warn("Verified amount differs from order total",
			slog.String("orderNumber", order.OrderNumber),
			slog.Int64("orderTotalMinor", order.TotalMinor),
			slog.Int64("verifiedMinor", result.AmountMinor),
		)
	}

	// The external reference marks a confirmed transaction; a failed
	// verification leaves it empty.
	paymentRef := ""
	if target == entity.PaymentStatusCompleted {
		paymentRef = result.PaymentRef
	}

	settled, err := srv.settleOrder(ctx, order, target, paymentRef)
	if err != nil {
		return nil, err
	}

	return &usecase.ConfirmOutput{
		Order:     settled,
		ClearCart: settled.PaymentStatus == entity.PaymentStatusCompleted,
	}, nil
}

// settleOrder applies the terminal status and, on completion, grants the
// enrollments in the same transaction as the winning status write. A lost
// conditional write means another confirmation settled the order first; the
// stored outcome wins and a disagreement with our verdict is only logged.
func (srv *checkoutService) settleOrder(ctx context.Context, order *entity.Order, target entity.PaymentStatus, paymentRef string) (*entity.Order, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OrderRepo().UpdateStatusFromPending(ctx, order.ID, target, paymentRef); err != nil {
			return err
		}

		order.PaymentStatus = target
		order.ExternalPaymentRef = paymentRef

		records := entity.ProjectEnrollments(order, srv.now().UTC())
		if len(records) == 0 {
			return nil
		}

		return repoFactory.EnrollmentRepo().CreateBatch(ctx, records)
	})
	if err == nil {
		srv.log(ctx).Info("Order settled",
			slog.String("orderNumber", order.OrderNumber),
			slog.String("status", string(order.PaymentStatus)),
		)

		return order, nil
	}

	if !errors.Is(err, repository.ErrStatusConflict) {
		srv.log(ctx).Error("Failed to settle order",
			slog.String("orderNumber", order.OrderNumber),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to execute settlement transaction")
	}

	// Lost the race: report whatever the winner stored.
	stored, findErr := srv.orderRepo.FindByOrderNumber(ctx, order.OrderNumber)
	if findErr != nil {
		return nil, errors.Wrap(findErr, "failed to reload settled order")
	}

	if stored.PaymentStatus != target {
		srv.log(ctx).Warn("Verification verdict disagrees with settled status",
			slog.String("orderNumber", order.OrderNumber),
			slog.String("verdict", string(target)),
			slog.String("settled", string(stored.PaymentStatus)),
		)
	}

	return stored, nil
}

// GetOrder retrieves a single order owned by the buyer.
func (srv *checkoutService) GetOrder(ctx context.Context, buyerID uuid.UUID, orderNumber string) (*entity.Order, error) {
	return srv.loadOwnedOrder(ctx, buyerID, orderNumber)
}

// ListOrders retrieves the buyer's orders, newest first.
func (srv *checkoutService) ListOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// loadOwnedOrder loads an order and enforces that it belongs to the buyer.
func (srv *checkoutService) loadOwnedOrder(ctx context.Context, buyerID uuid.UUID, orderNumber string) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.BuyerID == nil || *order.BuyerID != buyerID {
		srv.log(ctx).Warn("Order access denied",
			slog.String("orderNumber", orderNumber),
			slog.Any("buyerID", buyerID),
		)

		return nil, domainerrors.ErrOrderOwnershipViolation
	}

	return order, nil
}
