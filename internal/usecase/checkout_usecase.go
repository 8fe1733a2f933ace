package usecase

import (
	"context"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CheckoutItemInput is one cart line submitted at checkout: a course, the
// chosen plan and the display price string the client showed the buyer.
type CheckoutItemInput struct {
	CourseID string
	Plan     string
	Price    string
}

// CheckoutInput defines the data required to submit a checkout.
type CheckoutInput struct {
	BuyerID uuid.UUID
	Billing entity.BillingDetails
	Items   []CheckoutItemInput
}

// ConfirmOrderInput identifies the order the client returned from the
// payment flow with. Nothing else from the client is trusted.
type ConfirmOrderInput struct {
	BuyerID     uuid.UUID
	OrderNumber string
}

// --- Output DTOs ---

// CheckoutOutput returns the recorded order and the payment session the
// client must follow to pay.
type CheckoutOutput struct {
	Order          *entity.Order
	SessionID      string
	RedirectTarget string
}

// ConfirmOutput reports the reconciled order state. ClearCart is true only
// when the order reached completed, so the client empties its cart exactly
// when the purchase actually went through.
type ConfirmOutput struct {
	Order     *entity.Order
	ClearCart bool
}

// CheckoutUsecase defines the order lifecycle operations: recording a
// checkout, reconciling the payment outcome and reading orders back.
type CheckoutUsecase interface {
	// SubmitCheckout validates the cart, prices it server-side, records a
	// pending order and opens a payment session for it.
	SubmitCheckout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)

	// ConfirmOrder re-verifies the payment with the gateway and settles the
	// order into a terminal status, granting enrollments on success.
	ConfirmOrder(ctx context.Context, input *ConfirmOrderInput) (*ConfirmOutput, error)

	// GetOrder retrieves a single order owned by the buyer.
	GetOrder(ctx context.Context, buyerID uuid.UUID, orderNumber string) (*entity.Order, error)

	// ListOrders retrieves the buyer's orders, newest first.
	ListOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)
}
