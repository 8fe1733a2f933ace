package impl

import (
	"context"
	"testing"

	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/service"
	"coursecart/internal/errors"
	"coursecart/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCheckoutInput(buyerID uuid.UUID) *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		BuyerID: buyerID,
		Billing: entity.BillingDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9999999999",
			Address: entity.Address{
				Line1:      "12 MG Road",
				City:       "Bengaluru",
				State:      "Karnataka",
				PostalCode: "560001",
				Country:    "India",
			},
		},
		Items: []usecase.CheckoutItemInput{
			{CourseID: "course-algo", Plan: "short", Price: "₹299"},
			{CourseID: "course-sysdes", Plan: "long", Price: "₹2,999"},
		},
	}
}

func TestSubmitCheckout_RecordsPendingOrder(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()

	out, err := fx.service.SubmitCheckout(context.Background(), sampleCheckoutInput(buyerID))
	require.NoError(t, err)

	assert.Equal(t, int64(3298), out.Order.SubtotalMinor)
	assert.Equal(t, int64(594), out.Order.TaxMinor)
	assert.Equal(t, int64(3892), out.Order.TotalMinor)
	assert.Equal(t, entity.PaymentStatusPending, out.Order.PaymentStatus)
	assert.Equal(t, "INR", out.Order.Currency)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, out.Order.OrderNumber)
	assert.Equal(t, "sess-"+out.Order.OrderNumber, out.SessionID)
	assert.NotEmpty(t, out.RedirectTarget)

	require.Len(t, out.Order.LineItems, 2)
	assert.Equal(t, "Title of course-algo", out.Order.LineItems[0].CourseName)
	assert.Equal(t, int64(299), out.Order.LineItems[0].PriceMinor)

	// The billing details seeded the buyer profile.
	profile, err := fx.userRepo.FindBuyerProfile(context.Background(), buyerID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", profile.Name)

	stored, err := fx.orderRepo.FindByOrderNumber(context.Background(), out.Order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
}

func TestSubmitCheckout_EmptyCart(t *testing.T) {
	fx := newCheckoutFixture()

	input := sampleCheckoutInput(uuid.New())
	input.Items = nil

	_, err := fx.service.SubmitCheckout(context.Background(), input)
	require.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestSubmitCheckout_DuplicateSelectionsCollapse(t *testing.T) {
	fx := newCheckoutFixture()

	input := sampleCheckoutInput(uuid.New())
	input.Items = append(input.Items, usecase.CheckoutItemInput{
		CourseID: "course-algo", Plan: "short", Price: "₹299",
	})

	out, err := fx.service.SubmitCheckout(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, out.Order.LineItems, 2)
	assert.Equal(t, int64(3298), out.Order.SubtotalMinor)
}

func TestSubmitCheckout_InvalidPriceRejectsOrder(t *testing.T) {
	fx := newCheckoutFixture()

	input := sampleCheckoutInput(uuid.New())
	input.Items[1].Price = "about 300"

	_, err := fx.service.SubmitCheckout(context.Background(), input)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_PRICE_FORMAT", appErr.ErrorCode())
	assert.Empty(t, fx.orderRepo.orders)
}

func TestSubmitCheckout_UnknownPlanRejected(t *testing.T) {
	fx := newCheckoutFixture()

	input := sampleCheckoutInput(uuid.New())
	input.Items[0].Plan = "lifetime"

	_, err := fx.service.SubmitCheckout(context.Background(), input)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestSubmitCheckout_ProfileUpsertFailureAbortsOrder(t *testing.T) {
	fx := newCheckoutFixture()
	fx.userRepo.upsertErr = errors.New("profiles table unavailable")

	_, err := fx.service.SubmitCheckout(context.Background(), sampleCheckoutInput(uuid.New()))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PROFILE_CREATION_FAILED", appErr.ErrorCode())
	assert.Empty(t, fx.orderRepo.orders)
}

func TestSubmitCheckout_GatewayOutageKeepsOrderPending(t *testing.T) {
	fx := newCheckoutFixture()
	fx.gateway.sessionErr = domainerrors.ErrGatewayUnavailable

	_, err := fx.service.SubmitCheckout(context.Background(), sampleCheckoutInput(uuid.New()))
	require.ErrorIs(t, err, domainerrors.ErrGatewayUnavailable)

	// The order outlives the session failure and stays pending.
	require.Len(t, fx.orderRepo.orders, 1)
	for _, stored := range fx.orderRepo.orders {
		assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
	}
}

func submitOrder(t *testing.T, fx *checkoutFixture, buyerID uuid.UUID) *entity.Order {
	t.Helper()

	out, err := fx.service.SubmitCheckout(context.Background(), sampleCheckoutInput(buyerID))
	require.NoError(t, err)

	return out.Order
}

func TestConfirmOrder_SuccessCompletesAndGrantsEnrollments(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	fx.gateway.verdict = service.VerdictSuccess
	fx.gateway.amountMinor = 3892

	out, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, out.Order.PaymentStatus)
	assert.Equal(t, "pay-ref-1", out.Order.ExternalPaymentRef)
	assert.True(t, out.ClearCart)

	records, err := fx.enrollments.FindByBuyer(context.Background(), buyerID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, order.ID, record.OrderID)
		assert.True(t, record.AccessGranted)
	}
}

func TestConfirmOrder_FailureKeepsCartAndGrantsNothing(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	fx.gateway.verdict = service.VerdictFailed

	out, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, out.Order.PaymentStatus)
	assert.False(t, out.ClearCart)
	assert.Empty(t, fx.enrollments.records)

	// Only a confirmed transaction carries an external reference; the
	// gateway's id for a failed attempt is not persisted.
	assert.Empty(t, out.Order.ExternalPaymentRef)
	stored, err := fx.orderRepo.FindByOrderNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Empty(t, stored.ExternalPaymentRef)
}

func TestConfirmOrder_TerminalOrderIsReadOnly(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	fx.gateway.verdict = service.VerdictFailed
	_, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.NoError(t, err)

	verifiesAfterSettlement := fx.gateway.verifyCalls

	// A second confirmation reports the settled state without touching the
	// gateway, and a failed order never flips to completed.
	fx.gateway.verdict = service.VerdictSuccess
	out, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusFailed, out.Order.PaymentStatus)
	assert.False(t, out.ClearCart)
	assert.Equal(t, verifiesAfterSettlement, fx.gateway.verifyCalls)
	assert.Empty(t, fx.enrollments.records)
}

func TestConfirmOrder_LostRaceReportsSettledState(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	// Another confirmation settles the order to completed between our verify
	// and our conditional write.
	fx.gateway.verdict = service.VerdictFailed
	fx.gateway.onVerify = func() {
		require.NoError(t, fx.orderRepo.UpdateStatusFromPending(
			context.Background(), order.ID, entity.PaymentStatusCompleted, "pay-ref-winner"))
	}

	out, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.NoError(t, err)

	// The stored outcome wins over our verdict.
	assert.Equal(t, entity.PaymentStatusCompleted, out.Order.PaymentStatus)
	assert.Equal(t, "pay-ref-winner", out.Order.ExternalPaymentRef)
	assert.True(t, out.ClearCart)
}

func TestConfirmOrder_VerifyUnavailableKeepsPending(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	fx.gateway.verifyErr = domainerrors.ErrGatewayUnavailable

	_, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     buyerID,
		OrderNumber: order.OrderNumber,
	})
	require.ErrorIs(t, err, domainerrors.ErrGatewayUnavailable)

	stored, err := fx.orderRepo.FindByOrderNumber(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
}

func TestConfirmOrder_OwnershipEnforced(t *testing.T) {
	fx := newCheckoutFixture()
	order := submitOrder(t, fx, uuid.New())

	_, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     uuid.New(),
		OrderNumber: order.OrderNumber,
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderOwnershipViolation)
}

func TestConfirmOrder_UnknownOrder(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.service.ConfirmOrder(context.Background(), &usecase.ConfirmOrderInput{
		BuyerID:     uuid.New(),
		OrderNumber: "ORD-20260831-MISSING1",
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestListOrders_ScopedToBuyer(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	submitOrder(t, fx, buyerID)
	submitOrder(t, fx, uuid.New())

	orders, err := fx.service.ListOrders(context.Background(), buyerID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	fx := newCheckoutFixture()
	buyerID := uuid.New()
	order := submitOrder(t, fx, buyerID)

	got, err := fx.service.GetOrder(context.Background(), buyerID, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)

	_, err = fx.service.GetOrder(context.Background(), uuid.New(), order.OrderNumber)
	require.ErrorIs(t, err, domainerrors.ErrOrderOwnershipViolation)
}
