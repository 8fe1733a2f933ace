package handler

import (
	"log/slog"
	"net/http"

	"coursecart/internal/delivery/http/middleware"
	"coursecart/internal/delivery/http/response"
	"coursecart/internal/domain/entity"
	"coursecart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for the order lifecycle handlers.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, logger: logger}
}

type checkoutItemRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Plan     string `json:"plan" validate:"required,oneof=short long"`
	Price    string `json:"price" validate:"required"`
}

type checkoutAddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type checkoutRequest struct {
	Billing struct {
		Name    string                 `json:"name" validate:"required"`
		Email   string                 `json:"email" validate:"required,email"`
		Phone   string                 `json:"phone" validate:"required"`
		Address checkoutAddressRequest `json:"address"`
	} `json:"billing"`
	Items []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type checkoutResponse struct {
	Order          *entity.Order `json:"order"`
	SessionID      string        `json:"session_id"`
	RedirectTarget string        `json:"redirect_target"`
}

type confirmResponse struct {
	Order     *entity.Order `json:"order"`
	ClearCart bool          `json:"clear_cart"`
}

// SubmitCheckout handles the checkout submission: it records the order and
// returns the payment session the client must follow.
func (h *CheckoutHandler) SubmitCheckout(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_TOKEN", "Authentication required")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]usecase.CheckoutItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CheckoutItemInput{
			CourseID: item.CourseID,
			Plan:     item.Plan,
			Price:    item.Price,
		})
	}

	output, err := h.uc.SubmitCheckout(c.Request().Context(), &usecase.CheckoutInput{
		BuyerID: userID,
		Billing: entity.BillingDetails{
			Name:  req.Billing.Name,
			Email: req.Billing.Email,
			Phone: req.Billing.Phone,
			Address: entity.Address{
				Line1:      req.Billing.Address.Line1,
				Line2:      req.Billing.Address.Line2,
				City:       req.Billing.Address.City,
				State:      req.Billing.Address.State,
				PostalCode: req.Billing.Address.PostalCode,
				Country:    req.Billing.Address.Country,
			},
		},
		Items: items,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, checkoutResponse{
		Order:          output.Order,
		SessionID:      output.SessionID,
		RedirectTarget: output.RedirectTarget,
	}, "Order recorded")
}

// ConfirmOrder handles the return from the payment flow. The order number is
// the only client input; the verdict comes from gateway verification.
func (h *CheckoutHandler) ConfirmOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_TOKEN", "Authentication required")
	}

	orderNumber := c.QueryParam("order_no")
	if orderNumber == "" {
		return response.BindingError(c, "INVALID_INPUT", "order_no query parameter is required")
	}

	output, err := h.uc.ConfirmOrder(c.Request().Context(), &usecase.ConfirmOrderInput{
		BuyerID:     userID,
		OrderNumber: orderNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, confirmResponse{
		Order:     output.Order,
		ClearCart: output.ClearCart,
	}, "Order reconciled")
}
