// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coursecart/internal/delivery/http/middleware"
	"coursecart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	CheckoutHandler   *handler.CheckoutHandler
	OrderHandler      *handler.OrderHandler
	EnrollmentHandler *handler.EnrollmentHandler
	ProfileHandler    *handler.ProfileHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	checkoutHandler   *handler.CheckoutHandler
	orderHandler      *handler.OrderHandler
	enrollmentHandler *handler.EnrollmentHandler
	profileHandler    *handler.ProfileHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		checkoutHandler:   params.CheckoutHandler,
		orderHandler:      params.OrderHandler,
		enrollmentHandler: params.EnrollmentHandler,
		profileHandler:    params.ProfileHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// Checkout routes: submitting an order and reconciling its payment both
	// require an authenticated buyer.
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("", r.checkoutHandler.SubmitCheckout)
		checkoutGroup.GET("/confirm", r.checkoutHandler.ConfirmOrder)
	}

	// Buyer-scoped reads
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/orders", r.orderHandler.ListOrders)
		userGroup.GET("/orders/:orderNumber", r.orderHandler.GetOrder)
		userGroup.GET("/enrollments", r.enrollmentHandler.ListEnrollments)
		userGroup.GET("/profile", r.profileHandler.GetProfile)
		userGroup.PUT("/profile", r.profileHandler.UpdateProfile)
	}
}
