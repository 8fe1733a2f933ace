package handler

import (
	"log/slog"
	"net/http"

	"coursecart/internal/delivery/http/middleware"
	"coursecart/internal/delivery/http/response"
	"coursecart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EnrollmentHandler holds dependencies for enrollment read handlers.
type EnrollmentHandler struct {
	uc     usecase.EnrollmentUsecase
	logger *slog.Logger
}

// NewEnrollmentHandler is the constructor for EnrollmentHandler, injected by Fx.
func NewEnrollmentHandler(uc usecase.EnrollmentUsecase, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{uc: uc, logger: logger}
}

// ListEnrollments returns the authenticated buyer's enrollments.
func (h *EnrollmentHandler) ListEnrollments(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "MISSING_TOKEN", "Authentication required")
	}

	records, err := h.uc.ListEnrollments(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "")
}
