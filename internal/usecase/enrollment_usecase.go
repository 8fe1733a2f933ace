package usecase

import (
	"context"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
)

// EnrollmentUsecase defines read operations over the enrollments a buyer
// earned through completed orders.
type EnrollmentUsecase interface {
	// ListEnrollments retrieves the buyer's enrollments, newest first.
	ListEnrollments(ctx context.Context, buyerID uuid.UUID) ([]*entity.EnrollmentRecord, error)
}
