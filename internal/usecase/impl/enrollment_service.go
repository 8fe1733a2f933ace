package impl

import (
	"context"
	"log/slog"

	"coursecart/internal/domain/entity"
	"coursecart/internal/domain/repository"
	"coursecart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// enrollmentService implements the EnrollmentUsecase interface. Enrollments
// are written exclusively by order settlement; this service only reads them.
type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	logger         *slog.Logger
}

// EnrollmentServiceParams holds dependencies for enrollmentService, injected by Fx.
type EnrollmentServiceParams struct {
	fx.In

	EnrollmentRepo repository.EnrollmentRepository
	Logger         *slog.Logger
}

// NewEnrollmentService is the constructor for enrollmentService.
func NewEnrollmentService(params EnrollmentServiceParams) usecase.EnrollmentUsecase {
	return &enrollmentService{
		enrollmentRepo: params.EnrollmentRepo,
		logger:         params.Logger,
	}
}

// ListEnrollments retrieves the buyer's enrollments, newest first.
func (srv *enrollmentService) ListEnrollments(ctx context.Context, buyerID uuid.UUID) ([]*entity.EnrollmentRecord, error) {
	records, err := srv.enrollmentRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list enrollments")
	}

	return records, nil
}
