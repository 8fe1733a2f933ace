package postgres

import (
	"context"

	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/repository"
	"coursecart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// enrollmentRepository implements the domain.EnrollmentRepository interface using GORM.
type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository is the constructor for enrollmentRepository.
func NewEnrollmentRepository(db *gorm.DB) repository.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// CreateBatch persists the enrollment records projected from one completed
// order. Conflicting rows are skipped so a replayed grant stays idempotent.
func (repo *enrollmentRepository) CreateBatch(ctx context.Context, records []*entity.EnrollmentRecord) error {
	if len(records) == 0 {
		return nil
	}

	recordMs := make([]model.EnrollmentModel, 0, len(records))
	for _, record := range records {
		recordMs = append(recordMs, *fromEnrollmentDomain(record))
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&recordMs).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("enrollment references missing order or buyer")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create enrollments")
	}

	for i := range recordMs {
		records[i].ID = recordMs[i].ID
	}

	return nil
}

// FindByBuyer retrieves all enrollments for a buyer, newest first.
func (repo *enrollmentRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.EnrollmentRecord, error) {
	var recordMs []model.EnrollmentModel
	err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("enrolled_at DESC").
		Find(&recordMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enrollments by buyer")
	}

	return toEnrollmentDomainSlice(recordMs), nil
}

// FindByOrder retrieves the enrollments derived from a specific order.
func (repo *enrollmentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.EnrollmentRecord, error) {
	var recordMs []model.EnrollmentModel
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&recordMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enrollments by order")
	}

	return toEnrollmentDomainSlice(recordMs), nil
}

// --- Mapper Functions ---

func toEnrollmentDomainSlice(data []model.EnrollmentModel) []*entity.EnrollmentRecord {
	records := make([]*entity.EnrollmentRecord, 0, len(data))
	for i := range data {
		records = append(records, toEnrollmentDomain(&data[i]))
	}

	return records
}

func toEnrollmentDomain(data *model.EnrollmentModel) *entity.EnrollmentRecord {
	if data == nil {
		return nil
	}

	return &entity.EnrollmentRecord{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		OrderID:       data.OrderID,
		CourseID:      data.CourseID,
		Plan:          entity.Plan(data.Plan),
		CourseName:    data.CourseName,
		AccessGranted: data.AccessGranted,
		EnrolledAt:    data.EnrolledAt,
	}
}

func fromEnrollmentDomain(data *entity.EnrollmentRecord) *model.EnrollmentModel {
	if data == nil {
		return nil
	}

	return &model.EnrollmentModel{
		ID:            data.ID,
		BuyerID:       data.BuyerID,
		OrderID:       data.OrderID,
		CourseID:      data.CourseID,
		Plan:          string(data.Plan),
		CourseName:    data.CourseName,
		AccessGranted: data.AccessGranted,
		EnrolledAt:    data.EnrolledAt,
	}
}
