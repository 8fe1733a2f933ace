// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
)

// EnrollmentRepository defines the interface for enrollment persistence.
// Enrollment rows exist only as a consequence of a completed order.
type EnrollmentRepository interface {
	// CreateBatch persists the enrollment records projected from one
	// completed order.
	CreateBatch(ctx context.Context, records []*entity.EnrollmentRecord) error

	// FindByBuyer retrieves all enrollments for a buyer, newest first.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.EnrollmentRecord, error)

	// FindByOrder retrieves the enrollments derived from a specific order.
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.EnrollmentRecord, error)
}
