package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel mirrors the 'enrollments' table. Rows exist only for
// completed orders; (buyer_id, order_id, course_id, plan) is unique so the
// grant step stays idempotent.
type EnrollmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_grant"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_grant"`
	CourseID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_enrollment_grant"`
	Plan          string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_enrollment_grant"`
	CourseName    string    `gorm:"type:varchar(255);not null"`
	AccessGranted bool      `gorm:"not null;default:true"`
	EnrolledAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EnrollmentModel) TableName() string {
	return "enrollments"
}
