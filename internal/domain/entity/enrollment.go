// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentRecord grants a buyer access to one purchased (course, plan) pair.
// It is a pure projection of a completed order's line items: no record may
// exist without a corresponding order in status completed.
type EnrollmentRecord struct {
	ID            uuid.UUID `json:"id"`             // The unique ID of this enrollment row.
	BuyerID       uuid.UUID `json:"buyer_id"`       // The buyer who now owns access.
	OrderID       uuid.UUID `json:"order_id"`       // The completed order this enrollment derives from.
	CourseID      string    `json:"course_id"`      // The purchased course.
	Plan          Plan      `json:"plan"`           // The purchased access plan.
	CourseName    string    `json:"course_name"`    // Course title snapshotted from the order line item.
	AccessGranted bool      `json:"access_granted"` // Access-control gate for course content.
	EnrolledAt    time.Time `json:"enrolled_at"`    // When reconciliation granted access.
}

// ProjectEnrollments derives the enrollment records for a completed order.
// It returns nil when the order is not completed or has no owner, so callers
// can never mint access from a pending or failed order.
func ProjectEnrollments(order *Order, now time.Time) []*EnrollmentRecord {
	if order == nil || order.PaymentStatus != PaymentStatusCompleted || order.BuyerID == nil {
		return nil
	}

	records := make([]*EnrollmentRecord, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		records = append(records, &EnrollmentRecord{
			ID:            uuid.New(),
			BuyerID:       *order.BuyerID,
			OrderID:       order.ID,
			CourseID:      item.CourseID,
			Plan:          item.Plan,
			CourseName:    item.CourseName,
			AccessGranted: true,
			EnrolledAt:    now,
		})
	}

	return records
}
