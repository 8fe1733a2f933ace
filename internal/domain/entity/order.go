// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus describes the payment lifecycle of an order.
type PaymentStatus string

const (
	// PaymentStatusPending — order recorded, money has not moved yet.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCompleted — the payment processor confirmed the charge.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusFailed — the processor reported failure or verification errored.
	PaymentStatusFailed PaymentStatus = "failed"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// The only legal transitions are pending->completed and pending->failed;
// terminal states are never overwritten.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending && next.IsTerminal()
}

// Address is the postal part of the billing snapshot.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingDetails is the contact information snapshotted onto every order.
// Fields are validated for presence only, apart from the email shape.
type BillingDetails struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// OrderLineItem is one purchased (course, plan) pair, snapshotted at order
// creation time with the course title resolved at that moment. Line items are
// immutable once the order exists.
type OrderLineItem struct {
	ID         uuid.UUID `json:"id"`          // The unique ID of this line item row.
	OrderID    uuid.UUID `json:"order_id"`    // The order this line item belongs to.
	CourseID   string    `json:"course_id"`   // External identifier of the purchased course.
	Plan       Plan      `json:"plan"`        // Purchased access plan (short or long).
	CourseName string    `json:"course_name"` // Course title as resolved when the order was created.
	PriceMinor int64     `json:"price_minor"` // Item price in minor currency units.
}

// Order is the durable record of a purchase: identity, billing snapshot, line
// items, computed totals and payment status. Orders are append-only financial
// records; they are mutated exactly once (by reconciliation) and never deleted.
type Order struct {
	ID          uuid.UUID      `json:"id"`           // Internal identity.
	OrderNumber string         `json:"order_number"` // Human-facing number, derived from date plus a random suffix.
	BuyerID     *uuid.UUID     `json:"buyer_id"`     // Owning buyer; nullable so guest orders stay representable.
	Billing     BillingDetails `json:"billing"`      // Billing snapshot taken at checkout submission.
	LineItems   []OrderLineItem `json:"line_items"`

	Currency      string `json:"currency"`
	SubtotalMinor int64  `json:"subtotal_minor"` // Sum of line item prices, minor units.
	TaxMinor      int64  `json:"tax_minor"`      // Fixed-rate tax on the subtotal, rounded half-up.
	TotalMinor    int64  `json:"total_minor"`    // SubtotalMinor + TaxMinor, always.

	PaymentStatus PaymentStatus `json:"payment_status"`
	// ExternalPaymentRef is the processor-side transaction reference, set once
	// the gateway confirms a transaction.
	ExternalPaymentRef string `json:"external_payment_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // Bumped on every status transition.
}
