// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"coursecart/internal/domain/entity"
	"coursecart/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a status update loses the conditional
	// write: the order was no longer pending when the update ran.
	ErrStatusConflict = errors.New("order status already terminal")
)

// OrderRepository defines the interface for order persistence. Orders are
// append-only financial records: they are inserted once, their status is
// updated at most once, and they are never deleted.
type OrderRepository interface {
	// Create persists a new order together with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByOrderNumber retrieves an order by its human-facing number,
	// including line items.
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)

	// FindByBuyer retrieves all orders belonging to a buyer, newest first.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatusFromPending transitions the order to a terminal status with
	// a single conditional write: the update applies only while the stored
	// status is still pending. If the row was already terminal the write
	// affects nothing and ErrStatusConflict is returned, so concurrent
	// reconciliation attempts cannot both win.
	UpdateStatusFromPending(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus, externalRef string) error
}
