// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrProfileNotFound is returned when a buyer has no profile yet.
var ErrProfileNotFound = errors.New("buyer profile not found")

// UserRepository defines the standard operations for user and buyer-profile
// persistence. The application layer depends on this interface, not the
// concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, including the
	// buyer profile when one exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpsertBuyerProfile creates the buyer profile if absent or refreshes its
	// mutable fields. Order creation depends on this succeeding first.
	UpsertBuyerProfile(ctx context.Context, profile *entity.BuyerProfile) error

	// FindBuyerProfile retrieves the buyer profile for a user.
	FindBuyerProfile(ctx context.Context, userID uuid.UUID) (*entity.BuyerProfile, error)
}
