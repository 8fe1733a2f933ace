// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"coursecart/internal/domain/entity"
	"coursecart/internal/errors"
)

// ErrAuthNotFound is returned when no credential exists for a provider identity.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines the interface for credential persistence.
type AuthRepository interface {
	// FindAuthentication retrieves a credential by provider and provider-side
	// user id (the email address for the email provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error
}
