package usecase

import (
	"context"

	"coursecart/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the mutable buyer profile fields.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	Name      string
	Phone     string
	AvatarRef string
	Bio       string
}

// ProfileUsecase defines the buyer profile operations.
type ProfileUsecase interface {
	// GetProfile retrieves the buyer profile for a user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.BuyerProfile, error)

	// UpdateProfile creates or refreshes the buyer profile.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.BuyerProfile, error)
}
