package impl

import (
	"context"
	"log/slog"

	deliverycontext "coursecart/internal/delivery/context"
	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/repository"
	"coursecart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves the buyer profile for a user.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.BuyerProfile, error) {
	profile, err := srv.userRepo.FindBuyerProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no buyer profile yet")
		}

		return nil, errors.Wrap(err, "failed to load buyer profile")
	}

	return profile, nil
}

// UpdateProfile creates or refreshes the buyer profile. The same upsert also
// runs lazily during checkout, so the two paths can never disagree on shape.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.BuyerProfile, error) {
	profile := &entity.BuyerProfile{
		UserID:    input.UserID,
		Name:      input.Name,
		Phone:     input.Phone,
		AvatarRef: input.AvatarRef,
		Bio:       input.Bio,
	}

	if err := srv.userRepo.UpsertBuyerProfile(ctx, profile); err != nil {
		srv.log(ctx).Error("Failed to upsert buyer profile", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update buyer profile")
	}

	return profile, nil
}
