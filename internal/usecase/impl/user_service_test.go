package impl

import (
	"context"
	"log/slog"
	"testing"

	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/infra/auth"
	"coursecart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	service  usecase.UserUsecase
	userRepo *fakeUserRepo
	authRepo *fakeAuthRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	factory := &fakeRepoFactory{
		userRepo:       userRepo,
		authRepo:       authRepo,
		orderRepo:      newFakeOrderRepo(),
		enrollmentRepo: newFakeEnrollmentRepo(),
	}

	cfg := newServiceTestConfig()
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	svc := NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Config:       cfg,
		Logger:       slog.New(slog.DiscardHandler),
	})

	return &userFixture{service: svc, userRepo: userRepo, authRepo: authRepo}
}

func TestUserService_Register(t *testing.T) {
	fx := newUserFixture(t)

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", out.User.Email)

	cred, err := fx.authRepo.FindAuthentication(context.Background(), "email", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, cred.UserID)
	assert.NotEqual(t, "correct horse battery", cred.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := newUserFixture(t)

	input := &usecase.RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "secret-pass"}
	_, err := fx.service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = fx.service.Register(context.Background(), input)
	require.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_LoginAndRefresh(t *testing.T) {
	fx := newUserFixture(t)

	registered, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, registered.User.ID, out.User.ID)

	refreshed, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: out.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)

	_, err = fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "asha@example.com",
		Password: "wrong-pass",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_RejectsAccessToken(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token: it is signed with a
	// different secret.
	_, err = fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: out.AccessToken,
	})
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Refresh_GarbageToken(t *testing.T) {
	fx := newUserFixture(t)

	_, err := fx.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
		RefreshToken: "not-a-jwt",
	})
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}
