package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/auth"
)

func newAuthService() *auth.Service {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.nutriplan.app",
		Audience:   "nutriplan-api",
	})

	return auth.NewService(auth.ServiceConfig{
		JWTService:  jwtSvc,
		UserRepo:    auth.NewInMemoryUserRepository(),
		RefreshRepo: auth.NewInMemoryRefreshTokenRepository(),
	})
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &auth.RegisterRequest{
		Email:    "  Runner@Example.COM ",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	require.NotNil(t, tokens.User)
	assert.Regexp(t, `^usr_`, tokens.User.ID)

	// Email is normalized before storage
	assert.Equal(t, "runner@example.com", tokens.User.Email)

	// Login with different casing still works
	login, err := svc.Login(ctx, &auth.LoginRequest{
		Email:    "runner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, login.User.ID)

	// Access token resolves back to the user
	userID, err := svc.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, userID)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{
		Email:    "runner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{
		Email:    "Runner@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestService_Register_Validation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{Email: "", Password: "long-enough"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Email: "not-an-email", Password: "long-enough"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.Error(t, err)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{
		Email:    "runner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &auth.LoginRequest{
		Email:    "runner@example.com",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_RefreshRotation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &auth.RegisterRequest{
		Email:    "runner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The old refresh token was revoked on rotation
	_, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestService_RevokeAllTokens(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &auth.RegisterRequest{
		Email:    "runner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllTokens(ctx, tokens.User.ID))

	_, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, auth.CheckPassword(hash, "correct-horse"))
	assert.False(t, auth.CheckPassword(hash, "wrong-horse"))
}
