package usecase

import (
	"context"
	"testing"
	"time"

	"bsdoc-server/config"
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/repository"
	"bsdoc-server/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUsecase(t *testing.T) (AuthUsecase, *jwt.JWTService, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	u := NewAuthUsecase(newTestDB(t), newTestLogger(), repository.NewUserRepository(), jwtService, redisClient)
	return u, jwtService, redisClient
}

func TestRegisterAndLogin(t *testing.T) {
	u, jwtService, _ := newAuthUsecase(t)
	ctx := context.Background()

	user, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "anna@example.com",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Cruz",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := u.Register(ctx, &dto.RegisterRequest{
			Email:     "anna@example.com",
			Password:  "password123",
			FirstName: "Anna",
			LastName:  "Cruz",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("login issues role-carrying tokens", func(t *testing.T) {
		tokens, err := u.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, entity.RoleIDUser, claims.RoleID)
		assert.Equal(t, jwt.AccessToken, claims.TokenType)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := u.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := u.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	u, _, _ := newAuthUsecase(t)
	ctx := context.Background()

	_, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "anna@example.com",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Cruz",
	})
	require.NoError(t, err)

	tokens, err := u.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	t.Run("presented token is single use", func(t *testing.T) {
		_, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogoutRevokesTokens(t *testing.T) {
	u, jwtService, redisClient := newAuthUsecase(t)
	ctx := context.Background()

	_, err := u.Register(ctx, &dto.RegisterRequest{
		Email:     "anna@example.com",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Cruz",
	})
	require.NoError(t, err)

	tokens, err := u.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, u.Logout(ctx, accessClaims.TokenID, refreshClaims.TokenID))

	keys, err := redisClient.Keys(ctx, "*token:*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)

	t.Run("revoked refresh token unusable", func(t *testing.T) {
		_, err := u.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}
