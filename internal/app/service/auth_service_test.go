package service

import (
	"context"
	"testing"
	"time"

	"github.com/interno-studio/interno-backend/config"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/interno-studio/interno-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, NotificationService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	notifications := NewNotificationService(0, nil)
	t.Cleanup(notifications.Shutdown)

	jwtCfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
	}

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, notifications, nil, jwtCfg), notifications
}

func TestAuthService_Register(t *testing.T) {
	authService, notifications := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("sess-1", "ada@example.com", "password123", "Ada")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Welcome toast
	active := notifications.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, "Welcome, Ada!", active[0].Message)

	// Tokens carry the user identity
	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("sess-1", "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	_, _, err = authService.Register("sess-2", "ada@example.com", "different", "Other Ada")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService, notifications := setupAuthServiceTest(t)

	_, _, err := authService.Register("sess-1", "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	user, tokens, err := authService.Login("sess-2", "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.NotEmpty(t, tokens.AccessToken)

	active := notifications.Active("sess-2")
	require.Len(t, active, 1)
	assert.Equal(t, "Welcome back, Ada!", active[0].Message)
}

func TestAuthService_Login_BadPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("sess-1", "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	_, _, err = authService.Login("sess-1", "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("sess-1", "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	authService, notifications := setupAuthServiceTest(t)

	// No Redis wired: logout succeeds without revocation
	require.NoError(t, authService.Logout(context.Background(), "sess-1", "some-token"))

	active := notifications.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, "You've been logged out.", active[0].Message)
	assert.Equal(t, model.NotificationInfo, active[0].Type)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register("sess-1", "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile("sess-1", user.ID, "Ada L.", "https://cdn.example.com/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "https://cdn.example.com/avatar.png", updated.Avatar)

	// Empty fields leave existing values alone
	updated, err = authService.UpdateProfile("sess-1", user.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
