package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/interno-studio/interno-backend/config"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/interno-studio/interno-backend/pkg/redis"
	"github.com/interno-studio/interno-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(sessionID, email, password, name string) (*model.User, *util.TokenPair, error)
	Login(sessionID, email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, sessionID, token string) error
	GetUserByID(userID uint) (*model.User, error)
	UpdateProfile(sessionID string, userID uint, name, avatar string) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	notifications NotificationService
	redisClient   *redis.Client
	jwtCfg        config.JWTConfig
}

// NewAuthService builds the account service. redisClient may be nil, in
// which case logout skips token revocation.
func NewAuthService(
	userRepo repository.UserRepository,
	notifications NotificationService,
	redisClient *redis.Client,
	jwtCfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		notifications: notifications,
		redisClient:   redisClient,
		jwtCfg:        jwtCfg,
	}
}

func (s *authService) Register(sessionID, email, password, name string) (*model.User, *util.TokenPair, error) {
	logger.Info("Registering new user", map[string]interface{}{
		"email": email,
	})

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		logger.Warn("Registration rejected: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.notifications.Push(sessionID, model.NotificationSuccess,
		fmt.Sprintf("Welcome, %s!", user.Name))
	return user, tokens, nil
}

func (s *authService) Login(sessionID, email, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login rejected: bad password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	s.notifications.Push(sessionID, model.NotificationSuccess,
		fmt.Sprintf("Welcome back, %s!", user.Name))
	return user, tokens, nil
}

// Logout revokes the access token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, sessionID, token string) error {
	if s.redisClient != nil {
		if err := s.redisClient.BlacklistToken(ctx, token, s.jwtCfg.AccessTokenExpiry); err != nil {
			return err
		}
	} else {
		logger.Debug("Logout without Redis: token not revoked", nil)
	}

	s.notifications.Push(sessionID, model.NotificationInfo, "You've been logged out.")
	return nil
}

func (s *authService) GetUserByID(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(sessionID string, userID uint, name, avatar string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	s.notifications.Push(sessionID, model.NotificationSuccess, "Profile updated!")
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtCfg.Secret,
		s.jwtCfg.AccessTokenExpiry,
		s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}
	return tokens, nil
}
