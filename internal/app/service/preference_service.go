package service

import (
	"errors"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidTheme = errors.New("invalid theme")
)

// DefaultTheme is what a session sees before it ever picks a theme.
const DefaultTheme = "dark"

type PreferenceService interface {
	GetTheme(sessionID string) (string, error)
	SetTheme(sessionID, theme string) error
	IsSubscribed(sessionID string) (bool, error)
	SubscribeNewsletter(sessionID string) error
}

type preferenceService struct {
	prefRepo      repository.PreferenceRepository
	notifications NotificationService
}

func NewPreferenceService(prefRepo repository.PreferenceRepository, notifications NotificationService) PreferenceService {
	return &preferenceService{
		prefRepo:      prefRepo,
		notifications: notifications,
	}
}

func (s *preferenceService) GetTheme(sessionID string) (string, error) {
	pref, err := s.prefRepo.Get(sessionID, model.PrefTheme)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultTheme, nil
		}
		return "", err
	}
	return pref.Value, nil
}

func (s *preferenceService) SetTheme(sessionID, theme string) error {
	if theme != "dark" && theme != "light" {
		return ErrInvalidTheme
	}
	return s.prefRepo.Set(sessionID, model.PrefTheme, theme)
}

func (s *preferenceService) IsSubscribed(sessionID string) (bool, error) {
	pref, err := s.prefRepo.Get(sessionID, model.PrefNewsletter)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return pref.Value == "true", nil
}

// SubscribeNewsletter marks the session as subscribed. Subscribing twice is
// harmless; the confirmation toast is only shown the first time.
func (s *preferenceService) SubscribeNewsletter(sessionID string) error {
	subscribed, err := s.IsSubscribed(sessionID)
	if err != nil {
		return err
	}
	if subscribed {
		return nil
	}

	if err := s.prefRepo.Set(sessionID, model.PrefNewsletter, "true"); err != nil {
		logger.Error("Failed to store newsletter subscription", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}

	s.notifications.Push(sessionID, model.NotificationSuccess,
		"Thanks for subscribing to our newsletter!")
	return nil
}
