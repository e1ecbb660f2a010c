package repository

import (
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	Get(sessionID, key string) (*model.Preference, error)
	Set(sessionID, key, value string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(sessionID, key string) (*model.Preference, error) {
	var pref model.Preference
	err := r.db.Where("session_id = ? AND key = ?", sessionID, key).First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Set(sessionID, key, value string) error {
	logger.Debug("Writing preference to database", map[string]interface{}{
		"session_id": sessionID,
		"key":        key,
	})

	pref := model.Preference{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		logger.Error("Failed to write preference to database", err, map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
		})
		return err
	}
	return nil
}
