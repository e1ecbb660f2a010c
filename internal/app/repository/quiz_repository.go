package repository

import (
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(result *model.QuizResult) error
	FindLatestBySession(sessionID string) (*model.QuizResult, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(result *model.QuizResult) error {
	if err := r.db.Create(result).Error; err != nil {
		logger.Error("Failed to create quiz result in database", err, map[string]interface{}{
			"session_id": result.SessionID,
			"style":      result.Style,
		})
		return err
	}
	return nil
}

func (r *quizRepository) FindLatestBySession(sessionID string) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
