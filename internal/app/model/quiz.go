package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// QuizResult records the outcome of a style quiz run: the winning style and
// the style tags the visitor picked, in answer order.
type QuizResult struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SessionID string         `gorm:"not null;index" json:"-"`
	Style     string         `gorm:"not null" json:"style"`
	Answers   pq.StringArray `gorm:"type:text[];not null" json:"answers"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
