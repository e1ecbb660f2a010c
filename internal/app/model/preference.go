package model

import (
	"time"

	"gorm.io/gorm"
)

// Preference keys used by the storefront.
const (
	PrefTheme      = "theme"
	PrefNewsletter = "newsletter_subscribed"
)

// Preference is one durable key/value pair scoped to a browsing session.
// Reading a missing key is not an error; it yields the caller's default.
type Preference struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	SessionID string         `gorm:"not null;index:idx_pref_session_key,unique" json:"-"`
	Key       string         `gorm:"not null;index:idx_pref_session_key,unique" json:"key"`
	Value     string         `gorm:"not null" json:"value"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Preference) TableName() string {
	return "preferences"
}
