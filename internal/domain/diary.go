package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is a per-day journal entry, upserted by (user, date).
type DiaryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_diary_user_date" json:"user_id"`
	Date        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_diary_user_date" json:"date"`
	MorningMood string    `gorm:"type:varchar(16)" json:"morning_mood,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	Tags        []string  `gorm:"type:jsonb;serializer:json" json:"tags,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DiaryEntry) TableName() string {
	return "diary_entries"
}

// UpsertDiaryRequest is the request body for saving a diary entry.
// @Description Saves or replaces the journal entry for a calendar date.
type UpsertDiaryRequest struct {
	// Calendar date the entry belongs to
	Date string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-01-15"`
	// Optional morning mood token or emoji
	MorningMood string `json:"morning_mood,omitempty" validate:"omitempty,max=16" example:"😊"`
	// Optional free-text notes
	Notes string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	// Optional tags
	Tags []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=32"`
}

// DiaryListResponse is the response body for listing diary entries.
type DiaryListResponse struct {
	Entries []DiaryEntry `json:"entries"`
}
