package domain

import (
	"time"

	"github.com/google/uuid"
)

// CoachNarrative is the structured coaching payload produced by the
// generative backend (and stored verbatim in the cache).
// @Description AI-generated coaching narrative.
type CoachNarrative struct {
	// Two-sentence analysis of the week's sleep
	Analysis string `json:"analysis" example:"Your orbit has been a little wobbly this week..."`
	// Three short actionable tips
	Tips []string `json:"tips" example:"[\"Stick to a consistent bedtime.\"]"`
	// One motivating closing sentence
	Encouragement string `json:"encouragement" example:"Keep tracking your sleep to get better insights!"`
}

// AICoachInsight is a persisted cache row for a generated narrative.
// Rows are insert-only; the most recent row per user is the active entry.
type AICoachInsight struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_coach_insights_user_created" json:"user_id"`
	Data      CoachNarrative `gorm:"type:jsonb;serializer:json;not null" json:"data"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_coach_insights_user_created,sort:desc" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AICoachInsight) TableName() string {
	return "ai_coach_insights"
}

// CoachResponse wraps the coach narrative; CoachMessage is null when the user
// has no sleep data, which is an empty state rather than an error.
// @Description Coach narrative envelope; coach_message is null when no data exists.
type CoachResponse struct {
	CoachMessage *CoachNarrative `json:"coach_message"`
}
