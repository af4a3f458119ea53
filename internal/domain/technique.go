package domain

import (
	"time"

	"github.com/google/uuid"
)

// TechniqueType categorizes relaxation techniques.
// @Description Technique category.
type TechniqueType string

const (
	TechniqueBreathing   TechniqueType = "breathing"
	TechniqueMeditation  TechniqueType = "meditation"
	TechniqueStretching  TechniqueType = "stretching"
	TechniqueMindfulness TechniqueType = "mindfulness"
)

// Technique is a guided relaxation exercise from the built-in catalog.
// RecommendedFor holds the concern tags a technique addresses, matching the
// primary concern derived from weekly insights.
type Technique struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title           string        `gorm:"type:varchar(128);not null" json:"title"`
	Type            TechniqueType `gorm:"type:varchar(16);not null;index" json:"type"`
	DurationMinutes int           `gorm:"not null" json:"duration_minutes"`
	Steps           []string      `gorm:"type:jsonb;serializer:json;not null" json:"steps"`
	Benefits        []string      `gorm:"type:jsonb;serializer:json" json:"benefits,omitempty"`
	RecommendedFor  []string      `gorm:"type:jsonb;serializer:json" json:"recommended_for,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (Technique) TableName() string {
	return "techniques"
}

// TechniqueListResponse is the response body for technique listings.
type TechniqueListResponse struct {
	Techniques []Technique `json:"techniques"`
}
