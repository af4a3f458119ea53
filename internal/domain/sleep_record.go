package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordSource indicates how a sleep record entered the system.
// @Description Origin of the record: manual for user-submitted logs, imported for bulk sync.
type RecordSource string

const (
	// SourceManual is a record logged by the user directly.
	SourceManual RecordSource = "manual"
	// SourceImported is a record created through the bulk import endpoint.
	SourceImported RecordSource = "imported"
)

// NegativeMoods are the mood tokens treated as negative by pattern detection.
var NegativeMoods = []string{"😞", "😐"}

type SleepRecord struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_sleep_records_user_date" json:"user_id"`
	BedTime        time.Time    `gorm:"not null;index:idx_sleep_records_user_bed,sort:desc" json:"bed_time"`
	WakeTime       time.Time    `gorm:"not null" json:"wake_time"`
	DurationHours  float64      `gorm:"not null" json:"duration_hours"`
	SleepQuality   int          `gorm:"type:smallint;not null" json:"sleep_quality"`
	StressLevel    *int         `gorm:"type:smallint" json:"stress_level,omitempty"`
	CaffeineIntake bool         `gorm:"not null;default:false" json:"caffeine_intake"`
	Mood           string       `gorm:"type:varchar(16)" json:"mood,omitempty"`
	Notes          string       `gorm:"type:text" json:"notes,omitempty"`
	Timezone       string       `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	DateKey        string       `gorm:"type:varchar(10);not null;uniqueIndex:idx_sleep_records_user_date" json:"date_key"`
	Source         RecordSource `gorm:"type:varchar(10);not null;default:'manual'" json:"source"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

// Location resolves the record's timezone, falling back to UTC.
func (s *SleepRecord) Location() *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// RecomputeDerived refreshes DurationHours and DateKey from the time fields.
// Must be called whenever BedTime, WakeTime or Timezone change.
func (s *SleepRecord) RecomputeDerived() {
	s.DurationHours = s.WakeTime.Sub(s.BedTime).Hours()
	s.DateKey = s.BedTime.In(s.Location()).Format("2006-01-02")
}

// BedtimeMinutes is the bedtime as minutes after local midnight.
func (s *SleepRecord) BedtimeMinutes() int {
	local := s.BedTime.In(s.Location())
	return local.Hour()*60 + local.Minute()
}

// CreateSleepRecordRequest is the request body for logging a sleep session.
// @Description Request payload for recording a night of sleep.
type CreateSleepRecordRequest struct {
	// Bedtime in RFC3339 format
	BedTime time.Time `json:"bed_time" validate:"required" example:"2024-01-15T23:00:00Z"`
	// Wake time in RFC3339 format (must be after bed_time)
	WakeTime time.Time `json:"wake_time" validate:"required,gtfield=BedTime" example:"2024-01-16T07:00:00Z"`
	// Sleep quality rating from 1 (poor) to 5 (excellent)
	SleepQuality int `json:"sleep_quality" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional stress level from 1 (calm) to 5 (very stressed)
	StressLevel *int `json:"stress_level,omitempty" validate:"omitempty,min=1,max=5" example:"2"`
	// Whether caffeine was consumed that day
	CaffeineIntake *bool `json:"caffeine_intake,omitempty" example:"false"`
	// Optional mood token or emoji
	Mood string `json:"mood,omitempty" validate:"omitempty,max=16" example:"😊"`
	// Optional free-text notes
	Notes string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	// Optional IANA timezone used to derive the calendar date (defaults to user's timezone)
	Timezone *string `json:"timezone,omitempty" validate:"omitempty,timezone" example:"Europe/Prague"`
}

// UpdateSleepRecordRequest is the request body for partially updating a record.
// @Description Partial update; duration and date key are recomputed if times change.
type UpdateSleepRecordRequest struct {
	BedTime        *time.Time `json:"bed_time,omitempty"`
	WakeTime       *time.Time `json:"wake_time,omitempty"`
	SleepQuality   *int       `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=5"`
	StressLevel    *int       `json:"stress_level,omitempty" validate:"omitempty,min=1,max=5"`
	CaffeineIntake *bool      `json:"caffeine_intake,omitempty"`
	Mood           *string    `json:"mood,omitempty" validate:"omitempty,max=16"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Timezone       *string    `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// ImportSleepRecordsRequest is the request body for bulk importing records.
// @Description Bulk import; existing records on the same dates are replaced.
type ImportSleepRecordsRequest struct {
	Records []CreateSleepRecordRequest `json:"records" validate:"required,min=1,max=366,dive"`
}

// ImportSleepRecordsResponse reports the outcome of a bulk import.
type ImportSleepRecordsResponse struct {
	// Number of records created
	Count int `json:"count" example:"7"`
}

// SleepRecordResponse is the response body for sleep record endpoints.
// @Description A recorded sleep session with derived fields.
type SleepRecordResponse struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	BedTime        time.Time    `json:"bed_time"`
	WakeTime       time.Time    `json:"wake_time"`
	DurationHours  float64      `json:"duration_hours"`
	SleepQuality   int          `json:"sleep_quality"`
	StressLevel    *int         `json:"stress_level,omitempty"`
	CaffeineIntake bool         `json:"caffeine_intake"`
	Mood           string       `json:"mood,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	Timezone       string       `json:"timezone"`
	DateKey        string       `json:"date_key"`
	Source         RecordSource `json:"source"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (s *SleepRecord) ToResponse() SleepRecordResponse {
	return SleepRecordResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		BedTime:        s.BedTime,
		WakeTime:       s.WakeTime,
		DurationHours:  s.DurationHours,
		SleepQuality:   s.SleepQuality,
		StressLevel:    s.StressLevel,
		CaffeineIntake: s.CaffeineIntake,
		Mood:           s.Mood,
		Notes:          s.Notes,
		Timezone:       s.Timezone,
		DateKey:        s.DateKey,
		Source:         s.Source,
		CreatedAt:      s.CreatedAt,
	}
}

// SleepRecordListResponse is the response body for listing sleep records.
// @Description Paginated list of sleep records.
type SleepRecordListResponse struct {
	Data []SleepRecordResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// SleepRecordFilter contains filter parameters for listing sleep records
type SleepRecordFilter struct {
	FromDate string // inclusive date key lower bound (YYYY-MM-DD)
	ToDate   string // inclusive date key upper bound
	Limit    int
	Cursor   string
}
