package service

import (
	"context"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/dimlight/dimlight-api/pkg/pagination"
	"github.com/google/uuid"
)

type SleepRecordService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error)
	Update(ctx context.Context, userID, recordID uuid.UUID, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
	// Import bulk-creates records from a sync payload, replacing any existing
	// records on the same dates. Imported records are tagged source=imported.
	Import(ctx context.Context, userID uuid.UUID, req *domain.ImportSleepRecordsRequest) (int, error)
}

type sleepRecordService struct {
	repo     repository.SleepRecordRepository
	userRepo repository.UserRepository
}

func NewSleepRecordService(repo repository.SleepRecordRepository, userRepo repository.UserRepository) SleepRecordService {
	return &sleepRecordService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *sleepRecordService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	// Load user to confirm existence and get their home timezone
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.buildRecord(userID, user.Timezone, req, domain.SourceManual)
	if err != nil {
		return nil, err
	}

	// At most one record per user and calendar date
	existing, err := s.repo.GetByDateKey(ctx, userID, record.DateKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateDate
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// buildRecord assembles a record from a create request and derives its
// duration and date key.
func (s *sleepRecordService) buildRecord(userID uuid.UUID, userTimezone string, req *domain.CreateSleepRecordRequest, source domain.RecordSource) (*domain.SleepRecord, error) {
	tz := userTimezone
	if req.Timezone != nil && *req.Timezone != "" {
		tz = *req.Timezone
	}
	if tz == "" {
		tz = "UTC"
	}

	caffeine := false
	if req.CaffeineIntake != nil {
		caffeine = *req.CaffeineIntake
	}

	record := &domain.SleepRecord{
		UserID:         userID,
		BedTime:        req.BedTime.UTC(),
		WakeTime:       req.WakeTime.UTC(),
		SleepQuality:   req.SleepQuality,
		StressLevel:    req.StressLevel,
		CaffeineIntake: caffeine,
		Mood:           req.Mood,
		Notes:          req.Notes,
		Timezone:       tz,
		Source:         source,
	}
	record.RecomputeDerived()

	if record.DurationHours <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return record, nil
}

func (s *sleepRecordService) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (s *sleepRecordService) Update(ctx context.Context, userID, recordID uuid.UUID, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	record, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	timesChanged := false
	if req.BedTime != nil {
		record.BedTime = req.BedTime.UTC()
		timesChanged = true
	}
	if req.WakeTime != nil {
		record.WakeTime = req.WakeTime.UTC()
		timesChanged = true
	}
	if req.Timezone != nil && *req.Timezone != "" {
		record.Timezone = *req.Timezone
		timesChanged = true
	}
	if req.SleepQuality != nil {
		record.SleepQuality = *req.SleepQuality
	}
	if req.StressLevel != nil {
		record.StressLevel = req.StressLevel
	}
	if req.CaffeineIntake != nil {
		record.CaffeineIntake = *req.CaffeineIntake
	}
	if req.Mood != nil {
		record.Mood = *req.Mood
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if timesChanged {
		if !record.WakeTime.After(record.BedTime) {
			return nil, domain.ErrInvalidInput
		}

		previousDateKey := record.DateKey
		record.RecomputeDerived()

		// Moving the record to a new date must not collide with another record
		if record.DateKey != previousDateKey {
			existing, err := s.repo.GetByDateKey(ctx, userID, record.DateKey)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != record.ID {
				return nil, domain.ErrDuplicateDate
			}
		}
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *sleepRecordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	record, err := s.GetByID(ctx, userID, recordID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, record.ID)
}

func (s *sleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(records) > limit

	// Trim to actual limit
	if hasMore {
		records = records[:limit]
	}

	response := &domain.SleepRecordListResponse{
		Data: make([]domain.SleepRecordResponse, len(records)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i, record := range records {
		response.Data[i] = record.ToResponse()
	}

	// Set next cursor if there are more results
	if hasMore && len(records) > 0 {
		last := records[len(records)-1]
		cursor := &pagination.Cursor{
			ID:      last.ID,
			BedTime: last.BedTime,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

func (s *sleepRecordService) Import(ctx context.Context, userID uuid.UUID, req *domain.ImportSleepRecordsRequest) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	records := make([]*domain.SleepRecord, 0, len(req.Records))
	dateKeys := make([]string, 0, len(req.Records))
	for i := range req.Records {
		record, err := s.buildRecord(userID, user.Timezone, &req.Records[i], domain.SourceImported)
		if err != nil {
			return 0, err
		}
		records = append(records, record)
		dateKeys = append(dateKeys, record.DateKey)
	}

	// Replace any existing records on the imported dates
	if err := s.repo.DeleteByDateKeys(ctx, userID, dateKeys); err != nil {
		return 0, err
	}

	created := 0
	for _, record := range records {
		if err := s.repo.Create(ctx, record); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// WindowBounds converts a named range into an inclusive from-date filter.
// Supported ranges: week (7 days), month (30 days), all (no bound).
func WindowBounds(rangeName string, now time.Time) (fromDate, toDate string) {
	today := now.UTC().Format(dateKeyLayout)
	switch rangeName {
	case "month":
		return now.UTC().AddDate(0, 0, -MonthWindowDays).Format(dateKeyLayout), today
	case "all":
		return "", ""
	default: // week
		return now.UTC().AddDate(0, 0, -(WeeklyWindowDays - 1)).Format(dateKeyLayout), today
	}
}
