package service

import (
	"context"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/google/uuid"
)

// maxDiaryHistory caps the full-history listing.
const maxDiaryHistory = 100

// DiaryService manages per-day journal entries.
type DiaryService interface {
	// Upsert creates or replaces the entry for the given date.
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertDiaryRequest) (*domain.DiaryEntry, error)
	// GetByDate returns the entry for a date (today when empty), or nil.
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error)
	// Week returns the trailing 7 days of entries, oldest first.
	Week(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error)
	// All returns the most recent entries, newest first.
	All(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error)
}

type diaryService struct {
	repo     repository.DiaryRepository
	userRepo repository.UserRepository
}

func NewDiaryService(repo repository.DiaryRepository, userRepo repository.UserRepository) DiaryService {
	return &diaryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *diaryService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertDiaryRequest) (*domain.DiaryEntry, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entry := &domain.DiaryEntry{
		UserID:      userID,
		Date:        req.Date,
		MorningMood: req.MorningMood,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row (id, timestamps) after a
	// conflict update
	stored, err := s.repo.GetByDate(ctx, userID, req.Date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return entry, nil
	}
	return stored, nil
}

func (s *diaryService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if date == "" {
		date = time.Now().UTC().Format(dateKeyLayout)
	}

	return s.repo.GetByDate(ctx, userID, date)
}

func (s *diaryService) Week(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	fromDate := time.Now().UTC().AddDate(0, 0, -(WeeklyWindowDays - 1)).Format(dateKeyLayout)
	return s.repo.ListSince(ctx, userID, fromDate)
}

func (s *diaryService) All(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	return s.repo.ListAll(ctx, userID, maxDiaryHistory)
}
