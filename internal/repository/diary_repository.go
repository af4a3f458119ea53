package repository

import (
	"context"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiaryRepository interface {
	// Upsert creates or replaces the entry for (user, date).
	Upsert(ctx context.Context, entry *domain.DiaryEntry) error
	// GetByDate returns the entry for a calendar date, or nil if none exists.
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error)
	// ListSince returns entries with date >= fromDate, ordered ascending.
	ListSince(ctx context.Context, userID uuid.UUID, fromDate string) ([]domain.DiaryEntry, error)
	// ListAll returns up to limit entries, newest first.
	ListAll(ctx context.Context, userID uuid.UUID, limit int) ([]domain.DiaryEntry, error)
}

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Upsert(ctx context.Context, entry *domain.DiaryEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"morning_mood", "notes", "tags", "updated_at"}),
		}).
		Create(entry).Error
}

func (r *diaryRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Missing diary entries are a normal state
		}
		return nil, err
	}
	return &entry, nil
}

func (r *diaryRepository) ListSince(ctx context.Context, userID uuid.UUID, fromDate string) ([]domain.DiaryEntry, error) {
	var entries []domain.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepository) ListAll(ctx context.Context, userID uuid.UUID, limit int) ([]domain.DiaryEntry, error) {
	var entries []domain.DiaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
