package repository

import (
	"context"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SleepRecordRepository interface {
	Create(ctx context.Context, record *domain.SleepRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error)
	Update(ctx context.Context, record *domain.SleepRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error)
	// GetByDateKey returns the record for a calendar date, or nil if none exists.
	GetByDateKey(ctx context.Context, userID uuid.UUID, dateKey string) (*domain.SleepRecord, error)
	// ListByDateRange returns records with date keys in [fromDate, toDate], ordered by date ascending.
	ListByDateRange(ctx context.Context, userID uuid.UUID, fromDate, toDate string) ([]domain.SleepRecord, error)
	// Latest returns the most recent record by date key, or nil if the user has none.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.SleepRecord, error)
	// DeleteByDateKeys removes all records on the given dates (used by bulk import).
	DeleteByDateKeys(ctx context.Context, userID uuid.UUID, dateKeys []string) error
}

type sleepRecordRepository struct {
	db *gorm.DB
}

func NewSleepRecordRepository(db *gorm.DB) SleepRecordRepository {
	return &sleepRecordRepository{db: db}
}

func (r *sleepRecordRepository) Create(ctx context.Context, record *domain.SleepRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *sleepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error) {
	var record domain.SleepRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *sleepRecordRepository) Update(ctx context.Context, record *domain.SleepRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *sleepRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.SleepRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("bed_time DESC")

	// Apply date filters on the derived date key
	if filter.FromDate != "" {
		query = query.Where("date_key >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		query = query.Where("date_key <= ?", filter.ToDate)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: get records with bed_time < cursor.BedTime
			// or same bed_time but id < cursor.ID
			query = query.Where(
				"(bed_time < ?) OR (bed_time = ? AND id < ?)",
				cursor.BedTime, cursor.BedTime, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var records []domain.SleepRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *sleepRecordRepository) GetByDateKey(ctx context.Context, userID uuid.UUID, dateKey string) (*domain.SleepRecord, error) {
	var record domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Absence is not an error for uniqueness checks
		}
		return nil, err
	}
	return &record, nil
}

func (r *sleepRecordRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, fromDate, toDate string) ([]domain.SleepRecord, error) {
	var records []domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key >= ? AND date_key <= ?", userID, fromDate, toDate).
		Order("date_key ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sleepRecordRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.SleepRecord, error) {
	var record domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_key DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *sleepRecordRepository) DeleteByDateKeys(ctx context.Context, userID uuid.UUID, dateKeys []string) error {
	if len(dateKeys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date_key IN ?", userID, dateKeys).
		Delete(&domain.SleepRecord{}).Error
}
