package repository

import (
	"context"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachInsightRepository interface {
	Create(ctx context.Context, insight *domain.AICoachInsight) error
	// FindMostRecent returns the newest cached narrative for a user, or nil.
	FindMostRecent(ctx context.Context, userID uuid.UUID) (*domain.AICoachInsight, error)
	// PruneKeepLatest deletes all but the newest keep rows for a user.
	PruneKeepLatest(ctx context.Context, userID uuid.UUID, keep int) error
}

type coachInsightRepository struct {
	db *gorm.DB
}

func NewCoachInsightRepository(db *gorm.DB) CoachInsightRepository {
	return &coachInsightRepository{db: db}
}

func (r *coachInsightRepository) Create(ctx context.Context, insight *domain.AICoachInsight) error {
	return r.db.WithContext(ctx).Create(insight).Error
}

func (r *coachInsightRepository) FindMostRecent(ctx context.Context, userID uuid.UUID) (*domain.AICoachInsight, error) {
	var insight domain.AICoachInsight
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&insight).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // No cache entry is a normal state
		}
		return nil, err
	}
	return &insight, nil
}

func (r *coachInsightRepository) PruneKeepLatest(ctx context.Context, userID uuid.UUID, keep int) error {
	if keep <= 0 {
		return nil
	}
	// Delete rows older than the newest keep entries
	subquery := r.db.Model(&domain.AICoachInsight{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(keep)

	return r.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", userID, subquery).
		Delete(&domain.AICoachInsight{}).Error
}
