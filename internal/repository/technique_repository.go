package repository

import (
	"context"
	"encoding/json"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TechniqueRepository interface {
	Create(ctx context.Context, technique *domain.Technique) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technique, error)
	ListAll(ctx context.Context) ([]domain.Technique, error)
	ListByType(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error)
	// ListByConcern returns techniques whose recommended_for contains the concern tag.
	ListByConcern(ctx context.Context, concern string) ([]domain.Technique, error)
	Count(ctx context.Context) (int64, error)
}

type techniqueRepository struct {
	db *gorm.DB
}

func NewTechniqueRepository(db *gorm.DB) TechniqueRepository {
	return &techniqueRepository{db: db}
}

func (r *techniqueRepository) Create(ctx context.Context, technique *domain.Technique) error {
	return r.db.WithContext(ctx).Create(technique).Error
}

func (r *techniqueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technique, error) {
	var technique domain.Technique
	err := r.db.WithContext(ctx).First(&technique, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &technique, nil
}

func (r *techniqueRepository) ListAll(ctx context.Context) ([]domain.Technique, error) {
	var techniques []domain.Technique
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&techniques).Error; err != nil {
		return nil, err
	}
	return techniques, nil
}

func (r *techniqueRepository) ListByType(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error) {
	var techniques []domain.Technique
	err := r.db.WithContext(ctx).
		Where("type = ?", techniqueType).
		Order("title ASC").
		Find(&techniques).Error
	if err != nil {
		return nil, err
	}
	return techniques, nil
}

func (r *techniqueRepository) ListByConcern(ctx context.Context, concern string) ([]domain.Technique, error) {
	// JSONB containment: recommended_for must include the concern tag
	needle, err := json.Marshal([]string{concern})
	if err != nil {
		return nil, err
	}

	var techniques []domain.Technique
	err = r.db.WithContext(ctx).
		Where("recommended_for @> ?", string(needle)).
		Order("title ASC").
		Find(&techniques).Error
	if err != nil {
		return nil, err
	}
	return techniques, nil
}

func (r *techniqueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Technique{}).Count(&count).Error
	return count, err
}
