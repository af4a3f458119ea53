package service

import (
	"context"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/google/uuid"
)

// TechniqueService serves the relaxation technique catalog.
type TechniqueService interface {
	ListAll(ctx context.Context) ([]domain.Technique, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technique, error)
	ListByType(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error)
	// Recommended returns techniques addressing a concern tag (e.g. the
	// primary concern from weekly insights).
	Recommended(ctx context.Context, concern string) ([]domain.Technique, error)
}

type techniqueService struct {
	repo repository.TechniqueRepository
}

func NewTechniqueService(repo repository.TechniqueRepository) TechniqueService {
	return &techniqueService{repo: repo}
}

func (s *techniqueService) ListAll(ctx context.Context) ([]domain.Technique, error) {
	return s.repo.ListAll(ctx)
}

func (s *techniqueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technique, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *techniqueService) ListByType(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error) {
	switch techniqueType {
	case domain.TechniqueBreathing, domain.TechniqueMeditation, domain.TechniqueStretching, domain.TechniqueMindfulness:
	default:
		return nil, domain.ErrInvalidInput
	}
	return s.repo.ListByType(ctx, techniqueType)
}

func (s *techniqueService) Recommended(ctx context.Context, concern string) ([]domain.Technique, error) {
	if concern == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.ListByConcern(ctx, concern)
}
