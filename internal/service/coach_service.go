package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/llm"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CacheFreshness is how long a generated narrative stays valid.
	CacheFreshness = 24 * time.Hour

	// generationTimeout bounds a single generative-backend call.
	generationTimeout = 30 * time.Second

	// cacheRetention caps how many cache rows are kept per user.
	cacheRetention = 30
)

// fallbackNarrative is returned whenever generation fails, so callers always
// receive usable coaching content with HTTP-level success.
func fallbackNarrative() *domain.CoachNarrative {
	return &domain.CoachNarrative{
		Analysis: "We couldn't generate a new analysis right now, but consistency is key.",
		Tips: []string{
			"Stick to a consistent bedtime.",
			"Avoid screens 1 hour before bed.",
			"Keep your room cool and dark.",
		},
		Encouragement: "Keep tracking your sleep to get better insights!",
	}
}

// CoachService serves AI coach narratives through a 24h persisted cache.
type CoachService interface {
	// WeeklyCoach returns the cached narrative when fresh (unless force is
	// set), otherwise generates a new one. A nil narrative with a nil error
	// signals an empty record window, not a failure.
	WeeklyCoach(ctx context.Context, userID uuid.UUID, force bool) (*domain.CoachNarrative, error)
}

type coachService struct {
	insights  InsightsService
	coachRepo repository.CoachInsightRepository
	userRepo  repository.UserRepository
	llmClient llm.CoachLLM
}

// NewCoachService creates a new CoachService.
func NewCoachService(
	insights InsightsService,
	coachRepo repository.CoachInsightRepository,
	userRepo repository.UserRepository,
	llmClient llm.CoachLLM,
) CoachService {
	return &coachService{
		insights:  insights,
		coachRepo: coachRepo,
		userRepo:  userRepo,
		llmClient: llmClient,
	}
}

func (s *coachService) WeeklyCoach(ctx context.Context, userID uuid.UUID, force bool) (*domain.CoachNarrative, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("dimlight-api/coach")
	ctx, span := tracer.Start(ctx, "CoachService.WeeklyCoach",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.Bool("coach.force", force),
		),
	)
	defer span.End()

	if !force {
		last, err := s.coachRepo.FindMostRecent(ctx, userID)
		if err != nil {
			// A broken cache read degrades to a miss
			log.Printf("coach cache lookup failed for user %s: %v", userID, err)
		} else if last != nil && time.Since(last.CreatedAt) < CacheFreshness {
			span.SetAttributes(attribute.Bool("coach.cache_hit", true))
			data := last.Data
			return &data, nil
		}
	}

	insight, err := s.insights.ComputeWeekly(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		log.Printf("coach insight computation failed for user %s: %v", userID, err)
		return fallbackNarrative(), nil
	}
	if insight == nil {
		// No records in the window: empty state, distinct from a failure
		return nil, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	narrative, err := s.llmClient.GenerateCoachNarrative(genCtx, insight)
	if err != nil {
		log.Printf("coach narrative generation failed for user %s: %v", userID, err)
		span.SetAttributes(attribute.Bool("coach.fallback", true))
		return fallbackNarrative(), nil
	}

	// Persist best-effort: a failed write never blocks the response
	row := &domain.AICoachInsight{UserID: userID, Data: *narrative}
	if err := s.coachRepo.Create(ctx, row); err != nil {
		log.Printf("coach cache write failed for user %s: %v", userID, err)
	} else if err := s.coachRepo.PruneKeepLatest(ctx, userID, cacheRetention); err != nil {
		log.Printf("coach cache prune failed for user %s: %v", userID, err)
	}

	return narrative, nil
}
