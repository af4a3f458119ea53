package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// WeeklyWindowDays is the trailing window for weekly insights, inclusive of today.
	WeeklyWindowDays = 7

	// DefaultScoreSeriesDays is the default window for the score trend.
	DefaultScoreSeriesDays = 7

	// MonthWindowDays is the window used for month-range trends.
	MonthWindowDays = 30
)

const dateKeyLayout = "2006-01-02"

// InsightsService runs the sleep insight pipeline over a user's records.
type InsightsService interface {
	// ComputeWeekly builds the full weekly insight. A nil insight with a nil
	// error signals an empty window, not a failure.
	ComputeWeekly(ctx context.Context, userID uuid.UUID) (*domain.WeeklyInsight, error)
	// TodayInsight returns a one-line message about last night's sleep.
	TodayInsight(ctx context.Context, userID uuid.UUID) (*domain.TodayInsightResponse, error)
	// Trends returns a per-day duration/quality series over the given number
	// of days, with null entries for days without a record.
	Trends(ctx context.Context, userID uuid.UUID, days int) (*domain.TrendResponse, error)
	// ScoreSeries recomputes the sleep score per day. Single-day windows have
	// no bedtime variability, so consistency_range is fixed at zero.
	ScoreSeries(ctx context.Context, userID uuid.UUID, days int) (*domain.ScoreSeriesResponse, error)
}

type insightsService struct {
	recordRepo repository.SleepRecordRepository
	userRepo   repository.UserRepository
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(recordRepo repository.SleepRecordRepository, userRepo repository.UserRepository) InsightsService {
	return &insightsService{
		recordRepo: recordRepo,
		userRepo:   userRepo,
	}
}

func (s *insightsService) ComputeWeekly(ctx context.Context, userID uuid.UUID) (*domain.WeeklyInsight, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("dimlight-api/insights")
	ctx, span := tracer.Start(ctx, "InsightsService.ComputeWeekly",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.Int("window.days", WeeklyWindowDays),
		),
	)
	defer span.End()

	now := time.Now().UTC()
	toDate := now.Format(dateKeyLayout)
	fromDate := now.AddDate(0, 0, -(WeeklyWindowDays - 1)).Format(dateKeyLayout)

	// Attach input payload for Langfuse
	if inputJSON, err := json.Marshal(map[string]any{
		"user_id": userID.String(),
		"from":    fromDate,
		"to":      toDate,
	}); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	records, err := s.recordRepo.ListByDateRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	// An empty window is an empty state, not an error
	if len(records) == 0 {
		return nil, nil
	}

	summary := CalculateStats(records)
	patterns := DetectPatterns(records, summary)

	latest := records[len(records)-1]
	score := CalculateSleepScore(summary, &latest)

	insight := &domain.WeeklyInsight{
		Summary:         summary,
		Patterns:        patterns.Patterns,
		Recommendations: patterns.Recommendations,
		PrimaryConcern:  deriveConcern(patterns.Patterns),
		Logs:            toResponses(records),
		SleepScore:      score.Score,
		ScoreBreakdown:  score.Breakdown,
	}

	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(insight); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return insight, nil
}

// deriveConcern scans the concatenated pattern text for fixed markers in
// priority order and maps the first hit to a coarse concern tag.
func deriveConcern(patterns []string) *domain.PrimaryConcern {
	text := strings.ToLower(strings.Join(patterns, " "))

	var concern domain.PrimaryConcern
	switch {
	case strings.Contains(text, "stress"):
		concern = domain.ConcernStress
	case strings.Contains(text, "caffeine"):
		concern = domain.ConcernPoorSleep
	case strings.Contains(text, "bedtime"):
		concern = domain.ConcernRoutine
	case strings.Contains(text, "quality"):
		concern = domain.ConcernInsomnia
	default:
		return nil
	}
	return &concern
}

func (s *insightsService) TodayInsight(ctx context.Context, userID uuid.UUID) (*domain.TodayInsightResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	today := time.Now().UTC().Format(dateKeyLayout)
	record, err := s.recordRepo.GetByDateKey(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	var message string
	switch {
	case record == nil:
		message = "No sleep log for today yet."
	case record.SleepQuality <= 2:
		message = "Your sleep seems rough last night. Try a short relaxation routine tonight."
	case record.SleepQuality == 3:
		message = "Sleep was okay, but there's room for improvement. A consistent bedtime could help."
	default:
		message = "Nice! You slept fairly well. Keep maintaining this routine."
	}

	return &domain.TodayInsightResponse{Message: message}, nil
}

func (s *insightsService) Trends(ctx context.Context, userID uuid.UUID, days int) (*domain.TrendResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if days <= 0 {
		days = WeeklyWindowDays
	}

	now := time.Now().UTC()
	fromDate := now.AddDate(0, 0, -(days - 1)).Format(dateKeyLayout)
	records, err := s.recordRepo.ListByDateRange(ctx, userID, fromDate, now.Format(dateKeyLayout))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]domain.SleepRecord, len(records))
	for _, r := range records {
		byDate[r.DateKey] = r
	}

	series := make([]domain.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i)).Format(dateKeyLayout)
		point := domain.TrendPoint{Date: date}
		if r, ok := byDate[date]; ok {
			duration := roundTo(r.DurationHours, 2)
			quality := r.SleepQuality
			point.Duration = &duration
			point.Quality = &quality
		}
		series = append(series, point)
	}

	return &domain.TrendResponse{Series: series}, nil
}

func (s *insightsService) ScoreSeries(ctx context.Context, userID uuid.UUID, days int) (*domain.ScoreSeriesResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if days <= 0 {
		days = DefaultScoreSeriesDays
	}

	now := time.Now().UTC()
	fromDate := now.AddDate(0, 0, -(days - 1)).Format(dateKeyLayout)
	records, err := s.recordRepo.ListByDateRange(ctx, userID, fromDate, now.Format(dateKeyLayout))
	if err != nil {
		return nil, err
	}

	series := make([]domain.ScorePoint, 0, len(records))
	for i := range records {
		record := records[i]

		// A single day has no bedtime variability
		summary := domain.StatsSummary{
			AvgHours:         record.DurationHours,
			AvgQuality:       float64(record.SleepQuality),
			ConsistencyRange: 0,
		}
		score := CalculateSleepScore(summary, &record)

		series = append(series, domain.ScorePoint{
			Date:      record.DateKey,
			Score:     score.Score,
			Breakdown: score.Breakdown,
		})
	}

	return &domain.ScoreSeriesResponse{Series: series}, nil
}

func toResponses(records []domain.SleepRecord) []domain.SleepRecordResponse {
	responses := make([]domain.SleepRecordResponse, len(records))
	for i := range records {
		responses[i] = records[i].ToResponse()
	}
	return responses
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
