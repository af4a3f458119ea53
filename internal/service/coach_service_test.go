package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
)

func testNarrative() *domain.CoachNarrative {
	return &domain.CoachNarrative{
		Analysis:      "Your week shows a stable rhythm with slightly short nights.",
		Tips:          []string{"Move bedtime 30 minutes earlier.", "Dim the lights after 10 PM."},
		Encouragement: "You're building a solid routine, keep going!",
	}
}

type coachFixture struct {
	svc        CoachService
	recordRepo *MockSleepRecordRepository
	userRepo   *MockUserRepository
	coachRepo  *MockCoachInsightRepository
	llm        *MockCoachLLM
	userID     uuid.UUID
}

func newCoachFixture(t *testing.T) *coachFixture {
	t.Helper()
	recordRepo := NewMockSleepRecordRepository()
	userRepo := NewMockUserRepository()
	coachRepo := NewMockCoachInsightRepository()
	llm := &MockCoachLLM{narrative: testNarrative()}
	userID := seedUser(t, userRepo)

	insights := NewInsightsService(recordRepo, userRepo)
	svc := NewCoachService(insights, coachRepo, userRepo, llm)

	return &coachFixture{
		svc:        svc,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		coachRepo:  coachRepo,
		llm:        llm,
		userID:     userID,
	}
}

func (f *coachFixture) seedWeek(t *testing.T) {
	t.Helper()
	seedRecord(t, f.recordRepo, f.userID, makeRecord(dateKeyAgo(2), 23, 0, 7, 4))
	seedRecord(t, f.recordRepo, f.userID, makeRecord(dateKeyAgo(1), 23, 0, 7, 4))
}

func (f *coachFixture) seedCache(age time.Duration, data domain.CoachNarrative) {
	f.coachRepo.rows = append(f.coachRepo.rows, &domain.AICoachInsight{
		ID:        uuid.New(),
		UserID:    f.userID,
		Data:      data,
		CreatedAt: time.Now().Add(-age),
	})
}

func TestWeeklyCoach_UserNotFound(t *testing.T) {
	f := newCoachFixture(t)

	_, err := f.svc.WeeklyCoach(context.Background(), uuid.New(), false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyCoach_EmptyWindow(t *testing.T) {
	f := newCoachFixture(t)

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative != nil {
		t.Errorf("expected nil narrative with no records, got %+v", narrative)
	}
	if f.llm.calls != 0 {
		t.Errorf("expected no generation attempts, got %d", f.llm.calls)
	}
}

func TestWeeklyCoach_GeneratesAndCaches(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(narrative, testNarrative()) {
		t.Errorf("unexpected narrative: %+v", narrative)
	}
	if f.llm.calls != 1 {
		t.Errorf("expected 1 generation call, got %d", f.llm.calls)
	}
	if len(f.coachRepo.rows) != 1 {
		t.Fatalf("expected 1 cached row, got %d", len(f.coachRepo.rows))
	}
	if !reflect.DeepEqual(f.coachRepo.rows[0].Data, *testNarrative()) {
		t.Errorf("cached row does not match narrative: %+v", f.coachRepo.rows[0].Data)
	}
}

func TestWeeklyCoach_FreshCacheHit(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)

	cached := domain.CoachNarrative{
		Analysis:      "Cached analysis from earlier today.",
		Tips:          []string{"Cached tip."},
		Encouragement: "Cached cheer.",
	}
	f.seedCache(1*time.Hour, cached)

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(*narrative, cached) {
		t.Errorf("expected the cached narrative, got %+v", narrative)
	}
	if f.llm.calls != 0 {
		t.Errorf("expected no generation on a fresh cache hit, got %d calls", f.llm.calls)
	}
}

func TestWeeklyCoach_StaleCacheRegenerates(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)
	f.seedCache(25*time.Hour, domain.CoachNarrative{Analysis: "stale"})

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative.Analysis == "stale" {
		t.Error("expected a regenerated narrative, got the stale one")
	}
	if f.llm.calls != 1 {
		t.Errorf("expected 1 generation call, got %d", f.llm.calls)
	}
}

func TestWeeklyCoach_ForceBypassesCache(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)
	f.seedCache(1*time.Hour, domain.CoachNarrative{Analysis: "cached"})

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative.Analysis == "cached" {
		t.Error("expected force to bypass the fresh cache")
	}
	if f.llm.calls != 1 {
		t.Errorf("expected 1 generation call, got %d", f.llm.calls)
	}
}

func TestWeeklyCoach_FallbackOnGenerationFailure(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)
	f.llm.err = errors.New("backend unavailable")

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("expected success with fallback content, got error: %v", err)
	}
	if !reflect.DeepEqual(narrative, fallbackNarrative()) {
		t.Errorf("expected the fallback narrative, got %+v", narrative)
	}
	if len(f.coachRepo.rows) != 0 {
		t.Errorf("fallback must not be cached, found %d rows", len(f.coachRepo.rows))
	}
}

func TestWeeklyCoach_BrokenCacheReadDegradesToMiss(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)
	f.coachRepo.findErr = errors.New("connection reset")

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(narrative, testNarrative()) {
		t.Errorf("expected a generated narrative despite cache read failure, got %+v", narrative)
	}
}

func TestWeeklyCoach_CacheWriteFailureDoesNotBlock(t *testing.T) {
	f := newCoachFixture(t)
	f.seedWeek(t)
	f.coachRepo.createErr = errors.New("disk full")

	narrative, err := f.svc.WeeklyCoach(context.Background(), f.userID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(narrative, testNarrative()) {
		t.Errorf("expected the generated narrative, got %+v", narrative)
	}
}
