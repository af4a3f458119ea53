package handler

import (
	"context"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/langfuse"
	"github.com/google/uuid"
)

// MockSleepRecordService is a mock implementation of SleepRecordService
type MockSleepRecordService struct {
	createFunc  func(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error)
	getByIDFunc func(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error)
	updateFunc  func(ctx context.Context, userID, recordID uuid.UUID, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error)
	deleteFunc  func(ctx context.Context, userID, recordID uuid.UUID) error
	listFunc    func(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
	importFunc  func(ctx context.Context, userID uuid.UUID, req *domain.ImportSleepRecordsRequest) (int, error)
}

func sampleRecord(userID uuid.UUID) *domain.SleepRecord {
	return &domain.SleepRecord{
		ID:           uuid.New(),
		UserID:       userID,
		BedTime:      time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
		WakeTime:     time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC),
		DurationHours: 8,
		SleepQuality: 4,
		Timezone:     "UTC",
		DateKey:      "2024-01-15",
		Source:       domain.SourceManual,
		CreatedAt:    time.Now(),
	}
}

func (m *MockSleepRecordService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return sampleRecord(userID), nil
}

func (m *MockSleepRecordService) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, userID, recordID)
	}
	return sampleRecord(userID), nil
}

func (m *MockSleepRecordService) Update(ctx context.Context, userID, recordID uuid.UUID, req *domain.UpdateSleepRecordRequest) (*domain.SleepRecord, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, recordID, req)
	}
	return sampleRecord(userID), nil
}

func (m *MockSleepRecordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, recordID)
	}
	return nil
}

func (m *MockSleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepRecordListResponse{
		Data:       []domain.SleepRecordResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockSleepRecordService) Import(ctx context.Context, userID uuid.UUID, req *domain.ImportSleepRecordsRequest) (int, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, userID, req)
	}
	return len(req.Records), nil
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	computeWeeklyFunc func(ctx context.Context, userID uuid.UUID) (*domain.WeeklyInsight, error)
	todayFunc         func(ctx context.Context, userID uuid.UUID) (*domain.TodayInsightResponse, error)
	trendsFunc        func(ctx context.Context, userID uuid.UUID, days int) (*domain.TrendResponse, error)
	scoreSeriesFunc   func(ctx context.Context, userID uuid.UUID, days int) (*domain.ScoreSeriesResponse, error)
}

func (m *MockInsightsService) ComputeWeekly(ctx context.Context, userID uuid.UUID) (*domain.WeeklyInsight, error) {
	if m.computeWeeklyFunc != nil {
		return m.computeWeeklyFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInsightsService) TodayInsight(ctx context.Context, userID uuid.UUID) (*domain.TodayInsightResponse, error) {
	if m.todayFunc != nil {
		return m.todayFunc(ctx, userID)
	}
	return &domain.TodayInsightResponse{Message: "No sleep log for today yet."}, nil
}

func (m *MockInsightsService) Trends(ctx context.Context, userID uuid.UUID, days int) (*domain.TrendResponse, error) {
	if m.trendsFunc != nil {
		return m.trendsFunc(ctx, userID, days)
	}
	return &domain.TrendResponse{Series: []domain.TrendPoint{}}, nil
}

func (m *MockInsightsService) ScoreSeries(ctx context.Context, userID uuid.UUID, days int) (*domain.ScoreSeriesResponse, error) {
	if m.scoreSeriesFunc != nil {
		return m.scoreSeriesFunc(ctx, userID, days)
	}
	return &domain.ScoreSeriesResponse{Series: []domain.ScorePoint{}}, nil
}

// MockCoachService is a mock implementation of CoachService
type MockCoachService struct {
	weeklyCoachFunc func(ctx context.Context, userID uuid.UUID, force bool) (*domain.CoachNarrative, error)
}

func (m *MockCoachService) WeeklyCoach(ctx context.Context, userID uuid.UUID, force bool) (*domain.CoachNarrative, error) {
	if m.weeklyCoachFunc != nil {
		return m.weeklyCoachFunc(ctx, userID, force)
	}
	return nil, nil
}

// MockDiaryService is a mock implementation of DiaryService
type MockDiaryService struct {
	upsertFunc    func(ctx context.Context, userID uuid.UUID, req *domain.UpsertDiaryRequest) (*domain.DiaryEntry, error)
	getByDateFunc func(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error)
	weekFunc      func(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error)
	allFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error)
}

func (m *MockDiaryService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertDiaryRequest) (*domain.DiaryEntry, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, req)
	}
	return &domain.DiaryEntry{ID: uuid.New(), UserID: userID, Date: req.Date}, nil
}

func (m *MockDiaryService) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, userID, date)
	}
	return nil, nil
}

func (m *MockDiaryService) Week(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
	if m.weekFunc != nil {
		return m.weekFunc(ctx, userID)
	}
	return []domain.DiaryEntry{}, nil
}

func (m *MockDiaryService) All(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx, userID)
	}
	return []domain.DiaryEntry{}, nil
}

// MockTechniqueService is a mock implementation of TechniqueService
type MockTechniqueService struct {
	listAllFunc     func(ctx context.Context) ([]domain.Technique, error)
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Technique, error)
	listByTypeFunc  func(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error)
	recommendedFunc func(ctx context.Context, concern string) ([]domain.Technique, error)
}

func (m *MockTechniqueService) ListAll(ctx context.Context) ([]domain.Technique, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []domain.Technique{}, nil
}

func (m *MockTechniqueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technique, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockTechniqueService) ListByType(ctx context.Context, techniqueType domain.TechniqueType) ([]domain.Technique, error) {
	if m.listByTypeFunc != nil {
		return m.listByTypeFunc(ctx, techniqueType)
	}
	return []domain.Technique{}, nil
}

func (m *MockTechniqueService) Recommended(ctx context.Context, concern string) ([]domain.Technique, error) {
	if m.recommendedFunc != nil {
		return m.recommendedFunc(ctx, concern)
	}
	if concern == "" {
		return nil, domain.ErrInvalidInput
	}
	return []domain.Technique{}, nil
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled bool
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}
