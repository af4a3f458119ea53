package service

import (
	"context"
	"sort"
	"time"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
)

// MockSleepRecordRepository is a mock implementation of SleepRecordRepository
type MockSleepRecordRepository struct {
	records    map[uuid.UUID]*domain.SleepRecord
	listResult []domain.SleepRecord
	err        error
}

func NewMockSleepRecordRepository() *MockSleepRecordRepository {
	return &MockSleepRecordRepository{
		records: make(map[uuid.UUID]*domain.SleepRecord),
	}
}

func (m *MockSleepRecordRepository) Create(ctx context.Context, record *domain.SleepRecord) error {
	if m.err != nil {
		return m.err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	m.records[record.ID] = record
	return nil
}

func (m *MockSleepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (m *MockSleepRecordRepository) Update(ctx context.Context, record *domain.SleepRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records[record.ID] = record
	return nil
}

func (m *MockSleepRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockSleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.SleepRecord, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.SleepRecord
	for _, record := range m.records {
		if record.UserID == userID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (m *MockSleepRecordRepository) GetByDateKey(ctx context.Context, userID uuid.UUID, dateKey string) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, record := range m.records {
		if record.UserID == userID && record.DateKey == dateKey {
			return record, nil
		}
	}
	return nil, nil
}

func (m *MockSleepRecordRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, fromDate, toDate string) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepRecord
	for _, record := range m.records {
		if record.UserID == userID && record.DateKey >= fromDate && record.DateKey <= toDate {
			result = append(result, *record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateKey < result[j].DateKey
	})
	return result, nil
}

func (m *MockSleepRecordRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var latest *domain.SleepRecord
	for _, record := range m.records {
		if record.UserID != userID {
			continue
		}
		if latest == nil || record.DateKey > latest.DateKey {
			latest = record
		}
	}
	return latest, nil
}

func (m *MockSleepRecordRepository) DeleteByDateKeys(ctx context.Context, userID uuid.UUID, dateKeys []string) error {
	if m.err != nil {
		return m.err
	}
	keys := make(map[string]bool, len(dateKeys))
	for _, k := range dateKeys {
		keys[k] = true
	}
	for id, record := range m.records {
		if record.UserID == userID && keys[record.DateKey] {
			delete(m.records, id)
		}
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

// MockCoachInsightRepository is a mock implementation of CoachInsightRepository
type MockCoachInsightRepository struct {
	rows      []*domain.AICoachInsight
	createErr error
	findErr   error
}

func NewMockCoachInsightRepository() *MockCoachInsightRepository {
	return &MockCoachInsightRepository{}
}

func (m *MockCoachInsightRepository) Create(ctx context.Context, insight *domain.AICoachInsight) error {
	if m.createErr != nil {
		return m.createErr
	}
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	if insight.CreatedAt.IsZero() {
		insight.CreatedAt = time.Now()
	}
	m.rows = append(m.rows, insight)
	return nil
}

func (m *MockCoachInsightRepository) FindMostRecent(ctx context.Context, userID uuid.UUID) (*domain.AICoachInsight, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var newest *domain.AICoachInsight
	for _, row := range m.rows {
		if row.UserID != userID {
			continue
		}
		if newest == nil || row.CreatedAt.After(newest.CreatedAt) {
			newest = row
		}
	}
	return newest, nil
}

func (m *MockCoachInsightRepository) PruneKeepLatest(ctx context.Context, userID uuid.UUID, keep int) error {
	return nil
}

// MockCoachLLM is a mock implementation of llm.CoachLLM
type MockCoachLLM struct {
	narrative *domain.CoachNarrative
	err       error
	calls     int
}

func (m *MockCoachLLM) GenerateCoachNarrative(ctx context.Context, insight *domain.WeeklyInsight) (*domain.CoachNarrative, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.narrative, nil
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}
