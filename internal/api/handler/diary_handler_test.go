package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/google/uuid"
)

func TestDiaryHandler_Upsert(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockDiaryService
		wantStatusCode int
	}{
		{
			name:           "valid entry",
			body:           `{"date": "2024-01-15", "morning_mood": "😊", "notes": "Slept great", "tags": ["calm"]}`,
			mockService:    &MockDiaryService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing date",
			body:           `{"notes": "no date"}`,
			mockService:    &MockDiaryService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "malformed date",
			body:           `{"date": "15-01-2024"}`,
			mockService:    &MockDiaryService{},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "user not found",
			body: `{"date": "2024-01-15"}`,
			mockService: &MockDiaryService{
				upsertFunc: func(ctx context.Context, userID uuid.UUID, req *domain.UpsertDiaryRequest) (*domain.DiaryEntry, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDiaryHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPut, "/v1/users/"+userID.String()+"/diary", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = withURLParams(req, map[string]string{"userId": userID.String()})
			rec := httptest.NewRecorder()

			handler.Upsert(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Upsert() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestDiaryHandler_GetByDate(t *testing.T) {
	userID := uuid.New()

	handler := NewDiaryHandler(&MockDiaryService{
		getByDateFunc: func(ctx context.Context, userID uuid.UUID, date string) (*domain.DiaryEntry, error) {
			if date != "2024-01-15" {
				t.Errorf("expected date 2024-01-15, got %q", date)
			}
			return &domain.DiaryEntry{ID: uuid.New(), UserID: userID, Date: date}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/diary?date=2024-01-15", nil)
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.GetByDate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GetByDate() status = %d, body: %s", rec.Code, rec.Body.String())
	}
}

func TestDiaryHandler_GetWeek(t *testing.T) {
	userID := uuid.New()

	handler := NewDiaryHandler(&MockDiaryService{
		weekFunc: func(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
			return []domain.DiaryEntry{
				{ID: uuid.New(), UserID: userID, Date: "2024-01-14"},
				{ID: uuid.New(), UserID: userID, Date: "2024-01-15"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/diary/week", nil)
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.GetWeek(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GetWeek() status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var response domain.DiaryListResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(response.Entries))
	}
}

func TestDiaryHandler_GetAllEmpty(t *testing.T) {
	userID := uuid.New()

	handler := NewDiaryHandler(&MockDiaryService{
		allFunc: func(ctx context.Context, userID uuid.UUID) ([]domain.DiaryEntry, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/diary/all", nil)
	req = withURLParams(req, map[string]string{"userId": userID.String()})
	rec := httptest.NewRecorder()

	handler.GetAll(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GetAll() status = %d, body: %s", rec.Code, rec.Body.String())
	}

	// A nil slice must serialize as an empty list, not null
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if string(raw["entries"]) != "[]" {
		t.Errorf("expected entries to be [], got %s", raw["entries"])
	}
}
