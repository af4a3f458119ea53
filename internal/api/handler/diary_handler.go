package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dimlight/dimlight-api/internal/api/validation"
	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DiaryHandler handles sleep diary endpoints.
type DiaryHandler struct {
	service service.DiaryService
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(service service.DiaryService) *DiaryHandler {
	return &DiaryHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/diary
// @Summary Save a diary entry
// @Description Create or replace the journal entry for a calendar date.
// @Tags diary
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.UpsertDiaryRequest true "Diary entry"
// @Success 200 {object} domain.DiaryEntry
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/diary [put]
func (h *DiaryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.UpsertDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.Upsert(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to save diary entry").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// GetByDate handles GET /v1/users/{userId}/diary
// @Summary Get a diary entry
// @Description Fetch the entry for a date, defaulting to today. Returns null when no entry exists.
// @Tags diary
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param date query string false "Calendar date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.DiaryEntry
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/diary [get]
func (h *DiaryHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	entry, err := h.service.GetByDate(r.Context(), userID, r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get diary entry").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// GetWeek handles GET /v1/users/{userId}/diary/week
// @Summary List the trailing week of diary entries
// @Tags diary
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.DiaryListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/diary/week [get]
func (h *DiaryHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(ctx *http.Request, userID uuid.UUID) ([]domain.DiaryEntry, error) {
		return h.service.Week(ctx.Context(), userID)
	})
}

// GetAll handles GET /v1/users/{userId}/diary/all
// @Summary List recent diary entries
// @Description Fetch the most recent diary entries, newest first.
// @Tags diary
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.DiaryListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/diary/all [get]
func (h *DiaryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(ctx *http.Request, userID uuid.UUID) ([]domain.DiaryEntry, error) {
		return h.service.All(ctx.Context(), userID)
	})
}

func (h *DiaryHandler) list(w http.ResponseWriter, r *http.Request, fetch func(*http.Request, uuid.UUID) ([]domain.DiaryEntry, error)) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	entries, err := fetch(r, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list diary entries").Write(w)
		return
	}
	if entries == nil {
		entries = []domain.DiaryEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.DiaryListResponse{Entries: entries})
}
