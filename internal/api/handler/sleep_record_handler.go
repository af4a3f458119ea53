package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dimlight/dimlight-api/internal/api/validation"
	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SleepRecordHandler struct {
	service service.SleepRecordService
}

func NewSleepRecordHandler(service service.SleepRecordService) *SleepRecordHandler {
	return &SleepRecordHandler{service: service}
}

// Create handles POST /v1/users/{userId}/sleep-records
// @Summary Record a night of sleep
// @Description Log a sleep session. One record per user per calendar date; the date is derived from bed_time in the record's timezone.
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateSleepRecordRequest true "Sleep session data"
// @Success 201 {object} domain.SleepRecordResponse "Sleep record created"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "A record already exists for this date"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-records [post]
func (h *SleepRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeSleepRecordError(w, err, "Failed to create sleep record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record.ToResponse())
}

// List handles GET /v1/users/{userId}/sleep-records
// @Summary List sleep records
// @Description Fetch paginated sleep history, newest first. The range parameter bounds the window by calendar date.
// @Tags sleep-records
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param range query string false "Named date window" Enums(week, month, all) default(all)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SleepRecordListResponse "Sleep records with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-records [get]
func (h *SleepRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list sleep records").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetByID handles GET /v1/users/{userId}/sleep-records/{recordId}
// @Summary Get a sleep record
// @Tags sleep-records
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param recordId path string true "Record UUID" format(uuid)
// @Success 200 {object} domain.SleepRecordResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/{recordId} [get]
func (h *SleepRecordHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, recordID, ok := parseRecordPath(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetByID(r.Context(), userID, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Sleep record not found").Write(w)
			return
		}
		problem.InternalError("Failed to get sleep record").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record.ToResponse())
}

// Update handles PATCH /v1/users/{userId}/sleep-records/{recordId}
// @Summary Update a sleep record
// @Description Partially update a record. Duration and date key are recomputed when times or timezone change.
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param recordId path string true "Record UUID" format(uuid)
// @Param request body domain.UpdateSleepRecordRequest true "Fields to update"
// @Success 200 {object} domain.SleepRecordResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "Updated times collide with another record's date"
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/{recordId} [patch]
func (h *SleepRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, recordID, ok := parseRecordPath(w, r)
	if !ok {
		return
	}

	var req domain.UpdateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Update(r.Context(), userID, recordID, &req)
	if err != nil {
		writeSleepRecordError(w, err, "Failed to update sleep record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/sleep-records/{recordId}
// @Summary Delete a sleep record
// @Tags sleep-records
// @Param userId path string true "User UUID" format(uuid)
// @Param recordId path string true "Record UUID" format(uuid)
// @Success 204 "Record deleted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/{recordId} [delete]
func (h *SleepRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, recordID, ok := parseRecordPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, recordID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Sleep record not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete sleep record").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /v1/users/{userId}/sleep-records/import
// @Summary Bulk import sleep records
// @Description Import records from an external source. Existing records on the same dates are replaced; imported records are tagged source=imported.
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.ImportSleepRecordsRequest true "Records to import"
// @Success 200 {object} domain.ImportSleepRecordsResponse "Import summary"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/import [post]
func (h *SleepRecordHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.ImportSleepRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	count, err := h.service.Import(r.Context(), userID, &req)
	if err != nil {
		writeSleepRecordError(w, err, "Failed to import sleep records")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.ImportSleepRecordsResponse{Count: count})
}

func writeSleepRecordError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Not found").Write(w)
	case errors.Is(err, domain.ErrDuplicateDate):
		problem.Conflict("A sleep record already exists for this date").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest("Wake time must be after bed time").Write(w)
	default:
		problem.InternalError(fallback).Write(w)
	}
}

func parseRecordPath(w http.ResponseWriter, r *http.Request) (userID, recordID uuid.UUID, ok bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	recordID, err = uuid.Parse(chi.URLParam(r, "recordId"))
	if err != nil {
		problem.BadRequest("Invalid record ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, recordID, true
}

func parseListFilter(r *http.Request) (domain.SleepRecordFilter, []problem.FieldError) {
	var filter domain.SleepRecordFilter
	var fieldErrors []problem.FieldError

	// Named range maps to a date-key window
	if rangeName := r.URL.Query().Get("range"); rangeName != "" {
		switch rangeName {
		case "week", "month", "all":
			filter.FromDate, filter.ToDate = service.WindowBounds(rangeName, time.Now())
		default:
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "range",
				Message: "must be one of: week month all",
			})
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
