package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/langfuse"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// CoachHandler handles AI coach endpoints.
type CoachHandler struct {
	service        service.CoachService
	langfuseClient langfuse.Client
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(service service.CoachService, langfuseClient langfuse.Client) *CoachHandler {
	return &CoachHandler{
		service:        service,
		langfuseClient: langfuseClient,
	}
}

// CoachMessageResponse is the coach endpoint envelope with trace linking.
// @Description Coach narrative with the trace ID used for feedback.
type CoachMessageResponse struct {
	CoachMessage *domain.CoachNarrative `json:"coach_message"`
	// Trace ID for linking feedback to this response
	TraceID string `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

// GetWeekly handles GET /v1/users/{userId}/sleep/coach/weekly
// @Summary Get the weekly AI coach message
// @Description Return the cached coach narrative when generated within the last 24 hours, otherwise generate a new one from the weekly insight. Set force=true to bypass the cache. When generation fails a static fallback narrative is returned with HTTP 200. coach_message is null when the user has no sleep data.
// @Tags sleep-coach
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param force query boolean false "Bypass the 24h cache" default(false)
// @Success 200 {object} CoachMessageResponse "Coach narrative (null when no data)"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/coach/weekly [get]
func (h *CoachHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	force := r.URL.Query().Get("force") == "true"

	narrative, err := h.service.WeeklyCoach(r.Context(), userID, force)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get coach message").Write(w)
		return
	}

	response := CoachMessageResponse{CoachMessage: narrative}

	// Attach OTEL trace ID (if present) to response for feedback linking
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		response.TraceID = span.SpanContext().TraceID().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// FeedbackRequest is the request body for coach feedback.
// @Description Request body for rating a coach message.
type FeedbackRequest struct {
	// Trace ID from the coach response
	TraceID string `json:"trace_id" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
	// Rating score (1-5)
	Score int `json:"score" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" example:"The tips were spot on!"`
}

// PostFeedback handles POST /v1/users/{userId}/sleep/coach/feedback
// @Summary Submit feedback on a coach message
// @Description Submit a user rating and optional comment for a previous coach response.
// @Tags sleep-coach
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param body body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/coach/feedback [post]
func (h *CoachHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	if _, err := uuid.Parse(chi.URLParam(r, "userId")); err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Write(w)
		return
	}

	if req.TraceID == "" {
		problem.BadRequest("trace_id is required").Write(w)
		return
	}
	if req.Score < 1 || req.Score > 5 {
		problem.BadRequest("score must be between 1 and 5").Write(w)
		return
	}

	// Fire-and-forget: a failed score never fails the request
	_ = h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "coach_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})

	w.WriteHeader(http.StatusNoContent)
}
