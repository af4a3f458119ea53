package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InsightsHandler handles sleep insight endpoints.
type InsightsHandler struct {
	service service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(service service.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// GetWeekly handles GET /v1/users/{userId}/sleep/insights/weekly
// @Summary Get weekly sleep insights
// @Description Run the insight pipeline over the trailing 7 days: summary statistics, detected patterns with recommendations, a primary concern tag and the composite sleep score. The insight field is null when the window holds no records.
// @Tags sleep-insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.WeeklyInsightResponse "Weekly insight (null when no data)"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep/insights/weekly [get]
func (h *InsightsHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	insight, err := h.service.ComputeWeekly(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute weekly insights").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.WeeklyInsightResponse{Insight: insight})
}

// GetToday handles GET /v1/users/{userId}/sleep/insights/today
// @Summary Get today's sleep message
// @Description One-line message keyed off the quality of today's record, or a prompt to log sleep when none exists.
// @Tags sleep-insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.TodayInsightResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/insights/today [get]
func (h *InsightsHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	response, err := h.service.TodayInsight(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute today's insight").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetTrends handles GET /v1/users/{userId}/sleep/trends
// @Summary Get duration and quality trends
// @Description Per-day duration and quality series over a week or month, with nulls marking days without a record.
// @Tags sleep-insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param range query string false "Trend window" Enums(week, month) default(week)
// @Success 200 {object} domain.TrendResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/trends [get]
func (h *InsightsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := service.WeeklyWindowDays
	switch r.URL.Query().Get("range") {
	case "", "week":
	case "month":
		days = service.MonthWindowDays
	default:
		problem.BadRequest("range must be week or month").Write(w)
		return
	}

	response, err := h.service.Trends(r.Context(), userID, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute trends").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetScoreSeries handles GET /v1/users/{userId}/sleep/score
// @Summary Get per-day sleep score series
// @Description Recompute the composite sleep score for each logged day in the window. Consistency is neutral per single-day window.
// @Tags sleep-insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Number of days to cover" default(7) minimum(1) maximum(90)
// @Success 200 {object} domain.ScoreSeriesResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/score [get]
func (h *InsightsHandler) GetScoreSeries(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	days := parseIntParam(r, "days", service.DefaultScoreSeriesDays)
	if days < 1 || days > 90 {
		problem.BadRequest("days must be between 1 and 90").Write(w)
		return
	}

	response, err := h.service.ScoreSeries(r.Context(), userID, days)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute score series").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
