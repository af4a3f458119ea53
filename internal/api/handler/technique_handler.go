package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TechniqueHandler serves the relaxation technique catalog.
type TechniqueHandler struct {
	service service.TechniqueService
}

// NewTechniqueHandler creates a new TechniqueHandler.
func NewTechniqueHandler(service service.TechniqueService) *TechniqueHandler {
	return &TechniqueHandler{service: service}
}

// List handles GET /v1/techniques
// @Summary List all relaxation techniques
// @Tags techniques
// @Produce json
// @Success 200 {object} domain.TechniqueListResponse
// @Failure 500 {object} problem.Problem
// @Router /techniques [get]
func (h *TechniqueHandler) List(w http.ResponseWriter, r *http.Request) {
	techniques, err := h.service.ListAll(r.Context())
	if err != nil {
		problem.InternalError("Failed to list techniques").Write(w)
		return
	}

	writeTechniqueList(w, techniques)
}

// GetByID handles GET /v1/techniques/{techniqueId}
// @Summary Get a technique
// @Tags techniques
// @Produce json
// @Param techniqueId path string true "Technique UUID" format(uuid)
// @Success 200 {object} domain.Technique
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /techniques/{techniqueId} [get]
func (h *TechniqueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	techniqueID, err := uuid.Parse(chi.URLParam(r, "techniqueId"))
	if err != nil {
		problem.BadRequest("Invalid technique ID format").Write(w)
		return
	}

	technique, err := h.service.GetByID(r.Context(), techniqueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Technique not found").Write(w)
			return
		}
		problem.InternalError("Failed to get technique").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(technique)
}

// ListByType handles GET /v1/techniques/type/{type}
// @Summary List techniques by category
// @Tags techniques
// @Produce json
// @Param type path string true "Technique category" Enums(breathing, meditation, stretching, mindfulness)
// @Success 200 {object} domain.TechniqueListResponse
// @Failure 400 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /techniques/type/{type} [get]
func (h *TechniqueHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	techniqueType := domain.TechniqueType(chi.URLParam(r, "type"))

	techniques, err := h.service.ListByType(r.Context(), techniqueType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Unknown technique type").Write(w)
			return
		}
		problem.InternalError("Failed to list techniques").Write(w)
		return
	}

	writeTechniqueList(w, techniques)
}

// Recommended handles GET /v1/techniques/recommended
// @Summary List techniques for a concern
// @Description Fetch techniques tagged for a concern, typically the primary_concern from weekly insights.
// @Tags techniques
// @Produce json
// @Param concern query string true "Concern tag" example(stress)
// @Success 200 {object} domain.TechniqueListResponse
// @Failure 400 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /techniques/recommended [get]
func (h *TechniqueHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	concern := r.URL.Query().Get("concern")

	techniques, err := h.service.Recommended(r.Context(), concern)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("concern is required").Write(w)
			return
		}
		problem.InternalError("Failed to list techniques").Write(w)
		return
	}

	writeTechniqueList(w, techniques)
}

func writeTechniqueList(w http.ResponseWriter, techniques []domain.Technique) {
	if techniques == nil {
		techniques = []domain.Technique{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.TechniqueListResponse{Techniques: techniques})
}
