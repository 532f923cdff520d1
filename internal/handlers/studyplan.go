package handlers

import (
	"errors"
	"net/http"

	"studymate/internal/planner"
)

// GenerateStudyPlan asks the model for a plan around the caller's upcoming
// assignments and persists it. POST /api/v1/study-plans/generate
func (h *Handler) GenerateStudyPlan(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planner.Generate(r.Context(), currentUserID(r))
	if errors.Is(err, planner.ErrNoAssignments) {
		writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}
	writeJSONResp(w, http.StatusCreated, plans)
}

// CurrentStudyPlan lists the caller's unfinished study sessions.
// GET /api/v1/study-plans
func (h *Handler) CurrentStudyPlan(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planner.Current(r.Context(), currentUserID(r))
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, plans)
}
