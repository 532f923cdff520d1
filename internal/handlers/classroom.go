package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// SyncClassroom pulls the caller's courses and assignments from the
// classroom provider. POST /api/v1/classroom/sync
func (h *Handler) SyncClassroom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.AccessToken) == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "access_token is required"})
		return
	}

	res, err := h.classroom.Sync(r.Context(), currentUserID(r), body.AccessToken)
	if err != nil {
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}
	writeJSONResp(w, http.StatusOK, res)
}

// UpcomingAssignments lists the caller's next assignments by due date.
// GET /api/v1/assignments/upcoming
func (h *Handler) UpcomingAssignments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.classroom.Upcoming(r.Context(), currentUserID(r), 5)
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, rows)
}
