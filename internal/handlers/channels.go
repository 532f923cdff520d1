package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studymate/internal/channels"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// ChannelHierarchy returns the full tree under a college.
// GET /api/v1/channels/{collegeID}
func (h *Handler) ChannelHierarchy(w http.ResponseWriter, r *http.Request) {
	collegeID := chi.URLParam(r, "collegeID")
	tree, err := h.channels.Hierarchy(r.Context(), collegeID)
	if errors.Is(err, channels.ErrNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "college not found"})
		return
	}
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, tree)
}

// CreateChannel creates a college, branch or subject depending on "type".
// POST /api/v1/channels
func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type              string `json:"type"`
		Name              string `json:"name"`
		CollegeID         string `json:"college_id"`
		BranchID          string `json:"branch_id"`
		GoogleClassroomID string `json:"google_classroom_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	var (
		created any
		err     error
	)
	switch body.Type {
	case "college":
		created, err = h.channels.CreateCollege(r.Context(), body.Name)
	case "branch":
		if body.CollegeID == "" {
			writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "college_id is required for a branch"})
			return
		}
		created, err = h.channels.CreateBranch(r.Context(), body.CollegeID, body.Name)
	case "subject":
		if body.BranchID == "" {
			writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "branch_id is required for a subject"})
			return
		}
		created, err = h.channels.CreateSubject(r.Context(), body.BranchID, body.Name, body.GoogleClassroomID)
	default:
		writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "type must be college, branch or subject"})
		return
	}
	if err != nil {
		http.Error(w, "failed to create channel", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusCreated, created)
}

// JoinSubject adds the caller to a subject channel.
// POST /api/v1/channels/subject/{id}/join
func (h *Handler) JoinSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "id")
	err := h.channels.Join(r.Context(), currentUserID(r), subjectID)
	if errors.Is(err, channels.ErrNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "subject not found"})
		return
	}
	if err != nil {
		http.Error(w, "failed to join channel", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"joined": true, "subject_id": subjectID})
}

// LeaveSubject removes the caller from a subject channel.
// POST /api/v1/channels/subject/{id}/leave
func (h *Handler) LeaveSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "id")
	if err := h.channels.Leave(r.Context(), currentUserID(r), subjectID); err != nil {
		http.Error(w, "failed to leave channel", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"joined": false, "subject_id": subjectID})
}

// SubjectQRCode renders a join link for a subject as a QR PNG.
// GET /api/v1/channels/subject/{id}/qrcode
func (h *Handler) SubjectQRCode(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "id")
	data := strings.TrimRight(h.cfg.FrontendBaseURL, "/") + "/channels/join/" + subjectID

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
