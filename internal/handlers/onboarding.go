package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studymate/internal/models"
	"studymate/internal/onboarding"
	"studymate/internal/verification"
	"studymate/internal/vision"
)

// VerificationResult is the endpoint's outcome shape. Failures fill it too,
// so the caller always renders the same structure.
type VerificationResult struct {
	Success          bool                   `json:"success"`
	ConfidenceScore  float64                `json:"confidence_score"`
	ExtractedData    vision.ExtractedFields `json:"extracted_data"`
	MismatchedFields []string               `json:"mismatched_fields,omitempty"`
	Error            string                 `json:"error,omitempty"`
}

func failureResult(msg string) VerificationResult {
	return VerificationResult{Success: false, ConfidenceScore: 0, Error: msg}
}

// StartOnboarding opens a fresh onboarding session at the role-selection
// step.
func (h *Handler) StartOnboarding(w http.ResponseWriter, r *http.Request) {
	sess := onboarding.NewSession(currentUserID(r))
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		http.Error(w, "failed to store session", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusCreated, map[string]any{"session_id": sess.ID, "step": sess.Step.String()})
}

// loadSession fetches the caller's session and rejects sessions owned by a
// different account.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request, sessionID string) *onboarding.Session {
	if sessionID == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": "session_id is required"})
		return nil
	}
	sess, err := h.sessions.Get(r.Context(), sessionID)
	if errors.Is(err, onboarding.ErrSessionNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"error": "onboarding session not found or expired"})
		return nil
	}
	if err != nil {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return nil
	}
	if sess.UserID != currentUserID(r) {
		writeJSONResp(w, http.StatusForbidden, map[string]any{"error": "session belongs to another account"})
		return nil
	}
	return sess
}

// SelectRole handles the role_selection -> profile_entry transition.
func (h *Handler) SelectRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string          `json:"session_id"`
		Role      onboarding.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	sess := h.loadSession(w, r, body.SessionID)
	if sess == nil {
		return
	}
	if err := sess.SelectRole(body.Role); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		http.Error(w, "failed to store session", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"session_id": sess.ID, "step": sess.Step.String()})
}

// SubmitProfile handles the profile_entry -> document_verification
// transition. The draft is validated here and frozen afterwards.
func (h *Handler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
		onboarding.ProfileDraft
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	sess := h.loadSession(w, r, body.SessionID)
	if sess == nil {
		return
	}
	if err := sess.SubmitProfile(body.ProfileDraft); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		http.Error(w, "failed to store session", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"session_id": sess.ID, "step": sess.Step.String()})
}

// maxVerifyBody bounds the verify request: a max-size document grows by 4/3
// under base64, plus JSON framing.
const maxVerifyBody = 7 << 20

// VerifyID runs one document-capture attempt: extract, reconcile against the
// frozen draft, persist the outcome. POST /api/v1/verify-id
func (h *Handler) VerifyID(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
		Image     string `json:"image"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxVerifyBody)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONResp(w, http.StatusBadRequest, failureResult("request body too large"))
			return
		}
		writeJSONResp(w, http.StatusBadRequest, failureResult("invalid JSON body"))
		return
	}
	if strings.TrimSpace(body.Image) == "" {
		writeJSONResp(w, http.StatusBadRequest, failureResult("No image provided"))
		return
	}
	sess := h.loadSession(w, r, body.SessionID)
	if sess == nil {
		return
	}
	if sess.Step != onboarding.StepDocumentVerification {
		writeJSONResp(w, http.StatusBadRequest, failureResult("session is not in the document verification step"))
		return
	}

	image, err := base64.StdEncoding.DecodeString(body.Image)
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, failureResult("image must be base64 encoded"))
		return
	}

	fields, err := h.extractor.Extract(r.Context(), image)
	if err != nil {
		// Bad upload and failed OCR both end the attempt locally; the
		// session stays in the verification step for a re-capture.
		writeJSONResp(w, http.StatusBadRequest, failureResult(err.Error()))
		return
	}
	if fields.Empty() {
		// Nothing recognized: no reconciliation, no persistence calls.
		writeJSONResp(w, http.StatusBadRequest, failureResult("no recognizable fields in the image"))
		return
	}

	outcome := verification.Reconcile(fields, sess.Declared())

	if _, err := h.writer.Record(r.Context(), sess.UserID, outcome, fields, body.Image); err != nil {
		var miss *verification.CollegeNotFoundError
		if errors.As(err, &miss) {
			out := failureResult(miss.Error())
			out.ConfidenceScore = outcome.ConfidenceScore
			out.ExtractedData = fields
			writeJSONResp(w, http.StatusBadRequest, out)
			return
		}
		writeJSONResp(w, http.StatusInternalServerError, failureResult("failed to persist verification outcome"))
		return
	}

	if err := sess.CompleteVerification(outcome); err != nil {
		writeJSONResp(w, http.StatusBadRequest, failureResult(err.Error()))
		return
	}
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		writeJSONResp(w, http.StatusInternalServerError, failureResult("failed to store session"))
		return
	}

	out := VerificationResult{
		Success:          outcome.IsValid,
		ConfidenceScore:  outcome.ConfidenceScore,
		ExtractedData:    fields,
		MismatchedFields: outcome.MismatchedFields,
	}
	writeJSONResp(w, http.StatusOK, out)
}

// ConfirmOnboarding applies the frozen draft to the durable profile and
// closes the session. Nothing before this step mutates the users table.
func (h *Handler) ConfirmOnboarding(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	sess := h.loadSession(w, r, body.SessionID)
	if sess == nil {
		return
	}
	if err := sess.Confirm(); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", sess.UserID).First(&user).Error; err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	applyDraft(&user, sess.Draft)
	if err := h.db.Save(&user).Error; err != nil {
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}
	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		http.Error(w, "failed to close session", http.StatusInternalServerError)
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"user":     user,
		"verified": sess.Outcome.IsValid,
	})
}

func applyDraft(user *models.User, draft *onboarding.ProfileDraft) {
	user.FullName = draft.FullName
	user.Phone = draft.Phone
	user.Role = string(draft.Role)
	switch draft.Role {
	case onboarding.RoleStudent:
		user.UniversityID = draft.Student.UniversityID
		user.Major = draft.Student.Major
		user.AcademicYear = draft.Student.AcademicYear
	case onboarding.RoleTeacher:
		user.EmployeeID = draft.Teacher.EmployeeID
		user.Department = draft.Teacher.Department
		user.Courses = strings.Join(draft.Teacher.Courses, ",")
	}
}
