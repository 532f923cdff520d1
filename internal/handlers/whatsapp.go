package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"studymate/internal/whatsapp"
)

// WhatsAppVerify answers the platform's subscription handshake.
// GET /api/v1/whatsapp/webhook
func (h *Handler) WhatsAppVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	challenge, ok := h.bridge.VerifyHandshake(q.Get("hub.mode"), q.Get("hub.verify_token"), q.Get("hub.challenge"))
	if !ok {
		writeJSONResp(w, http.StatusForbidden, map[string]string{"error": "invalid verification token"})
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, challenge)
}

// WhatsAppWebhook receives inbound messages.
// POST /api/v1/whatsapp/webhook
func (h *Handler) WhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	var payload whatsapp.InboundPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := h.bridge.HandleInbound(r.Context(), payload); err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true})
}

// SendAssignmentReminder messages the caller's next assignment to a phone
// number. POST /api/v1/notifications/assignment-reminder
func (h *Handler) SendAssignmentReminder(w http.ResponseWriter, r *http.Request) {
	h.sendReminder(w, r, h.bridge.SendAssignmentReminder)
}

// SendStudyPlanReminder messages the caller's next study session.
// POST /api/v1/notifications/study-plan-reminder
func (h *Handler) SendStudyPlanReminder(w http.ResponseWriter, r *http.Request) {
	h.sendReminder(w, r, h.bridge.SendStudyPlanReminder)
}

func (h *Handler) sendReminder(w http.ResponseWriter, r *http.Request, send func(ctx context.Context, userID, phone string) error) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Phone == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]string{"error": "phone is required"})
		return
	}
	if err := send(r.Context(), currentUserID(r), body.Phone); err != nil {
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"success": true})
}
