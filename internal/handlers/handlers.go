package handlers

import (
	"encoding/json"
	"net/http"

	"studymate/internal/channels"
	"studymate/internal/classroom"
	"studymate/internal/config"
	"studymate/internal/middleware"
	"studymate/internal/onboarding"
	"studymate/internal/planner"
	"studymate/internal/verification"
	"studymate/internal/vision"
	"studymate/internal/whatsapp"

	"gorm.io/gorm"
)

// Handler bundles the constructed service handles. Everything is injected at
// process start; no package-level clients.
type Handler struct {
	cfg       *config.Config
	db        *gorm.DB
	sessions  onboarding.SessionStore
	extractor *vision.Extractor
	writer    *verification.Writer
	classroom *classroom.Syncer
	planner   *planner.Planner
	channels  *channels.Service
	bridge    *whatsapp.Bridge
}

func New(
	cfg *config.Config,
	db *gorm.DB,
	sessions onboarding.SessionStore,
	extractor *vision.Extractor,
	writer *verification.Writer,
	syncer *classroom.Syncer,
	plans *planner.Planner,
	channelSvc *channels.Service,
	bridge *whatsapp.Bridge,
) *Handler {
	return &Handler{
		cfg:       cfg,
		db:        db,
		sessions:  sessions,
		extractor: extractor,
		writer:    writer,
		classroom: syncer,
		planner:   plans,
		channels:  channelSvc,
		bridge:    bridge,
	}
}

func currentUserID(r *http.Request) string {
	return middleware.UserID(r)
}

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
