package router

import (
	"fmt"
	"net/http"

	"studymate/internal/handlers"
	"studymate/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func Register(h *handlers.Handler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Public
	r.Post("/api/v1/auth/signup", h.Signup)
	r.Post("/api/v1/auth/login", h.Login)
	r.Get("/api/v1/whatsapp/webhook", h.WhatsAppVerify)
	r.Post("/api/v1/whatsapp/webhook", h.WhatsAppWebhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))

		r.Get("/api/v1/auth/me", h.Me)

		// Onboarding workflow
		r.Post("/api/v1/onboarding/start", h.StartOnboarding)
		r.Post("/api/v1/onboarding/role", h.SelectRole)
		r.Post("/api/v1/onboarding/profile", h.SubmitProfile)
		r.Post("/api/v1/verify-id", h.VerifyID)
		r.Post("/api/v1/onboarding/confirm", h.ConfirmOnboarding)

		// Classroom + study plans
		r.Post("/api/v1/classroom/sync", h.SyncClassroom)
		r.Get("/api/v1/assignments/upcoming", h.UpcomingAssignments)
		r.Post("/api/v1/study-plans/generate", h.GenerateStudyPlan)
		r.Get("/api/v1/study-plans", h.CurrentStudyPlan)

		// Channel directory
		r.Get("/api/v1/channels/{collegeID}", h.ChannelHierarchy)
		r.Post("/api/v1/channels", h.CreateChannel)
		r.Post("/api/v1/channels/subject/{id}/join", h.JoinSubject)
		r.Post("/api/v1/channels/subject/{id}/leave", h.LeaveSubject)
		r.Get("/api/v1/channels/subject/{id}/qrcode", h.SubjectQRCode)

		// Reminders
		r.Post("/api/v1/notifications/assignment-reminder", h.SendAssignmentReminder)
		r.Post("/api/v1/notifications/study-plan-reminder", h.SendStudyPlanReminder)
	})

	return r
}
