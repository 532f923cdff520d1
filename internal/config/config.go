package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs from the environment. It is
// loaded once in main and passed by reference into the services that need it.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret       string
	SessionTokenTTL time.Duration

	// Onboarding sessions expire after this much inactivity.
	OnboardingTTL time.Duration

	GoogleCredentialsFile string
	GeminiAPIKey          string

	WhatsAppAPIURL        string
	WhatsAppPhoneNumberID string
	WhatsAppToken         string
	WhatsAppVerifyToken   string

	FrontendBaseURL string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisURL:              getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		SessionTokenTTL:       24 * time.Hour,
		OnboardingTTL:         time.Hour,
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		WhatsAppAPIURL:        getenv("WHATSAPP_API_URL", "https://graph.facebook.com/v17.0"),
		WhatsAppPhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppToken:         os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppVerifyToken:   os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		FrontendBaseURL:       getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
