package main

import (
	"context"
	"log"
	"net/http"

	"studymate/internal/channels"
	"studymate/internal/classroom"
	"studymate/internal/config"
	"studymate/internal/db"
	"studymate/internal/handlers"
	"studymate/internal/onboarding"
	"studymate/internal/planner"
	"studymate/internal/router"
	"studymate/internal/verification"
	"studymate/internal/vision"
	"studymate/internal/whatsapp"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis: ", err)
	}
	redisClient := redis.NewClient(redisOpts)

	ctx := context.Background()
	detector, err := vision.NewGoogleDetector(ctx, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Fatal(err)
	}
	defer detector.Close()

	gen, err := planner.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal(err)
	}
	defer gen.Close()

	h := handlers.New(
		cfg,
		gdb,
		onboarding.NewRedisSessionStore(redisClient, cfg.OnboardingTTL),
		vision.NewExtractor(detector),
		verification.NewWriter(verification.NewGormStore(gdb)),
		classroom.NewSyncer(gdb),
		planner.NewPlanner(gdb, gen),
		channels.NewService(gdb),
		whatsapp.NewBridge(gdb, whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppToken), cfg.WhatsAppVerifyToken),
	)

	addr := ":" + cfg.Port
	log.Println("listening on", addr)
	if err := http.ListenAndServe(addr, router.Register(h, []byte(cfg.JWTSecret))); err != nil {
		log.Fatal(err)
	}
}
