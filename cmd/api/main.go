// Dimlight API
//
// REST API for sleep tracking, insights, scoring and AI coaching.
//
//	@title			Dimlight API
//	@version		1.0
//	@description	Track sleep, detect patterns, compute sleep scores and get AI coaching.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			sleep-records
//	@tag.description	Sleep record endpoints
//
//	@tag.name			sleep-insights
//	@tag.description	Statistics, patterns, trends and scores
//
//	@tag.name			sleep-coach
//	@tag.description	AI coach endpoints
//
//	@tag.name			diary
//	@tag.description	Sleep diary endpoints
//
//	@tag.name			techniques
//	@tag.description	Relaxation technique catalog
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/dimlight/dimlight-api/internal/api"
	"github.com/dimlight/dimlight-api/internal/api/handler"
	"github.com/dimlight/dimlight-api/internal/config"
	"github.com/dimlight/dimlight-api/internal/domain"
	"github.com/dimlight/dimlight-api/internal/langfuse"
	"github.com/dimlight/dimlight-api/internal/llm"
	"github.com/dimlight/dimlight-api/internal/repository"
	"github.com/dimlight/dimlight-api/internal/seed"
	"github.com/dimlight/dimlight-api/internal/service"
	"github.com/dimlight/dimlight-api/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	err = db.AutoMigrate(
		&domain.User{},
		&domain.SleepRecord{},
		&domain.AICoachInsight{},
		&domain.DiaryEntry{},
		&domain.Technique{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize OpenTelemetry tracing (no-op when Langfuse is not configured)
	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "dimlight-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("Tracer shutdown failed: %v", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sleepRecordRepo := repository.NewSleepRecordRepository(db)
	coachInsightRepo := repository.NewCoachInsightRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	techniqueRepo := repository.NewTechniqueRepository(db)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, coach responses will use the fallback narrative")
	}

	// Initialize Langfuse client for feedback scores
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Initialize services
	userService := service.NewUserService(userRepo)
	sleepRecordService := service.NewSleepRecordService(sleepRecordRepo, userRepo)
	insightsService := service.NewInsightsService(sleepRecordRepo, userRepo)
	coachService := service.NewCoachService(insightsService, coachInsightRepo, userRepo, openaiClient)
	diaryService := service.NewDiaryService(diaryRepo, userRepo)
	techniqueService := service.NewTechniqueService(techniqueRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sleepRecordHandler := handler.NewSleepRecordHandler(sleepRecordService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	coachHandler := handler.NewCoachHandler(coachService, langfuseClient)
	diaryHandler := handler.NewDiaryHandler(diaryService)
	techniqueHandler := handler.NewTechniqueHandler(techniqueService)

	// Setup router
	router := api.NewRouter(userHandler, sleepRecordHandler, insightsHandler, coachHandler, diaryHandler, techniqueHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
