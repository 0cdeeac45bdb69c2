package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placewell-backend/config"
	_ "placewell-backend/docs" // Important for Swagger
	v1 "placewell-backend/internal/delivery/http/v1"
	"placewell-backend/internal/domain"
	"placewell-backend/internal/repository/memory"
	"placewell-backend/internal/repository/postgres"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/ai"
	"placewell-backend/pkg/auth"
	"placewell-backend/pkg/database"
	"placewell-backend/pkg/identity"
	"placewell-backend/pkg/logger"
	"placewell-backend/pkg/redis"
	"placewell-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           PlaceWell Backend API
// @version         1.0
// @description     Backend for the student placement and wellness platform using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting placewell backend", "port", cfg.Port)

	// 3. Setup Repositories. The backend is chosen once at boot: Postgres
	// when DATABASE_URL is real, the in-memory store otherwise.
	var (
		profileRepo domain.ProfileRepository
		studentRepo domain.StudentProfileRepository
		companyRepo domain.CompanyProfileRepository
		jobRepo     domain.JobRepository
		appRepo     domain.ApplicationRepository
		moodRepo    domain.MoodLogRepository
		alertRepo   domain.WellnessAlertRepository
	)

	if cfg.UseMockStore() {
		logger.Log.Warn("Running against the in-memory store. Data will not survive a restart.")
		profileRepo = memory.NewProfileRepository()
		studentRepo = memory.NewStudentProfileRepository()
		companyRepo = memory.NewCompanyProfileRepository()
		jobRepo = memory.NewJobRepository()
		appRepo = memory.NewApplicationRepository()
		moodRepo = memory.NewMoodLogRepository()
		alertRepo = memory.NewWellnessAlertRepository()
	} else {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		profileRepo = postgres.NewProfileRepository(dbPool)
		studentRepo = postgres.NewStudentProfileRepository(dbPool)
		companyRepo = postgres.NewCompanyProfileRepository(dbPool)
		jobRepo = postgres.NewJobRepository(dbPool)
		appRepo = postgres.NewApplicationRepository(dbPool)
		moodRepo = postgres.NewMoodLogRepository(dbPool)
		alertRepo = postgres.NewWellnessAlertRepository(dbPool)
	}

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting will use in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Identity Provider
	var identityProvider domain.IdentityProvider
	if cfg.UseMockIdentity() {
		identityProvider = identity.NewMockProvider()
	} else {
		identityProvider = identity.NewSupabaseProvider(cfg.SupabaseUrl, cfg.SupabaseKey)
	}

	// 6. Setup AI Clients (both optional; features degrade to fallbacks)
	chatClient := ai.NewChatClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	sentimentClient := ai.NewSentimentClient(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel)

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	advisor := usecase.NewMatchAdvisor(chatClient)
	authGateway := usecase.NewAuthGateway(identityProvider, profileRepo, studentRepo, companyRepo, validate)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	studentUC := usecase.NewStudentProfileUsecase(studentRepo, validate)
	companyUC := usecase.NewCompanyProfileUsecase(companyRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, studentRepo, companyRepo, advisor)
	wellnessUC := usecase.NewWellnessUsecase(moodRepo, alertRepo, studentRepo, sentimentClient, validate)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthGateway:      authGateway,
		Identity:         identityProvider,
		ProfileUC:        profileUC,
		StudentProfileUC: studentUC,
		CompanyProfileUC: companyUC,
		JobUC:            jobUC,
		ApplicationUC:    applicationUC,
		WellnessUC:       wellnessUC,
		MatchAdvisor:     advisor,
		JWKSProvider:     jwksProvider,
		Config:           cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
