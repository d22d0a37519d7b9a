package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/db"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/handlers"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/middleware"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/repos"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/seed"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/server"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/services"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)
	taxonomyPath := utils.GetEnv("TAXONOMY_CONFIG_PATH", "configs/taxonomy.yaml", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	taxonomyRepo := repos.NewTaxonomyRepo(thePG, log)
	scoringItemRepo := repos.NewScoringItemRepo(thePG, log)
	attemptRepo := repos.NewEvaluationAttemptRepo(thePG, log)
	responseRepo := repos.NewEvaluationResponseRepo(thePG, log)
	interactionRepo := repos.NewClipInteractionRepo(thePG, log)
	userRepo := repos.NewUserRepo(thePG, log)

	// Seed taxonomy once at startup. A broken branch is logged and
	// skipped inside the seeder, a missing definition file is not fatal
	// either: the process can still serve already-seeded protocols.
	seeder := services.NewTaxonomySeeder(thePG, log, taxonomyRepo)
	definition, err := seed.Load(taxonomyPath)
	if err != nil {
		log.Warn("Could not load taxonomy definition, skipping seeding", "path", taxonomyPath, "error", err)
	} else {
		seeder.Seed(context.Background(), definition)
	}

	// Services
	log.Info("Setting up Services from main...")
	evaluationService := services.NewEvaluationService(thePG, log, attemptRepo, responseRepo, scoringItemRepo, userRepo)
	interactionService := services.NewInteractionService(thePG, log, interactionRepo, taxonomyRepo)

	// Handlers
	evaluationHandler := handlers.NewEvaluationHandler(log, evaluationService)
	interactionHandler := handlers.NewInteractionHandler(log, interactionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:     authMiddleware,
		EvaluationHandler:  evaluationHandler,
		InteractionHandler: interactionHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
