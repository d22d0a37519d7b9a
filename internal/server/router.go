package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/handlers"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	EvaluationHandler  *handlers.EvaluationHandler
	InteractionHandler *handlers.InteractionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Evaluation
	api.POST("/clips/:id/attempts", cfg.EvaluationHandler.CreateAttempt)
	api.GET("/clips/:id/attempts", cfg.EvaluationHandler.ListAttempts)
	api.GET("/attempts/:id/responses", cfg.EvaluationHandler.ListResponses)
	// Interactions
	api.POST("/clips/:id/interactions/learner", cfg.InteractionHandler.SubmitLearnerInteraction)
	api.POST("/clips/:id/interactions/reviewer", cfg.InteractionHandler.SubmitReviewerInteraction)
	api.GET("/clips/:id/interactions", cfg.InteractionHandler.GetInteractions)

	return router
}
