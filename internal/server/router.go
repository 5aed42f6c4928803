package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qalamlabs/qalam-backend/internal/handlers"
	"github.com/qalamlabs/qalam-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	LessonHandler     *handlers.LessonHandler
	CommitHandler     *handlers.CommitHandler
	DictionaryHandler *handlers.DictionaryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/logout", cfg.AuthHandler.Logout)

	// Lessons and the commit pipeline
	protected.GET("/ar/lessons", cfg.LessonHandler.List)
	protected.POST("/ar/lessons", cfg.LessonHandler.Create)
	protected.GET("/ar/lessons/:id", cfg.LessonHandler.Get)
	protected.PUT("/ar/lessons/:id", cfg.LessonHandler.Update)
	protected.DELETE("/ar/lessons/:id", cfg.LessonHandler.Delete)
	protected.POST("/ar/lessons/:id/commit", cfg.CommitHandler.Commit)

	// Shared dictionary reads
	protected.GET("/ar/roots", cfg.DictionaryHandler.SearchRoots)
	protected.GET("/ar/grammar/concepts", cfg.DictionaryHandler.ListGrammarConcepts)

	return router
}
