package main

import (
	"fmt"
	"os"
	"time"

	"github.com/qalamlabs/qalam-backend/internal/db"
	"github.com/qalamlabs/qalam-backend/internal/handlers"
	"github.com/qalamlabs/qalam-backend/internal/middleware"
	"github.com/qalamlabs/qalam-backend/internal/platform/envutil"
	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/server"
	"github.com/qalamlabs/qalam-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.Str("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "defaultsecret")
	accessTokenTTL := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	refreshTokenTTL := envutil.Int("REFRESH_TOKEN_TTL", 86400)
	port := envutil.Str("PORT", "8080")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	lessonRepo := repos.NewLessonRepo(thePG, log)
	containerRepo := repos.NewContainerRepo(thePG, log)
	unitRepo := repos.NewUnitRepo(thePG, log)
	rootRepo := repos.NewRootRepo(thePG, log)
	tokenRepo := repos.NewTokenRepo(thePG, log)
	spanRepo := repos.NewSpanRepo(thePG, log)
	sentenceRepo := repos.NewSentenceRepo(thePG, log)
	grammarRepo := repos.NewGrammarRepo(thePG, log)
	expressionRepo := repos.NewExpressionRepo(thePG, log)
	lemmaRepo := repos.NewLemmaRepo(thePG, log)
	linkRepo := repos.NewLinkRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	lessonService := services.NewLessonService(thePG, log, lessonRepo)
	dictionaryService := services.NewDictionaryService(thePG, log, rootRepo, grammarRepo)
	commitService := services.NewCommitService(
		thePG,
		log,
		lessonRepo,
		containerRepo,
		unitRepo,
		rootRepo,
		tokenRepo,
		spanRepo,
		sentenceRepo,
		grammarRepo,
		expressionRepo,
		lemmaRepo,
		linkRepo,
	)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	lessonHandler := handlers.NewLessonHandler(lessonService)
	commitHandler := handlers.NewCommitHandler(commitService)
	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		LessonHandler:     lessonHandler,
		CommitHandler:     commitHandler,
		DictionaryHandler: dictionaryHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
