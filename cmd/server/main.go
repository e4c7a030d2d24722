package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/config"
	"github.com/pushp314/learnhub-backend/internal/database"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/internal/routes"
	"github.com/pushp314/learnhub-backend/internal/services"
	"github.com/pushp314/learnhub-backend/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting LearnHub Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database & Redis
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	database.InitRedis(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword)

	// --- Database Migration Stage ---
	logger.Info().Msg("Running database migrations (stage 1: tables)...")

	tableModels := []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Topic{},
		&models.YoutubeChannel{},
		&models.Course{},
		&models.Video{},
		&models.CourseAssessment{},
		&models.VideoProgress{},
	}

	// Create tables first without constraints, then run again to add them.
	db.Config.DisableForeignKeyConstraintWhenMigrating = true
	for _, m := range tableModels {
		if err := db.AutoMigrate(m); err != nil {
			logger.Fatal().Err(err).Msgf("Failed to migrate table for %T", m)
		}
	}

	logger.Info().Msg("Running database migrations (stage 2: constraints)...")
	db.Config.DisableForeignKeyConstraintWhenMigrating = false
	if err := db.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to add database constraints")
	}
	logger.Info().Msg("Database migrations complete")

	// 2. Build Services & Handlers
	youtube := services.NewYouTubeClient(config.AppConfig.YouTubeAPIKey)
	courseService := services.NewCourseService(db, youtube)
	analyticsService := services.NewAnalyticsService(db)

	authHandler := handlers.NewAuthHandler(db)
	courseHandler := handlers.NewCourseHandler(courseService)
	topicHandler := handlers.NewTopicHandler(db)
	userHandler := handlers.NewUserHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// 3. Setup Router
	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimit(middleware.GeneralLimiter))

	// 4. Register Routes
	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api, authHandler)
		routes.RegisterCourseRoutes(api, courseHandler, db)
		routes.RegisterTopicRoutes(api, topicHandler, db)
		routes.RegisterUserRoutes(api, userHandler, db)
		routes.RegisterAnalyticsRoutes(api, analyticsHandler, db)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
