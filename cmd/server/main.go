package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"releaseradar/backend/internal/analytics"
	"releaseradar/backend/internal/auth"
	"releaseradar/backend/internal/config"
	"releaseradar/backend/internal/database"
	"releaseradar/backend/internal/handler"
	"releaseradar/backend/internal/logger"
	"releaseradar/backend/internal/scheduler"
	"releaseradar/backend/internal/service"
	"releaseradar/backend/internal/steam"
	"releaseradar/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "releaseradar/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           ReleaseRadar API
// @version         1.0
// @description     Catalog of upcoming game releases with monthly genre analytics.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	if err := logger.Initialize(cfg.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := database.Connect(cfg.DatabaseURL)
	catalog := store.NewPGStore(db)

	snapshots, err := analytics.NewClickHouseStore(cfg.ClickHouseDSN)
	if err != nil {
		logger.Fatal("failed to configure analytics store", zap.Error(err))
	}
	// Schema setup is best effort: an unreachable analytics store must not
	// prevent startup, reads fall back and writes report SinkUnavailable.
	schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := snapshots.EnsureSchema(schemaCtx); err != nil {
		logger.Warn("analytics store schema not ensured", zap.Error(err))
	}
	cancel()

	source := steam.NewClient(cfg.SteamStoreURL, cfg.SteamHTTPTimeout, cfg.SteamMaxUpcoming)

	emitter := service.NewSnapshotEmitter(snapshots)
	syncService := service.NewSyncService(catalog, source, emitter, cfg.SyncConcurrency)
	gameService := service.NewGameService(catalog)
	analyticsService := service.NewAnalyticsService(catalog, snapshots)

	h := handler.New(catalog, gameService, analyticsService, syncService)

	sched := scheduler.New(syncService, cfg.SyncInterval)
	if err := sched.Start(context.Background()); err != nil {
		logger.Fatal("failed to start sync scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
		}

		// Public catalog routes
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", h.GetGames)
			gameRoutes.GET("/calendar", h.GetCalendar)
			gameRoutes.POST("/sync", auth.AuthMiddleware(), h.SyncMonth)
		}

		// Analytics routes
		analyticsRoutes := apiV1.Group("/analytics")
		{
			analyticsRoutes.GET("/genres", h.TopGenres)
			analyticsRoutes.GET("/dynamics", h.GenreDynamics)
		}

		// Tag routes
		apiV1.GET("/tags", h.GetTags)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.DELETE("/tags/:id", h.DeleteTag)
		}
	}

	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
