package main

import (
	"os"

	"tintaku/internal/blob"
	"tintaku/internal/config"
	"tintaku/internal/db"
	"tintaku/internal/handlers"
	"tintaku/internal/seed"
	"tintaku/internal/services"
	"tintaku/internal/store"
	"tintaku/internal/utils"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, reading env vars from system")
	}
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	cfg := config.Load()

	// The side tables (comments, likes) always live in the local database,
	// whichever record backend serves the collection.
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	sideStore := store.NewSideStore(conn, cfg.OpTimeout)

	var recordStore store.RecordStore
	switch cfg.StoreBackend {
	case config.BackendRemote:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		uploader := blob.NewClient(cfg.BlobEndpoint, cfg.BlobToken)
		recordStore = store.NewRemoteStore(rdb, uploader, cfg.Collection, cfg.OpTimeout)
		logrus.WithField("collection", cfg.Collection).Info("using remote record store")
	case config.BackendLocal:
		recordStore = store.NewLocalStore(conn, cfg.OpTimeout)
		logrus.Info("using local record store")
	default:
		logrus.Fatalf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	listCache, err := utils.NewCache(64)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create cache")
	}

	cerpenService := services.NewCerpenService(recordStore, seed.Default(), listCache)
	engagementService := services.NewEngagementService(sideStore)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("tintaku_session", sessionStore))

	// Static frontend
	r.Static("/static", cfg.StaticDir)

	// Handlers
	storyHandler := handlers.NewStoryHandler(cerpenService, engagementService)
	adminHandler := handlers.NewAdminHandler(cerpenService)
	settingsHandler := handlers.NewSettingsHandler()

	api := r.Group("/api")
	{
		api.GET("/cerpen", storyHandler.List)
		api.GET("/cerpen/random", storyHandler.Random)
		api.GET("/cerpen/:id", storyHandler.Detail)
		api.GET("/cerpen/:id/comments", storyHandler.ListComments)
		api.POST("/cerpen/:id/comments", storyHandler.CreateComment)
		api.GET("/cerpen/:id/likes", storyHandler.GetLikes)
		api.POST("/cerpen/:id/like", storyHandler.ToggleLike)
		api.GET("/categories", storyHandler.Categories)
		api.GET("/theme", settingsHandler.GetTheme)
		api.POST("/theme", settingsHandler.SetTheme)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/cerpen", adminHandler.Create)
		admin.DELETE("/cerpen/:id", adminHandler.Delete)
		admin.GET("/export", adminHandler.Export)
		admin.POST("/import", adminHandler.Import)
	}

	r.GET("/metrics", func(c *gin.Context) {
		metrics.WritePrometheus(c.Writer, true)
	})

	logrus.Infof("tintaku server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
