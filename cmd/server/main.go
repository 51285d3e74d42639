package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csaugo/analisevoc/internal/analysis"
	"github.com/csaugo/analisevoc/internal/api"
	"github.com/csaugo/analisevoc/internal/cache"
	"github.com/csaugo/analisevoc/internal/config"
	"github.com/csaugo/analisevoc/internal/database"
	"github.com/csaugo/analisevoc/internal/notifications"
	"github.com/csaugo/analisevoc/internal/ratelimit"
	"github.com/csaugo/analisevoc/internal/scheduler"
	"github.com/csaugo/analisevoc/internal/sources"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Voz do Cliente API")

	db, err := database.Connect(cfg.DSN(), cfg.Debug)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// One cache shared by both platforms; keys are platform-prefixed
	searchCache := cache.New(cache.DefaultTTL, nil)

	twitterSource := sources.NewTwitterSource(
		cfg.TwitterBearerToken, cfg.SearchLanguage, cfg.SearchCountry,
		searchCache, ratelimit.NewTwitter(nil),
	)
	redditSource := sources.NewRedditSource(
		cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent,
		searchCache, ratelimit.NewReddit(nil),
	)

	notificationService := notifications.NewService(cfg)
	analysisService := analysis.NewService(db, []sources.Source{twitterSource, redditSource}, notificationService)

	schedulerService := scheduler.NewService(cfg.CacheSweepSchedule, searchCache)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewServer(analysisService).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
