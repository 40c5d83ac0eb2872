package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tag_tracker_go/internal/config"
	"tag_tracker_go/internal/router"
	"tag_tracker_go/pkg/database"
	"tag_tracker_go/pkg/log"
	"tag_tracker_go/pkg/vision"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	var extractor vision.Extractor
	if cfg.Anthropic.APIKey == "" {
		log.Warnw("ANTHROPIC_API_KEY is not set; /upload will fail until it is configured")
	} else {
		extractor, err = vision.NewAnthropicExtractor(vision.AnthropicConfig{
			APIKey:    cfg.Anthropic.APIKey,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			Timeout:   cfg.Anthropic.Timeout,
			BaseURL:   cfg.Anthropic.BaseURL,
		})
		if err != nil {
			log.Fatal("Failed to build vision client", err)
		}
	}

	gin.SetMode(cfg.Server.Mode)
	r, err := router.New(router.Dependencies{
		DB:               db,
		Extractor:        extractor,
		ReturnWindowDays: cfg.Tag.ReturnWindowDays,
	})
	if err != nil {
		log.Fatal("Failed to build router", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received, draining requests...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", err)
	}
	if err := database.Close(db); err != nil {
		log.Error("Failed to close database", err)
	}

	log.Info("Server stopped")
}
