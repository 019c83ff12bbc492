package main

import (
	_ "embed"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"promptstudio/internal/artifact"
	"promptstudio/internal/config"
	"promptstudio/internal/generator"
	"promptstudio/internal/http"
	"promptstudio/internal/report"
	"promptstudio/internal/service"
	"promptstudio/internal/storage"
)

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := storage.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository and artifact store
	promptRepo := storage.NewPromptRepo(db)
	artifacts := artifact.NewDiskStore(cfg.ImageDir)

	// Create image generation client (external service layer)
	imageClient := generator.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ImageModel)

	// Create report generator with the text-based alignment scorer
	reports := report.NewGenerator(report.HeuristicScorer{})

	// Create session service
	sessions := service.NewSessionService(imageClient, artifacts, promptRepo, reports)
	slog.Info("Session service initialized", "model", cfg.ImageModel, "image_dir", cfg.ImageDir)

	// Create router with dependencies
	deps := &http.Deps{
		Sessions:  sessions,
		DB:        db,
		ImageDir:  cfg.ImageDir,
		IndexHTML: indexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
