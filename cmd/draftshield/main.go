// DraftShield server drafts student-support documents through an external
// generation service while keeping student-identifying data behind a
// reversible redaction boundary.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/draftshield/draftshield/pkg/api"
	"github.com/draftshield/draftshield/pkg/config"
	"github.com/draftshield/draftshield/pkg/database"
	"github.com/draftshield/draftshield/pkg/llm"
	"github.com/draftshield/draftshield/pkg/services"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	// Load .env file from config directory
	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	slog.Info("Starting DraftShield", "config_dir", *configDir)

	ctx := context.Background()

	// 1. Initialize configuration
	cfg, err := config.Initialize(*configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize database
	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load database config", "error", err)
		os.Exit(1)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			slog.Error("Error closing database client", "error", err)
		}
	}()
	slog.Info("Connected to PostgreSQL database")

	// 3. Initialize generation client
	generator, err := llm.NewClient(cfg.Generation)
	if err != nil {
		slog.Error("Failed to initialize generation client", "error", err)
		os.Exit(1)
	}

	// 4. Initialize domain services
	studentService := services.NewStudentService(dbClient.DB())
	draftStore := services.NewSQLDraftStore(dbClient.DB())
	draftService := services.NewDraftService(studentService, draftStore, generator,
		cfg.Redaction, cfg.Ingest)
	slog.Info("Services initialized")

	// 5. Start HTTP server (non-blocking)
	httpServer := api.NewServer(cfg.Server, studentService, draftService, dbClient)
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// 6. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("Received shutdown signal", "signal", sig)
	case err := <-errCh:
		slog.Error("Shutting down after server error", "error", err)
	}

	// 7. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("DraftShield stopped")
}
