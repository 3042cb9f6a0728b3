package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumeforge-utils/internal/api/routes"
	"resumeforge-utils/internal/background"
	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/pipeline"
	"resumeforge-utils/internal/retry"
	"resumeforge-utils/internal/session"
	"resumeforge-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting ResumeForge Render Engine")

	// Optional Redis backing for retry counters and task results
	var redisClient *utils.RedisClient
	var attemptStore retry.AttemptStore
	var taskStore background.TaskStore
	if cfg.Retry.Store == "redis" {
		redisClient = utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			cancel()
			logger.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		cancel()
		attemptStore = retry.NewRedisAttemptStore(redisClient, 0)
		taskStore = background.NewRedisTaskStore(redisClient, 24*time.Hour)
		logger.Info("Using Redis-backed retry and task stores")
	}

	// Rendering pipeline
	renderer := pipeline.New(cfg, nil, nil)

	// Customization session manager
	sessions := session.NewManager(cfg)
	sessions.Start(context.Background())

	// Background task manager for async renders
	logger.Info("Initializing background task manager")
	executor := retry.NewExecutor(attemptStore, cfg.Retry.MaxRetries)
	taskManager := background.NewTaskManager(cfg, taskStore, renderer, executor)
	if err := taskManager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{"error": err.Error()})
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, renderer, sessions, taskManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop the task manager first so queued renders drain
		logger.Info("Stopping background task manager...")
		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping session manager...")
		sessions.Stop()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
			}
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
