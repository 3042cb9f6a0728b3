package handlers

import (
	"net/http"
	"time"

	"resumeforge-utils/internal/background"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/pipeline"
	"resumeforge-utils/internal/session"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can accept render work
func ReadinessHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Debug("Readiness check requested", map[string]interface{}{"request_id": requestID})

		checks := map[string]string{
			"api":     "ok",
			"workers": "ok",
		}
		status := "ready"
		code := http.StatusOK

		if taskManager != nil && !taskManager.IsHealthy() {
			checks["workers"] = "unavailable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(code, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Liveness check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status including per-stage
// pipeline timings, active sessions, and queued tasks
func StatusHandler(renderer *pipeline.Pipeline, sessions *session.Manager, taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		logger.Debug("Status check requested", map[string]interface{}{"request_id": requestID})

		response := models.StatusResponse{
			Service:   "ResumeForge Render Engine",
			Version:   serviceVersion,
			Status:    "operational",
			Timestamp: time.Now(),
			Uptime:    time.Since(startTime),
		}

		if renderer != nil {
			response.StageStats = renderer.Metrics().Snapshot()
		}
		if sessions != nil {
			response.Sessions = sessions.Count()
		}
		if taskManager != nil {
			if tasks, err := taskManager.ListTasks(c.Request().Context()); err == nil {
				active := 0
				for _, task := range tasks {
					if task.Status == background.TaskStatusAccepted || task.Status == background.TaskStatusProcessing {
						active++
					}
				}
				response.ActiveTasks = active
			}
		}

		return c.JSON(http.StatusOK, response)
	}
}
