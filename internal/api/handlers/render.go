package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumeforge-utils/internal/api/validation"
	"resumeforge-utils/internal/background"
	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/pipeline"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

var renderValidator = validator.New()

func init() {
	validation.RegisterRenderValidators(renderValidator)
}

// RenderHandler handles the POST /api/v1/render endpoint synchronously
func RenderHandler(cfg *config.Config, renderer *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing render request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/render",
			"method":     "POST",
		})

		req, errResp := bindRenderRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		started := time.Now()
		options := renderOptions(req)

		rendered, warnings, err := renderer.Render(c.Request().Context(), &req.Template, &req.Resume, options)
		if err != nil {
			renderErr := utils.AsRenderError(err)
			logger.Error("Render failed", map[string]interface{}{
				"request_id":  requestID,
				"template_id": req.Template.ID,
				"error_kind":  string(renderErr.Kind),
				"error":       renderErr.Error(),
			})
			return c.JSON(renderErr.HTTPStatus(), models.RenderResponse{
				Success:        false,
				Error:          renderErr.UserMessage(),
				ProcessingTime: time.Since(started),
				RequestID:      requestID,
			})
		}

		logger.Info("Render completed", map[string]interface{}{
			"request_id":  requestID,
			"template_id": req.Template.ID,
			"resume_id":   req.Resume.ID,
			"warnings":    len(warnings),
		})

		return c.JSON(http.StatusOK, models.RenderResponse{
			Success:        true,
			Rendered:       rendered,
			Warnings:       warnings,
			ProcessingTime: time.Since(started),
			RequestID:      requestID,
		})
	}
}

// RenderAsyncHandler handles POST /api/v1/render/async, queueing the render
// for background processing and returning a process ID immediately
func RenderAsyncHandler(cfg *config.Config, taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing async render request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/render/async",
			"method":     "POST",
		})

		req, errResp := bindRenderRequest(c, requestID)
		if errResp != nil {
			return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
				errResp.Error, errResp.Message,
			))
		}

		processID := utils.GenerateRenderProcessID()
		options := renderOptions(req)

		logger.Info("Submitting render task for background processing", map[string]interface{}{
			"request_id":  requestID,
			"process_id":  processID,
			"template_id": req.Template.ID,
			"resume_id":   req.Resume.ID,
		})

		if err := taskManager.SubmitRenderTask(c.Request().Context(), processID, &req.Template, &req.Resume, options); err != nil {
			logger.Error("Failed to submit background render task", map[string]interface{}{
				"request_id": requestID,
				"process_id": processID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"task_submission_failed",
				fmt.Sprintf("Failed to submit render task: %v", err),
				processID,
			))
		}

		return c.JSON(http.StatusAccepted, models.CreateAsyncRenderResponse(processID))
	}
}

// RenderStatusHandler handles GET /api/v1/render/status/:processId
func RenderStatusHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		processID := c.Param("processId")
		if processID == "" {
			return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
				"invalid_request", "Process ID is required",
			))
		}

		result, err := taskManager.GetTaskResult(c.Request().Context(), processID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.CreateAsyncErrorResponse(
				"task_not_found",
				fmt.Sprintf("No task found for process ID %q", processID),
				processID,
			))
		}

		return c.JSON(http.StatusOK, taskStatusResponse(result))
	}
}

// RenderTaskListHandler handles GET /api/v1/render/tasks for monitoring
func RenderTaskListHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		results, err := taskManager.ListTasks(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"task_list_failed", err.Error(),
			))
		}

		tasks := make([]models.AsyncTaskStatusResponse, 0, len(results))
		for _, result := range results {
			tasks = append(tasks, taskStatusResponse(result))
		}

		return c.JSON(http.StatusOK, models.AsyncTaskListResponse{
			Success: true,
			Tasks:   tasks,
			Count:   len(tasks),
		})
	}
}

func bindRenderRequest(c echo.Context, requestID string) (*models.RenderRequest, *models.ErrorResponse) {
	logger := logging.GetGlobalLogger()

	var req models.RenderRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to parse request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, &models.ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request body: " + err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if err := renderValidator.Struct(&req); err != nil {
		logger.Error("Request validation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   "Request validation failed: " + err.Error(),
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	if req.Template.ID == "" {
		return nil, &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   "Template ID is required",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}
	if req.Resume.ID == "" {
		return nil, &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   "Resume ID is required",
			RequestID: requestID,
			Timestamp: time.Now(),
		}
	}

	return &req, nil
}

func renderOptions(req *models.RenderRequest) models.RenderingOptions {
	if req.Options != nil {
		return *req.Options
	}
	return models.RenderingOptions{}
}

func taskStatusResponse(result *background.TaskResult) models.AsyncTaskStatusResponse {
	response := models.AsyncTaskStatusResponse{
		ProcessID:      result.ProcessID,
		Status:         models.AsyncStatus(result.Status),
		Error:          result.Error,
		CreatedAt:      result.CreatedAt,
		CompletedAt:    result.CompletedAt,
		ProcessingTime: result.ProcessingTime,
		Metadata:       result.Metadata,
	}

	if data, ok := result.Data.(*background.RenderTaskData); ok {
		response.Data = &models.AsyncRenderCompletionData{
			Rendered: data.Rendered,
			Warnings: data.Warnings,
		}
	} else if result.Data != nil {
		response.Data = result.Data
	}

	return response
}
