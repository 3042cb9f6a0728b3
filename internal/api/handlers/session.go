package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge-utils/internal/customization"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/session"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// CreateSessionHandler handles POST /api/v1/sessions, opening a
// customization session for a template
func CreateSessionHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req models.CreateSessionRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request body: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := renderValidator.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   "Request validation failed: " + err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		sess := sessions.Create(req.TemplateID, req.UserID)

		logger.Info("Customization session created", map[string]interface{}{
			"request_id":  requestID,
			"session_id":  sess.ID,
			"template_id": req.TemplateID,
		})

		response := models.SessionResponse{
			SessionID: sess.ID,
			RequestID: requestID,
		}
		_ = sess.With(func(engine *customization.Engine) error {
			custom := engine.Customization()
			response.Customization = &custom
			return nil
		})

		return c.JSON(http.StatusCreated, response)
	}
}

// GetSessionHandler handles GET /api/v1/sessions/:sessionId, returning the
// current customization state with its generated stylesheet
func GetSessionHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		response := models.SessionResponse{
			SessionID: sess.ID,
			RequestID: requestID,
		}
		_ = sess.With(func(engine *customization.Engine) error {
			custom := engine.Customization()
			response.Customization = &custom
			response.CSS = engine.GenerateCSS()
			return nil
		})

		return c.JSON(http.StatusOK, response)
	}
}

// DeleteSessionHandler handles DELETE /api/v1/sessions/:sessionId
func DeleteSessionHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		sessionID := c.Param("sessionId")
		if !sessions.Delete(sessionID) {
			return c.JSON(http.StatusNotFound, sessionNotFound(sessionID, requestID))
		}

		logger.Info("Customization session deleted", map[string]interface{}{
			"request_id": requestID,
			"session_id": sessionID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}

func lookupSession(c echo.Context, sessions *session.Manager, requestID string) (*session.Session, *models.ErrorResponse) {
	sessionID := c.Param("sessionId")
	sess, ok := sessions.Get(sessionID)
	if !ok {
		return nil, sessionNotFound(sessionID, requestID)
	}
	return sess, nil
}

func sessionNotFound(sessionID, requestID string) *models.ErrorResponse {
	return &models.ErrorResponse{
		Error:     "session_not_found",
		Message:   "No customization session found for ID " + sessionID,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
}
