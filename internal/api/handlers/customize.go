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

// customizeHandler wraps the bind/lookup/mutate/respond cycle shared by
// every customization endpoint. The mutation runs under the session lock.
func customizeHandler[T any](sessions *session.Manager, action string,
	mutate func(engine *customization.Engine, req *T) error) echo.HandlerFunc {

	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		var req T
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

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		response := models.SessionResponse{SessionID: sess.ID, RequestID: requestID}
		err := sess.With(func(engine *customization.Engine) error {
			if err := mutate(engine, &req); err != nil {
				return err
			}
			custom := engine.Customization()
			response.Customization = &custom
			return nil
		})
		if err != nil {
			renderErr := utils.AsRenderError(err)
			logger.Warn("Customization rejected", map[string]interface{}{
				"request_id": requestID,
				"session_id": sess.ID,
				"action":     action,
				"error_kind": string(renderErr.Kind),
				"error":      renderErr.Error(),
			})
			return c.JSON(renderErr.HTTPStatus(), models.ErrorResponse{
				Error:     string(renderErr.Kind),
				Message:   renderErr.UserMessage(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, response)
	}
}

// ApplyThemeHandler handles POST /api/v1/sessions/:sessionId/theme
func ApplyThemeHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "apply_theme",
		func(engine *customization.Engine, req *models.ApplyThemeRequest) error {
			return engine.ApplyColorTheme(req.Theme)
		})
}

// CustomizeColorHandler handles POST /api/v1/sessions/:sessionId/colors
func CustomizeColorHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "customize_color",
		func(engine *customization.Engine, req *models.CustomizeColorRequest) error {
			return engine.CustomizeColor(req.Role, req.Color)
		})
}

// ApplyFontCombinationHandler handles POST /api/v1/sessions/:sessionId/fonts
func ApplyFontCombinationHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "apply_font_combination",
		func(engine *customization.Engine, req *models.FontCombinationRequest) error {
			return engine.ApplyFontCombination(req.Combination)
		})
}

// CustomizeTypographyHandler handles POST /api/v1/sessions/:sessionId/typography
func CustomizeTypographyHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "customize_typography",
		func(engine *customization.Engine, req *models.CustomizeTypographyRequest) error {
			return engine.CustomizeTypography(req.Overrides)
		})
}

// ApplyLayoutPresetHandler handles POST /api/v1/sessions/:sessionId/layout/preset
func ApplyLayoutPresetHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "apply_layout_preset",
		func(engine *customization.Engine, req *models.LayoutPresetRequest) error {
			return engine.ApplyLayoutPreset(req.Preset)
		})
}

// CustomizeLayoutHandler handles POST /api/v1/sessions/:sessionId/layout
func CustomizeLayoutHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "customize_layout",
		func(engine *customization.Engine, req *models.CustomizeLayoutRequest) error {
			return engine.CustomizeLayout(req.Overrides)
		})
}

// ToggleSectionHandler handles POST /api/v1/sessions/:sessionId/sections/toggle
func ToggleSectionHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "toggle_section",
		func(engine *customization.Engine, req *models.ToggleSectionRequest) error {
			return engine.ToggleSection(req.SectionID)
		})
}

// ReorderSectionsHandler handles POST /api/v1/sessions/:sessionId/sections/reorder
func ReorderSectionsHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "reorder_sections",
		func(engine *customization.Engine, req *models.ReorderSectionsRequest) error {
			return engine.ReorderSections(req.OrderedIDs)
		})
}

// ApplyRoleCustomizationHandler handles POST /api/v1/sessions/:sessionId/role
func ApplyRoleCustomizationHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "apply_role_customization",
		func(engine *customization.Engine, req *models.RoleCustomizationRequest) error {
			return engine.ApplyRoleCustomization(req.Role)
		})
}

// ResetCustomizationHandler handles POST /api/v1/sessions/:sessionId/reset
func ResetCustomizationHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		response := models.SessionResponse{SessionID: sess.ID, RequestID: requestID}
		err := sess.With(func(engine *customization.Engine) error {
			if err := engine.ResetToDefaults(); err != nil {
				return err
			}
			custom := engine.Customization()
			response.Customization = &custom
			return nil
		})
		if err != nil {
			renderErr := utils.AsRenderError(err)
			return c.JSON(renderErr.HTTPStatus(), models.ErrorResponse{
				Error:     string(renderErr.Kind),
				Message:   renderErr.UserMessage(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, response)
	}
}

// UndoHandler handles POST /api/v1/sessions/:sessionId/undo
func UndoHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		var response models.UndoResponse
		_ = sess.With(func(engine *customization.Engine) error {
			response.Undone = engine.UndoLastChange()
			custom := engine.Customization()
			response.Customization = &custom
			return nil
		})

		return c.JSON(http.StatusOK, response)
	}
}

// ExportCustomizationHandler handles GET /api/v1/sessions/:sessionId/export,
// returning the portable snapshot document
func ExportCustomizationHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		var payload []byte
		err := sess.With(func(engine *customization.Engine) error {
			var exportErr error
			payload, exportErr = engine.Export()
			return exportErr
		})
		if err != nil {
			renderErr := utils.AsRenderError(err)
			return c.JSON(renderErr.HTTPStatus(), models.ErrorResponse{
				Error:     string(renderErr.Kind),
				Message:   renderErr.UserMessage(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSONBlob(http.StatusOK, payload)
	}
}

// ImportCustomizationHandler handles POST /api/v1/sessions/:sessionId/import
func ImportCustomizationHandler(sessions *session.Manager) echo.HandlerFunc {
	return customizeHandler(sessions, "import_customization",
		func(engine *customization.Engine, req *models.ImportCustomizationRequest) error {
			return engine.Import(req.Snapshot)
		})
}

// AnalyticsHandler handles GET /api/v1/sessions/:sessionId/analytics
func AnalyticsHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		response := models.SessionResponse{SessionID: sess.ID, RequestID: requestID}
		_ = sess.With(func(engine *customization.Engine) error {
			analytics := engine.Analytics(nil)
			response.Analytics = &analytics
			return nil
		})

		return c.JSON(http.StatusOK, response)
	}
}

// StylesheetHandler handles GET /api/v1/sessions/:sessionId/css, returning
// the generated stylesheet as text/css
func StylesheetHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		sess, errResp := lookupSession(c, sessions, requestID)
		if errResp != nil {
			return c.JSON(http.StatusNotFound, errResp)
		}

		var css string
		_ = sess.With(func(engine *customization.Engine) error {
			css = engine.GenerateCSS()
			return nil
		})

		return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css))
	}
}
