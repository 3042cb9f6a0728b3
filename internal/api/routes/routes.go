package routes

import (
	"net/http"
	"time"

	"resumeforge-utils/internal/api/handlers"
	"resumeforge-utils/internal/api/middleware"
	"resumeforge-utils/internal/background"
	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/pipeline"
	"resumeforge-utils/internal/session"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, renderer *pipeline.Pipeline, sessions *session.Manager, taskManager background.TaskManager) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.RateLimitConfig(cfg))
	// Render endpoints run the full pipeline and get a longer budget
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(taskManager))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(renderer, sessions, taskManager))

	// Prometheus metrics
	if cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Rendering routes
		render := v1.Group("/render")
		{
			render.POST("", handlers.RenderHandler(cfg, renderer))
			render.POST("/async", handlers.RenderAsyncHandler(cfg, taskManager))
			render.GET("/status/:processId", handlers.RenderStatusHandler(taskManager))
			render.GET("/tasks", handlers.RenderTaskListHandler(taskManager))
		}

		// Template catalog routes
		templates := v1.Group("/templates")
		{
			templates.GET("", handlers.TemplateListHandler())
			templates.GET("/options", handlers.CustomizationOptionsHandler())
			templates.GET("/:templateId", handlers.TemplateGetHandler())
		}

		// Customization session routes
		sessionsGroup := v1.Group("/sessions")
		{
			sessionsGroup.POST("", handlers.CreateSessionHandler(sessions))
			sessionsGroup.GET("/:sessionId", handlers.GetSessionHandler(sessions))
			sessionsGroup.DELETE("/:sessionId", handlers.DeleteSessionHandler(sessions))

			sessionsGroup.POST("/:sessionId/theme", handlers.ApplyThemeHandler(sessions))
			sessionsGroup.POST("/:sessionId/colors", handlers.CustomizeColorHandler(sessions))
			sessionsGroup.POST("/:sessionId/fonts", handlers.ApplyFontCombinationHandler(sessions))
			sessionsGroup.POST("/:sessionId/typography", handlers.CustomizeTypographyHandler(sessions))
			sessionsGroup.POST("/:sessionId/layout", handlers.CustomizeLayoutHandler(sessions))
			sessionsGroup.POST("/:sessionId/layout/preset", handlers.ApplyLayoutPresetHandler(sessions))
			sessionsGroup.POST("/:sessionId/sections/toggle", handlers.ToggleSectionHandler(sessions))
			sessionsGroup.POST("/:sessionId/sections/reorder", handlers.ReorderSectionsHandler(sessions))
			sessionsGroup.POST("/:sessionId/role", handlers.ApplyRoleCustomizationHandler(sessions))
			sessionsGroup.POST("/:sessionId/reset", handlers.ResetCustomizationHandler(sessions))
			sessionsGroup.POST("/:sessionId/undo", handlers.UndoHandler(sessions))
			sessionsGroup.GET("/:sessionId/export", handlers.ExportCustomizationHandler(sessions))
			sessionsGroup.POST("/:sessionId/import", handlers.ImportCustomizationHandler(sessions))
			sessionsGroup.GET("/:sessionId/analytics", handlers.AnalyticsHandler(sessions))
			sessionsGroup.GET("/:sessionId/css", handlers.StylesheetHandler(sessions))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "ResumeForge Render Engine",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
