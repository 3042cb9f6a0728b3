package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge-utils/internal/layout"
	"resumeforge-utils/internal/theme"
	"resumeforge-utils/internal/typography"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// builtinTemplates is the starter catalog served until templates move to
// persistent storage. TODO: back this with a template store once the
// authoring workflow lands.
var builtinTemplates = map[string]models.ResumeTemplate{
	"tmpl_modern": {
		ID:      "tmpl_modern",
		Name:    "Modern",
		Version: "1.0.0",
		Sections: []models.SectionDefinition{
			{ID: "contact", Type: "contact", Required: true, Fields: []models.FieldRule{
				{Field: "name", Required: true},
				{Field: "email", Required: true},
			}},
			{ID: "summary", Type: "text", Placeholder: "A short professional pitch"},
			{ID: "experience", Type: "timeline", Required: true},
			{ID: "education", Type: "timeline"},
			{ID: "skills", Type: "groups"},
			{ID: "projects", Type: "cards"},
		},
	},
	"tmpl_classic": {
		ID:      "tmpl_classic",
		Name:    "Classic",
		Version: "1.0.0",
		Sections: []models.SectionDefinition{
			{ID: "contact", Type: "contact", Required: true, Fields: []models.FieldRule{
				{Field: "name", Required: true},
				{Field: "email", Required: true},
				{Field: "phone", Required: true},
			}},
			{ID: "summary", Type: "text"},
			{ID: "experience", Type: "timeline", Required: true},
			{ID: "education", Type: "timeline", Required: true},
			{ID: "skills", Type: "groups"},
			{ID: "certifications", Type: "list"},
		},
	},
	"tmpl_compact": {
		ID:      "tmpl_compact",
		Name:    "Compact",
		Version: "1.0.0",
		Sections: []models.SectionDefinition{
			{ID: "contact", Type: "contact", Required: true},
			{ID: "experience", Type: "timeline", Required: true},
			{ID: "education", Type: "timeline"},
			{ID: "skills", Type: "groups"},
		},
	},
}

// TemplateListHandler handles GET /api/v1/templates
func TemplateListHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		templates := make([]models.ResumeTemplate, 0, len(builtinTemplates))
		for _, template := range builtinTemplates {
			templates = append(templates, template)
		}
		sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })

		return c.JSON(http.StatusOK, map[string]interface{}{
			"templates": templates,
			"count":     len(templates),
		})
	}
}

// TemplateGetHandler handles GET /api/v1/templates/:templateId
func TemplateGetHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		templateID := c.Param("templateId")
		template, ok := builtinTemplates[templateID]
		if !ok {
			notFound := utils.NewTemplateNotFoundError(templateID)
			return c.JSON(notFound.HTTPStatus(), models.ErrorResponse{
				Error:     string(notFound.Kind),
				Message:   notFound.UserMessage(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, template)
	}
}

// CustomizationOptionsHandler handles GET /api/v1/templates/options,
// listing the named themes, font combinations, and layout presets a client
// can apply to a session
func CustomizationOptionsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"themes":            theme.ThemeNames(),
			"font_combinations": typography.CombinationNames(),
			"layout_presets":    layout.PresetNames(),
		})
	}
}
