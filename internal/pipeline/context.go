package pipeline

import (
	"time"

	"resumeforge-utils/pkg/models"
)

// RenderingContext is the shared state one render call threads through the
// stages. Each Render constructs a fresh one, so concurrent renders never
// share mutable state.
type RenderingContext struct {
	Template *models.ResumeTemplate
	Resume   *models.ResumeData
	Options  models.RenderingOptions

	Binding    *models.BindingResult
	Sections   []models.ProcessedSection
	Stylesheet string
	Markup     string
	Script     string
	Assets     []string

	Warnings []models.RenderWarning
	Errors   []models.BindingError

	Result *models.RenderedTemplate

	StartedAt time.Time
}

func (rc *RenderingContext) warn(stage, message, impact string) {
	rc.Warnings = append(rc.Warnings, models.RenderWarning{
		Stage:   stage,
		Message: message,
		Impact:  impact,
	})
}
