package pipeline

import (
	"context"
	"fmt"
	"strings"

	"resumeforge-utils/internal/layout"
	"resumeforge-utils/internal/sections"
	"resumeforge-utils/internal/theme"
	"resumeforge-utils/internal/typography"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// Stage names, in execution order.
const (
	StageValidation        = "validation"
	StageDataBinding       = "dataBinding"
	StageContentProcessing = "contentProcessing"
	StageStyling           = "styling"
	StageOptimization      = "optimization"
	StageOutput            = "output"
)

var supportedFormats = map[string]bool{
	"":     true, // defaults to html
	"html": true,
}

// stageValidation rejects invalid template or resume identity and downgrades
// unsupported output formats to html with a warning.
func (p *Pipeline) stageValidation(ctx context.Context, rc *RenderingContext) error {
	if rc.Template == nil || rc.Template.ID == "" {
		return utils.NewValidationError("template is missing or has no id")
	}
	if len(rc.Template.Sections) == 0 {
		return utils.NewValidationError(fmt.Sprintf("template %q defines no sections", rc.Template.ID))
	}
	if rc.Resume == nil || rc.Resume.ID == "" {
		return utils.NewValidationError("resume is missing or has no id")
	}

	if !supportedFormats[rc.Options.Format] {
		rc.warn(StageValidation,
			fmt.Sprintf("unsupported output format %q, falling back to html", rc.Options.Format),
			"output produced as html")
		rc.Options.Format = "html"
	}
	return nil
}

// stageDataBinding delegates to the binder. Missing-required-field errors
// abort the render; other binding errors are carried as recoverable.
func (p *Pipeline) stageDataBinding(ctx context.Context, rc *RenderingContext) error {
	result, err := p.binder.Bind(ctx, rc.Template, rc.Resume, rc.Options.Customizations)
	if err != nil {
		return err
	}
	rc.Binding = result

	for _, w := range result.Warnings {
		rc.warn(StageDataBinding, w.Message, w.Impact)
	}
	if result.HasUnrecoverableError() {
		for _, e := range result.Errors {
			if e.Code == models.BindingErrorMissingRequired {
				return utils.NewValidationError(e.Message)
			}
		}
	}
	for _, e := range result.Errors {
		rc.Errors = append(rc.Errors, e)
	}
	return nil
}

// stageContentProcessing builds the normalized per-section records, skipping
// sections with no bound data.
func (p *Pipeline) stageContentProcessing(ctx context.Context, rc *RenderingContext) error {
	if rc.Binding == nil {
		return fmt.Errorf("no binding result available")
	}

	layoutSettings, colors, visibility := rc.effectiveSettings()

	for _, definition := range rc.Template.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, bound := rc.Binding.Data[definition.ID]
		if !bound {
			continue
		}

		sectionConfig, known := visibility[definition.ID]
		if !known {
			sectionConfig = models.SectionConfig{
				ID:      definition.ID,
				Visible: true,
				Order:   len(rc.Sections) + 1,
			}
		}
		if !sectionConfig.Visible {
			continue
		}

		rc.Sections = append(rc.Sections, models.ProcessedSection{
			ID:         definition.ID,
			Type:       definition.Type,
			Data:       data,
			Layout:     layoutSettings,
			Styling:    colors,
			Visibility: sectionConfig,
		})
	}

	markup, err := renderMarkup(rc)
	if err != nil {
		return err
	}
	rc.Markup = markup
	return nil
}

// stageStyling assembles the full stylesheet: colors, typography, layout,
// per-section rules, then responsive breakpoints.
func (p *Pipeline) stageStyling(ctx context.Context, rc *RenderingContext) error {
	layoutSettings, colors, visibility := rc.effectiveSettings()

	var typo models.TypographySettings
	if rc.Options.Customizations != nil && rc.Options.Customizations.Typography != nil {
		typo = *rc.Options.Customizations.Typography
	} else {
		typo = rc.Template.Styling.Fonts
		if typo.Body.Family == "" {
			typo = typography.DefaultTypography()
		}
	}

	parts := []string{
		theme.CSSVariables(colors),
		typography.CSS(typo),
		layout.CSS(layoutSettings),
		sections.CSS(visibility),
		responsiveCSS(),
	}
	rc.Stylesheet = strings.Join(parts, "\n")
	return nil
}

// stageOptimization applies the configured transforms. Any failure here is
// degraded to a warning by the orchestrator and the unoptimized artifacts
// are kept.
func (p *Pipeline) stageOptimization(ctx context.Context, rc *RenderingContext) error {
	opts := rc.Options.Optimization
	if !opts.MinifyHTML && !opts.MinifyCSS && !opts.InlineCSS && !opts.Compress {
		return nil
	}
	return optimizeFn(ctx, rc, opts)
}

// optimizeFn is swappable in tests.
var optimizeFn = optimize

// stageOutput assembles the final artifact with sizes, checksum and timing.
func (p *Pipeline) stageOutput(ctx context.Context, rc *RenderingContext) error {
	if rc.Markup == "" {
		markup, err := renderMarkup(rc)
		if err != nil {
			return err
		}
		rc.Markup = markup
	}

	content := models.RenderedContent{
		HTML:       rc.Markup,
		CSS:        rc.Stylesheet,
		JavaScript: rc.Script,
		Assets:     rc.Assets,
	}
	htmlSize := len(content.HTML)
	cssSize := len(content.CSS)

	rc.Result = &models.RenderedTemplate{
		ID:             utils.GenerateRenderID(),
		TemplateID:     rc.Template.ID,
		ResumeID:       rc.Resume.ID,
		Customizations: rc.Options.Customizations,
		Rendered:       content,
		Metadata: models.RenderMetadata{
			GeneratedAt:   rc.StartedAt,
			RenderingTime: elapsedSince(rc.StartedAt),
			Version:       pipelineVersion,
			Checksum:      utils.RollingChecksum(content.HTML + content.CSS + content.JavaScript),
			Size: models.RenderSize{
				HTML:  htmlSize,
				CSS:   cssSize,
				Total: htmlSize + cssSize + len(content.JavaScript),
			},
		},
	}
	return nil
}

// effectiveSettings resolves layout, colors and visibility from the
// customization snapshot when present, else the template defaults.
func (rc *RenderingContext) effectiveSettings() (models.LayoutSettings, models.ColorScheme, models.SectionVisibility) {
	layoutSettings := rc.Template.Layout
	if layoutSettings.Columns == 0 {
		layoutSettings = layout.DefaultLayout()
	}
	colors := rc.Template.Styling.Colors
	if colors.Primary == "" {
		colors = theme.BaseTheme()
	}
	visibility := sections.DefaultVisibility()

	if c := rc.Options.Customizations; c != nil {
		if c.Layout != nil {
			layoutSettings = *c.Layout
		}
		if c.ColorScheme != nil {
			colors = *c.ColorScheme
		}
		if len(c.SectionVisibility) > 0 {
			visibility = c.SectionVisibility
		}
	}
	return layoutSettings, colors, visibility
}

// responsiveCSS emits the breakpoint rules shared by every render.
func responsiveCSS() string {
	return `@media screen and (max-width: 640px) {
  .resume-page {
    width: 100%;
    min-height: auto;
    padding: 0.5in;
  }
  .resume-body {
    column-count: 1;
  }
}

@media print {
  .resume-page {
    margin: 0;
    box-shadow: none;
  }
}
`
}
