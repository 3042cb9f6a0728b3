package models

import "time"

// OptimizationOptions selects the transforms applied by the optional
// optimization stage.
type OptimizationOptions struct {
	MinifyHTML bool `json:"minify_html"`
	MinifyCSS  bool `json:"minify_css"`
	InlineCSS  bool `json:"inline_css"`
	Compress   bool `json:"compress"`
}

// RenderingOptions configures one render call.
type RenderingOptions struct {
	Format         string                 `json:"format,omitempty"` // defaults to "html"
	Customizations *CustomizationSnapshot `json:"customizations,omitempty"`
	Optimization   OptimizationOptions    `json:"optimization"`
	Timeout        time.Duration          `json:"timeout,omitempty"` // global stage timeout override
	UserID         string                 `json:"user_id,omitempty"`
}

// ProcessedSection is the normalized per-section record produced by the
// content-processing stage.
type ProcessedSection struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Data       interface{}    `json:"data"`
	Layout     LayoutSettings `json:"layout"`
	Styling    ColorScheme    `json:"styling"`
	Visibility SectionConfig  `json:"visibility"`
}

// RenderedContent is the document payload of a finished render.
type RenderedContent struct {
	HTML       string   `json:"html"`
	CSS        string   `json:"css"`
	JavaScript string   `json:"javascript,omitempty"`
	Assets     []string `json:"assets,omitempty"`
}

// RenderSize reports byte sizes of the rendered artifacts.
type RenderSize struct {
	HTML  int `json:"html"`
	CSS   int `json:"css"`
	Total int `json:"total"`
}

// RenderMetadata describes how and when a render was produced.
type RenderMetadata struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	RenderingTime time.Duration `json:"rendering_time"`
	Version       string        `json:"version"`
	Checksum      string        `json:"checksum"`
	Size          RenderSize    `json:"size"`
}

// RenderedTemplate is the final artifact returned by the pipeline.
type RenderedTemplate struct {
	ID             string                 `json:"id"`
	TemplateID     string                 `json:"template_id"`
	ResumeID       string                 `json:"resume_id"`
	Customizations *CustomizationSnapshot `json:"customizations,omitempty"`
	Rendered       RenderedContent        `json:"rendered"`
	Metadata       RenderMetadata         `json:"metadata"`
}

// RenderWarning is a non-fatal observation recorded during a render.
type RenderWarning struct {
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
	Impact  string `json:"impact,omitempty"`
}

// StageMetric is one entry of the per-stage performance surface.
type StageMetric struct {
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Count     int64         `json:"count"`
}
