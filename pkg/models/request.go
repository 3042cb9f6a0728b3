package models

// RenderRequest is the payload for the render endpoints.
type RenderRequest struct {
	Template ResumeTemplate    `json:"template" validate:"required"`
	Resume   ResumeData        `json:"resume" validate:"required"`
	Options  *RenderingOptions `json:"options,omitempty"`
}

// CreateSessionRequest starts a new customization session.
type CreateSessionRequest struct {
	TemplateID string `json:"template_id" validate:"required,template_id"`
	UserID     string `json:"user_id,omitempty"`
}

// ApplyThemeRequest applies a named color theme to a session.
type ApplyThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// CustomizeColorRequest overrides a single color role.
type CustomizeColorRequest struct {
	Role  string `json:"role" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor6"`
}

// FontCombinationRequest applies a curated font combination.
type FontCombinationRequest struct {
	Combination string `json:"combination" validate:"required"`
}

// CustomizeTypographyRequest carries partial typography overrides.
type CustomizeTypographyRequest struct {
	Overrides TypographyOverrides `json:"overrides"`
}

// TypographyOverrides is the partial-update shape for typography fields.
// Nil pointers mean "leave unchanged".
type TypographyOverrides struct {
	HeadingFamily *string            `json:"heading_family,omitempty"`
	BodyFamily    *string            `json:"body_family,omitempty"`
	AccentFamily  *string            `json:"accent_family,omitempty"`
	MonoFamily    *string            `json:"mono_family,omitempty"`
	HeadingWeight *int               `json:"heading_weight,omitempty"`
	BodyWeight    *int               `json:"body_weight,omitempty"`
	BodyLineHeight *float64          `json:"body_line_height,omitempty"`
	LetterSpacing *float64           `json:"letter_spacing,omitempty"`
	Sizes         map[string]float64 `json:"sizes,omitempty"`
}

// LayoutPresetRequest applies a named layout preset.
type LayoutPresetRequest struct {
	Preset string `json:"preset" validate:"required"`
}

// CustomizeLayoutRequest carries partial layout overrides.
type CustomizeLayoutRequest struct {
	Overrides LayoutOverrides `json:"overrides"`
}

// LayoutOverrides is the partial-update shape for layout fields.
type LayoutOverrides struct {
	Columns      *int     `json:"columns,omitempty"`
	MarginTop    *float64 `json:"margin_top,omitempty"`
	MarginBottom *float64 `json:"margin_bottom,omitempty"`
	MarginLeft   *float64 `json:"margin_left,omitempty"`
	MarginRight  *float64 `json:"margin_right,omitempty"`
	SectionGap   *float64 `json:"section_gap,omitempty"`
	ItemGap      *float64 `json:"item_gap,omitempty"`
	Alignment    *string  `json:"alignment,omitempty"`
}

// ToggleSectionRequest flips visibility of one section.
type ToggleSectionRequest struct {
	SectionID string `json:"section_id" validate:"required"`
}

// ReorderSectionsRequest reassigns section ordering.
type ReorderSectionsRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// RoleCustomizationRequest applies the recommended setup for a job role.
type RoleCustomizationRequest struct {
	Role string `json:"role" validate:"required"`
}

// ImportCustomizationRequest wraps a raw snapshot document for import.
type ImportCustomizationRequest struct {
	Snapshot []byte `json:"snapshot" validate:"required"`
}
