package models

import "time"

// ColorScheme holds the semantic color roles of a template. Every value is a
// 6-hex-digit color string (e.g. "#1a365d").
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Border     string `json:"border"`
	Highlight  string `json:"highlight"`
	Link       string `json:"link"`
}

// Roles returns the scheme as a role->color map in a stable role order.
func (s ColorScheme) Roles() map[string]string {
	return map[string]string{
		"primary":    s.Primary,
		"secondary":  s.Secondary,
		"accent":     s.Accent,
		"background": s.Background,
		"text":       s.Text,
		"muted":      s.Muted,
		"border":     s.Border,
		"highlight":  s.Highlight,
		"link":       s.Link,
	}
}

// SetRole assigns a color to a named role. Unknown roles are ignored and
// reported via the return value.
func (s *ColorScheme) SetRole(role, color string) bool {
	switch role {
	case "primary":
		s.Primary = color
	case "secondary":
		s.Secondary = color
	case "accent":
		s.Accent = color
	case "background":
		s.Background = color
	case "text":
		s.Text = color
	case "muted":
		s.Muted = color
	case "border":
		s.Border = color
	case "highlight":
		s.Highlight = color
	case "link":
		s.Link = color
	default:
		return false
	}
	return true
}

// Role returns the color assigned to a named role.
func (s ColorScheme) Role(role string) (string, bool) {
	v, ok := s.Roles()[role]
	return v, ok
}

// FontSettings describes one text role (heading, body, accent, monospace).
type FontSettings struct {
	Family        string  `json:"family"`
	Weight        int     `json:"weight"`
	LineHeight    float64 `json:"line_height"`
	LetterSpacing float64 `json:"letter_spacing"` // em units
}

// TypographySettings holds the per-role font configuration plus the shared
// size map (h1..h6, small/normal/large, measured in points).
type TypographySettings struct {
	Heading   FontSettings       `json:"heading"`
	Body      FontSettings       `json:"body"`
	Accent    FontSettings       `json:"accent"`
	Monospace FontSettings       `json:"monospace"`
	Sizes     map[string]float64 `json:"sizes"`
}

// SectionConfig describes visibility and ordering for one resume section.
type SectionConfig struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Visible     bool   `json:"visible"`
	Required    bool   `json:"required"`
	Priority    int    `json:"priority"`
	Order       int    `json:"order"` // 1-based, unique among visible sections
	MinItems    int    `json:"min_items"`
	MaxItems    int    `json:"max_items"`
	Description string `json:"description,omitempty"`
}

// SectionVisibility is the full section catalog state keyed by section id.
type SectionVisibility map[string]SectionConfig

// LayoutSettings describes the geometric layout knobs of a template.
type LayoutSettings struct {
	Preset        string  `json:"preset,omitempty"`
	Columns       int     `json:"columns"`
	MarginTop     float64 `json:"margin_top"`    // inches
	MarginBottom  float64 `json:"margin_bottom"` // inches
	MarginLeft    float64 `json:"margin_left"`   // inches
	MarginRight   float64 `json:"margin_right"`  // inches
	SectionGap    float64 `json:"section_gap"`   // em units
	ItemGap       float64 `json:"item_gap"`      // em units
	Alignment     string  `json:"alignment"`
	MaxWidthInner float64 `json:"max_width_inner"` // inches, 0 = unconstrained
}

// CustomizationMetadata tracks snapshot provenance.
type CustomizationMetadata struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       string    `json:"version"`
	MutationCount int       `json:"mutation_count"`
}

// TemplateCustomization is the aggregate snapshot for one editing session.
type TemplateCustomization struct {
	ID                string                `json:"id"`
	TemplateID        string                `json:"template_id"`
	ColorScheme       ColorScheme           `json:"color_scheme"`
	Typography        TypographySettings    `json:"typography"`
	Layout            LayoutSettings        `json:"layout"`
	SectionVisibility SectionVisibility     `json:"section_visibility"`
	Metadata          CustomizationMetadata `json:"metadata"`
}

// ChangeType categorizes a customization mutation for the audit history.
type ChangeType string

const (
	ChangeTypeColor      ChangeType = "color"
	ChangeTypeTypography ChangeType = "typography"
	ChangeTypeLayout     ChangeType = "layout"
	ChangeTypeSection    ChangeType = "section"
	ChangeTypeRole       ChangeType = "role"
	ChangeTypeReset      ChangeType = "reset"
	ChangeTypeImport     ChangeType = "import"
)

// CustomizationChange is an immutable audit record for one mutation.
type CustomizationChange struct {
	ID            string                 `json:"id"`
	Type          ChangeType             `json:"type"`
	Property      string                 `json:"property"`
	PreviousValue interface{}            `json:"previous_value"`
	NewValue      interface{}            `json:"new_value"`
	Timestamp     time.Time              `json:"timestamp"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// CustomizationSnapshot is the import/export wire shape for a customization.
type CustomizationSnapshot struct {
	ColorScheme       *ColorScheme          `json:"colorScheme"`
	Typography        *TypographySettings   `json:"typography"`
	Layout            *LayoutSettings       `json:"layout"`
	SectionVisibility SectionVisibility     `json:"sectionVisibility"`
	Metadata          CustomizationMetadata `json:"metadata"`
	ChangeHistory     []CustomizationChange `json:"changeHistory,omitempty"`
	BaseTemplate      string                `json:"baseTemplate,omitempty"`
}

// CustomizationAnalytics is the aggregate quality report for a session.
type CustomizationAnalytics struct {
	OverallScore     float64  `json:"overall_score"`
	ATSScore         float64  `json:"ats_score"`
	ReadabilityScore float64  `json:"readability_score"`
	LayoutScore      float64  `json:"layout_score"`
	SectionScore     float64  `json:"section_score"`
	Strengths        []string `json:"strengths,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
}
