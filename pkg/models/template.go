package models

// FieldRule is a per-field validation rule inside a section schema.
type FieldRule struct {
	Field     string `json:"field"`
	Required  bool   `json:"required"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// SectionDefinition is the structural definition of one template section.
type SectionDefinition struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Required    bool        `json:"required"`
	Fields      []FieldRule `json:"fields,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// ATSOptimizationProfile captures the constraints a template declares for
// reliable applicant-tracking-system parsing.
type ATSOptimizationProfile struct {
	RequiredSectionOrder []string `json:"required_section_order,omitempty"`
	ProhibitedElements   []string `json:"prohibited_elements,omitempty"`
	ApprovedFonts        []string `json:"approved_fonts,omitempty"`
	ProhibitedFonts      []string `json:"prohibited_fonts,omitempty"`
	MinMarginInches      float64  `json:"min_margin_inches,omitempty"`
	MaxMarginInches      float64  `json:"max_margin_inches,omitempty"`
	TargetKeywordDensity float64  `json:"target_keyword_density,omitempty"`
}

// TemplateStyling holds a template's styling defaults.
type TemplateStyling struct {
	Fonts      TypographySettings `json:"fonts"`
	Colors     ColorScheme        `json:"colors"`
	TypeScale  float64            `json:"type_scale,omitempty"`
	ColorRamps map[string][]string `json:"color_ramps,omitempty"`
}

// ResumeTemplate is the read-only structural definition consumed by the
// rendering pipeline. Owned by the external template catalog.
type ResumeTemplate struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Layout   LayoutSettings         `json:"layout"`
	Styling  TemplateStyling        `json:"styling"`
	Sections []SectionDefinition    `json:"sections"`
	ATS      ATSOptimizationProfile `json:"ats_profile"`
	Version  string                 `json:"version,omitempty"`
}

// SectionByID returns the section definition with the given id, if present.
func (t *ResumeTemplate) SectionByID(id string) (SectionDefinition, bool) {
	for _, s := range t.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionDefinition{}, false
}
