package typography

import (
	"fmt"
	"strings"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// professionalCombination is one curated heading/body/accent triple.
type professionalCombination struct {
	Heading string
	Body    string
	Accent  string
}

var professionalCombinations = map[string]professionalCombination{
	"contemporary": {Heading: "Helvetica", Body: "Calibri", Accent: "Helvetica"},
	"classic":      {Heading: "Georgia", Body: "Calibri", Accent: "Georgia"},
	"traditional":  {Heading: "Cambria", Body: "Garamond", Accent: "Cambria"},
	"compact":      {Heading: "Arial", Body: "Verdana", Accent: "Arial"},
	"editorial":    {Heading: "Palatino", Body: "Georgia", Accent: "Palatino"},
}

// industryRecommendation suggests font overrides for a field of work.
type IndustryRecommendation struct {
	Heading   string `json:"heading"`
	Body      string `json:"body"`
	Monospace string `json:"monospace,omitempty"`
}

var industryRecommendations = map[string]IndustryRecommendation{
	"technology": {Heading: "Helvetica", Body: "Calibri", Monospace: "Consolas"},
	"finance":    {Heading: "Cambria", Body: "Garamond"},
	"law":        {Heading: "Georgia", Body: "Times New Roman"},
	"academia":   {Heading: "Palatino", Body: "Georgia"},
	"design":     {Heading: "Helvetica", Body: "Helvetica"},
	"healthcare": {Heading: "Arial", Body: "Calibri"},
	"marketing":  {Heading: "Trebuchet MS", Body: "Calibri"},
}

// DefaultTypography returns the shipped typography settings.
func DefaultTypography() models.TypographySettings {
	return models.TypographySettings{
		Heading:   models.FontSettings{Family: "Helvetica", Weight: 600, LineHeight: 1.25, LetterSpacing: 0.01},
		Body:      models.FontSettings{Family: "Calibri", Weight: 400, LineHeight: 1.5, LetterSpacing: 0},
		Accent:    models.FontSettings{Family: "Helvetica", Weight: 500, LineHeight: 1.4, LetterSpacing: 0.02},
		Monospace: models.FontSettings{Family: "Consolas", Weight: 400, LineHeight: 1.4, LetterSpacing: 0},
		Sizes: map[string]float64{
			"h1": 22, "h2": 16, "h3": 13, "h4": 12, "h5": 11, "h6": 11,
			"small": 9, "normal": 11, "large": 13,
		},
	}
}

// CreateCustomTypography merges overrides onto the defaults field by field.
// Font families outside the allow-list are discarded and the default kept;
// numeric overrides are accepted without allow-list checks.
func CreateCustomTypography(overrides models.TypographyOverrides) models.TypographySettings {
	settings := DefaultTypography()

	if overrides.HeadingFamily != nil && IsAllowedTextFont(*overrides.HeadingFamily) {
		settings.Heading.Family = *overrides.HeadingFamily
	}
	if overrides.BodyFamily != nil && IsAllowedTextFont(*overrides.BodyFamily) {
		settings.Body.Family = *overrides.BodyFamily
	}
	if overrides.AccentFamily != nil && IsAllowedTextFont(*overrides.AccentFamily) {
		settings.Accent.Family = *overrides.AccentFamily
	}
	if overrides.MonoFamily != nil && IsAllowedMonoFont(*overrides.MonoFamily) {
		settings.Monospace.Family = *overrides.MonoFamily
	}

	if overrides.HeadingWeight != nil {
		settings.Heading.Weight = *overrides.HeadingWeight
	}
	if overrides.BodyWeight != nil {
		settings.Body.Weight = *overrides.BodyWeight
	}
	if overrides.BodyLineHeight != nil {
		settings.Body.LineHeight = *overrides.BodyLineHeight
	}
	if overrides.LetterSpacing != nil {
		settings.Body.LetterSpacing = *overrides.LetterSpacing
	}
	for key, size := range overrides.Sizes {
		settings.Sizes[key] = size
	}

	return settings
}

// MergeTypography applies overrides onto an existing settings value using
// the same allow-list rules as CreateCustomTypography.
func MergeTypography(settings models.TypographySettings, overrides models.TypographyOverrides) models.TypographySettings {
	if overrides.HeadingFamily != nil && IsAllowedTextFont(*overrides.HeadingFamily) {
		settings.Heading.Family = *overrides.HeadingFamily
	}
	if overrides.BodyFamily != nil && IsAllowedTextFont(*overrides.BodyFamily) {
		settings.Body.Family = *overrides.BodyFamily
	}
	if overrides.AccentFamily != nil && IsAllowedTextFont(*overrides.AccentFamily) {
		settings.Accent.Family = *overrides.AccentFamily
	}
	if overrides.MonoFamily != nil && IsAllowedMonoFont(*overrides.MonoFamily) {
		settings.Monospace.Family = *overrides.MonoFamily
	}
	if overrides.HeadingWeight != nil {
		settings.Heading.Weight = *overrides.HeadingWeight
	}
	if overrides.BodyWeight != nil {
		settings.Body.Weight = *overrides.BodyWeight
	}
	if overrides.BodyLineHeight != nil {
		settings.Body.LineHeight = *overrides.BodyLineHeight
	}
	if overrides.LetterSpacing != nil {
		settings.Body.LetterSpacing = *overrides.LetterSpacing
	}
	if len(overrides.Sizes) > 0 {
		merged := make(map[string]float64, len(settings.Sizes)+len(overrides.Sizes))
		for k, v := range settings.Sizes {
			merged[k] = v
		}
		for k, v := range overrides.Sizes {
			merged[k] = v
		}
		settings.Sizes = merged
	}
	return settings
}

// ReadabilityReport grades typography settings for on-page readability.
type ReadabilityReport struct {
	Score           float64  `json:"score"` // 0-100
	Recommendations []string `json:"recommendations,omitempty"`
}

// CalculateReadabilityScore produces a weighted 0-100 score: up to 40
// points for body size (peak at 11-12pt), 35 for body line height (peak at
// 1.4-1.6) and 25 for the body family's rated readability.
func CalculateReadabilityScore(settings models.TypographySettings) ReadabilityReport {
	report := ReadabilityReport{}

	size := settings.Sizes["normal"]
	switch {
	case size >= 11 && size <= 12:
		report.Score += 40
	case size >= 10 && size <= 13:
		report.Score += 30
		report.Recommendations = append(report.Recommendations,
			"Body text between 11 and 12pt reads best on printed resumes")
	case size >= 9 && size <= 14:
		report.Score += 20
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Body size %.0fpt is hard to scan; aim for 11-12pt", size))
	default:
		report.Score += 10
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Body size %.0fpt is outside the readable range; aim for 11-12pt", size))
	}

	lh := settings.Body.LineHeight
	switch {
	case lh >= 1.4 && lh <= 1.6:
		report.Score += 35
	case lh >= 1.3 && lh <= 1.7:
		report.Score += 25
		report.Recommendations = append(report.Recommendations,
			"Line height between 1.4 and 1.6 gives the most comfortable rhythm")
	default:
		report.Score += 10
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Line height %.2f cramps or scatters the text; aim for 1.4-1.6", lh))
	}

	if info, ok := LookupFont(settings.Body.Family); ok {
		report.Score += float64(info.Readability) / 100 * 25
		if info.Readability < 80 {
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("%s rates lower for body text; consider Calibri or Helvetica", settings.Body.Family))
		}
	} else {
		report.Score += 12
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("%s is not an approved body font", settings.Body.Family))
	}

	return report
}

// GetIndustryRecommendations returns suggested font overrides for an
// industry keyword.
func GetIndustryRecommendations(industry string) (IndustryRecommendation, bool) {
	rec, ok := industryRecommendations[strings.ToLower(industry)]
	return rec, ok
}

// ApplyProfessionalCombination builds settings from one of the curated
// heading/body/accent triples.
func ApplyProfessionalCombination(name string) (models.TypographySettings, error) {
	combo, ok := professionalCombinations[strings.ToLower(name)]
	if !ok {
		return models.TypographySettings{}, utils.NewValidationError(
			fmt.Sprintf("unknown font combination %q", name))
	}

	settings := DefaultTypography()
	settings.Heading.Family = combo.Heading
	settings.Body.Family = combo.Body
	settings.Accent.Family = combo.Accent
	return settings, nil
}

// CombinationNames lists the curated combination names.
func CombinationNames() []string {
	names := make([]string, 0, len(professionalCombinations))
	for name := range professionalCombinations {
		names = append(names, name)
	}
	return names
}
