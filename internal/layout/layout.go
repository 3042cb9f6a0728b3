package layout

import (
	"fmt"
	"sort"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// US letter geometry, inches.
const (
	pageWidth  = 8.5
	pageHeight = 11.0

	minMargin = 0.3
	maxMargin = 2.0
	maxGap    = 3.0
)

var validAlignments = map[string]bool{
	"left":    true,
	"center":  true,
	"justify": true,
}

var presets = map[string]models.LayoutSettings{
	"standard": {
		Preset: "standard", Columns: 1,
		MarginTop: 1.0, MarginBottom: 1.0, MarginLeft: 0.75, MarginRight: 0.75,
		SectionGap: 1.2, ItemGap: 0.6, Alignment: "left",
	},
	"compact": {
		Preset: "compact", Columns: 1,
		MarginTop: 0.5, MarginBottom: 0.5, MarginLeft: 0.5, MarginRight: 0.5,
		SectionGap: 0.8, ItemGap: 0.4, Alignment: "left",
	},
	"executive": {
		Preset: "executive", Columns: 1,
		MarginTop: 1.25, MarginBottom: 1.25, MarginLeft: 1.0, MarginRight: 1.0,
		SectionGap: 1.5, ItemGap: 0.8, Alignment: "left",
	},
	"two-column": {
		Preset: "two-column", Columns: 2,
		MarginTop: 0.75, MarginBottom: 0.75, MarginLeft: 0.6, MarginRight: 0.6,
		SectionGap: 1.0, ItemGap: 0.5, Alignment: "left",
	},
}

// DefaultLayout returns the standard single-column preset.
func DefaultLayout() models.LayoutSettings {
	return presets["standard"]
}

// PresetNames lists available presets sorted alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset resolves a named preset, erroring on unknown names.
func ApplyPreset(name string) (models.LayoutSettings, error) {
	preset, ok := presets[name]
	if !ok {
		return models.LayoutSettings{}, utils.NewValidationError(
			fmt.Sprintf("unknown layout preset %q", name))
	}
	return preset, nil
}

// MergeLayout applies partial overrides onto base and validates the result.
// Invalid merged settings are rejected as a whole.
func MergeLayout(base models.LayoutSettings, overrides models.LayoutOverrides) (models.LayoutSettings, error) {
	merged := base
	merged.Preset = "" // overrides break preset identity

	if overrides.Columns != nil {
		merged.Columns = *overrides.Columns
	}
	if overrides.MarginTop != nil {
		merged.MarginTop = *overrides.MarginTop
	}
	if overrides.MarginBottom != nil {
		merged.MarginBottom = *overrides.MarginBottom
	}
	if overrides.MarginLeft != nil {
		merged.MarginLeft = *overrides.MarginLeft
	}
	if overrides.MarginRight != nil {
		merged.MarginRight = *overrides.MarginRight
	}
	if overrides.SectionGap != nil {
		merged.SectionGap = *overrides.SectionGap
	}
	if overrides.ItemGap != nil {
		merged.ItemGap = *overrides.ItemGap
	}
	if overrides.Alignment != nil {
		merged.Alignment = *overrides.Alignment
	}

	if err := Validate(merged); err != nil {
		return models.LayoutSettings{}, err
	}
	return merged, nil
}

// Validate checks layout bounds: 1 or 2 columns, margins within the page,
// non-negative gaps, known alignment.
func Validate(settings models.LayoutSettings) error {
	if settings.Columns < 1 || settings.Columns > 2 {
		return utils.NewValidationError(fmt.Sprintf("columns must be 1 or 2, got %d", settings.Columns))
	}
	margins := map[string]float64{
		"top":    settings.MarginTop,
		"bottom": settings.MarginBottom,
		"left":   settings.MarginLeft,
		"right":  settings.MarginRight,
	}
	for name, margin := range margins {
		if margin < minMargin || margin > maxMargin {
			return utils.NewValidationError(fmt.Sprintf(
				"%s margin %.2fin outside the %.1f-%.1fin range", name, margin, minMargin, maxMargin))
		}
	}
	if settings.SectionGap < 0 || settings.SectionGap > maxGap {
		return utils.NewValidationError(fmt.Sprintf("section gap %.2fem outside the 0-%.0fem range", settings.SectionGap, maxGap))
	}
	if settings.ItemGap < 0 || settings.ItemGap > maxGap {
		return utils.NewValidationError(fmt.Sprintf("item gap %.2fem outside the 0-%.0fem range", settings.ItemGap, maxGap))
	}
	if settings.Alignment != "" && !validAlignments[settings.Alignment] {
		return utils.NewValidationError(fmt.Sprintf("unknown alignment %q", settings.Alignment))
	}
	return nil
}

// EfficiencyScore grades how well the layout uses the page, 0-100. Usable
// page area contributes 70 points; section spacing near the 0.8-1.5em band
// contributes the remaining 30.
func EfficiencyScore(settings models.LayoutSettings) float64 {
	usableWidth := pageWidth - settings.MarginLeft - settings.MarginRight
	usableHeight := pageHeight - settings.MarginTop - settings.MarginBottom
	if usableWidth < 0 {
		usableWidth = 0
	}
	if usableHeight < 0 {
		usableHeight = 0
	}
	areaFraction := (usableWidth * usableHeight) / (pageWidth * pageHeight)
	score := areaFraction * 70

	switch gap := settings.SectionGap; {
	case gap >= 0.8 && gap <= 1.5:
		score += 30
	case gap < 0.8:
		score += 30 * gap / 0.8
	default:
		over := gap - 1.5
		penalty := over / (maxGap - 1.5) * 30
		score += 30 - penalty
	}

	return utils.Clamp(score, 0, 100)
}
