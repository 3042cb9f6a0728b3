package theme

import (
	"fmt"
	"sort"
	"strings"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// Relative luminance band accepted for non-allow-listed colors. Colors
// darker or lighter than this tend to break ATS parsing of scanned output.
const (
	minSafeLuminance = 0.1
	maxSafeLuminance = 0.9
)

// Hue offsets (degrees) per harmony relation.
var harmonyOffsets = map[string]float64{
	"analogous":           30,
	"complementary":       180,
	"triadic":             120,
	"split-complementary": 150,
	"tetradic":            90,
}

// Curated safe colors. These pass regardless of the luminance band: the set
// covers the dark text and near-white surface colors every shipped theme
// relies on.
var safeColors = map[string]bool{
	"#000000": true,
	"#ffffff": true,
	"#1a1a1a": true,
	"#1f2937": true,
	"#1a202c": true,
	"#1a365d": true,
	"#2d3748": true,
	"#374151": true,
	"#111827": true,
	"#2b2b2b": true,
	"#f7fafc": true,
	"#f9fafb": true,
	"#ebf8ff": true,
	"#2563eb": true,
}

// baseTheme is the starting point for custom themes.
var baseTheme = models.ColorScheme{
	Primary:    "#1a365d",
	Secondary:  "#2d3748",
	Accent:     "#2b6cb0",
	Background: "#ffffff",
	Text:       "#1a202c",
	Muted:      "#718096",
	Border:     "#cbd5e0",
	Highlight:  "#ebf8ff",
	Link:       "#2b6cb0",
}

// namedThemes are the shipped, pre-validated color themes.
var namedThemes = map[string]models.ColorScheme{
	"professional": baseTheme,
	"modern": {
		Primary:    "#111827",
		Secondary:  "#374151",
		Accent:     "#2563eb",
		Background: "#ffffff",
		Text:       "#1f2937",
		Muted:      "#6b7280",
		Border:     "#d1d5db",
		Highlight:  "#f9fafb",
		Link:       "#2563eb",
	},
	"warm": {
		Primary:    "#7c2d12",
		Secondary:  "#9a3412",
		Accent:     "#b45309",
		Background: "#ffffff",
		Text:       "#1f2937",
		Muted:      "#78716c",
		Border:     "#d6d3d1",
		Highlight:  "#fef3c7",
		Link:       "#b45309",
	},
	"forest": {
		Primary:    "#14532d",
		Secondary:  "#166534",
		Accent:     "#15803d",
		Background: "#ffffff",
		Text:       "#1a202c",
		Muted:      "#6b7280",
		Border:     "#d1d5db",
		Highlight:  "#dcfce7",
		Link:       "#15803d",
	},
	"slate": {
		Primary:    "#0f172a",
		Secondary:  "#334155",
		Accent:     "#0369a1",
		Background: "#ffffff",
		Text:       "#1e293b",
		Muted:      "#64748b",
		Border:     "#cbd5e1",
		Highlight:  "#f1f5f9",
		Link:       "#0369a1",
	},
}

func init() {
	// Every color a shipped theme uses is on the curated list so the whole
	// scheme always validates.
	for _, scheme := range namedThemes {
		for _, color := range scheme.Roles() {
			safeColors[strings.ToLower(color)] = true
		}
	}
}

// BaseTheme returns a copy of the default theme.
func BaseTheme() models.ColorScheme {
	return baseTheme
}

// NamedTheme looks up one of the shipped themes.
func NamedTheme(name string) (models.ColorScheme, bool) {
	scheme, ok := namedThemes[strings.ToLower(name)]
	return scheme, ok
}

// ThemeNames returns the shipped theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(namedThemes))
	for name := range namedThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsATSSafe reports whether a color parses reliably under applicant
// tracking systems: it is on the curated allow-list, or it is a valid
// 6-hex-digit color whose relative luminance falls inside the safe band.
func IsATSSafe(color string) bool {
	normalized := strings.ToLower(color)
	if !strings.HasPrefix(normalized, "#") {
		normalized = "#" + normalized
	}
	if safeColors[normalized] {
		return true
	}

	lum, err := RelativeLuminance(color)
	if err != nil {
		return false
	}
	return lum >= minSafeLuminance && lum <= maxSafeLuminance
}

// ValidateScheme checks every role of a scheme against IsATSSafe.
func ValidateScheme(scheme models.ColorScheme) error {
	for role, color := range scheme.Roles() {
		if !IsATSSafe(color) {
			return utils.NewValidationError(fmt.Sprintf("color %q for role %q is not ATS-safe", color, role))
		}
	}
	return nil
}

// CreateCustomTheme builds a scheme from the base theme plus the given
// role overrides. Overrides that fail IsATSSafe are silently dropped.
func CreateCustomTheme(overrides map[string]string) models.ColorScheme {
	scheme := baseTheme
	for role, color := range overrides {
		if !IsATSSafe(color) {
			continue
		}
		scheme.SetRole(role, strings.ToLower(color))
	}
	return scheme
}

// GenerateHarmoniousColors derives up to five colors related to base by the
// named harmony relation. Candidates that fail IsATSSafe are dropped, so
// fewer than five may be returned.
func GenerateHarmoniousColors(base, relation string) ([]string, error) {
	if !IsATSSafe(base) {
		return nil, utils.NewValidationError(fmt.Sprintf("base color %q is not ATS-safe", base))
	}

	offset, ok := harmonyOffsets[strings.ToLower(relation)]
	if !ok {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown harmony relation %q", relation))
	}

	hsl, err := HexToHSL(base)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	var colors []string
	for i := -2; i <= 2; i++ {
		candidate := HSL{
			H: hsl.H + float64(i)*offset/3,
			S: clampPct(hsl.S + float64(i)*4),
			L: clampPct(hsl.L + float64(i)*3),
		}
		hex := HSLToHex(candidate)
		if IsATSSafe(hex) {
			colors = append(colors, hex)
		}
	}

	return colors, nil
}

// ColorStates holds interaction-state variants of one color.
type ColorStates struct {
	Light      string `json:"light"`
	Normal     string `json:"normal"`
	Dark       string `json:"dark"`
	Border     string `json:"border"`
	Background string `json:"background"`
}

// CreateColorStates derives light/dark/border/background variants of base
// by shifting lightness in HSL space.
func CreateColorStates(base string) (ColorStates, error) {
	if !IsATSSafe(base) {
		return ColorStates{}, utils.NewValidationError(fmt.Sprintf("base color %q is not ATS-safe", base))
	}

	hsl, err := HexToHSL(base)
	if err != nil {
		return ColorStates{}, utils.NewValidationError(err.Error())
	}

	return ColorStates{
		Light:      HSLToHex(HSL{H: hsl.H, S: hsl.S, L: clampPct(hsl.L + 20)}),
		Normal:     HSLToHex(hsl),
		Dark:       HSLToHex(HSL{H: hsl.H, S: hsl.S, L: clampPct(hsl.L - 20)}),
		Border:     HSLToHex(HSL{H: hsl.H, S: hsl.S, L: clampPct(hsl.L - 40)}),
		Background: HSLToHex(HSL{H: hsl.H, S: hsl.S / 4, L: clampPct(hsl.L + 35)}),
	}, nil
}

// AccessibilityInfo reports WCAG contrast compliance for a fg/bg pair.
type AccessibilityInfo struct {
	ContrastRatio  float64 `json:"contrast_ratio"`
	PassesAA       bool    `json:"passes_aa"`
	PassesAAA      bool    `json:"passes_aaa"`
	Recommendation string  `json:"recommendation"`
}

// GetColorAccessibilityInfo computes the contrast ratio between a
// foreground and background color and grades it against WCAG thresholds.
func GetColorAccessibilityInfo(fg, bg string) (AccessibilityInfo, error) {
	ratio, err := ContrastRatio(fg, bg)
	if err != nil {
		return AccessibilityInfo{}, utils.NewValidationError(err.Error())
	}

	info := AccessibilityInfo{
		ContrastRatio: ratio,
		PassesAA:      ratio >= 4.5,
		PassesAAA:     ratio >= 7,
	}

	switch {
	case info.PassesAAA:
		info.Recommendation = "Excellent contrast, meets AAA for all text sizes"
	case info.PassesAA:
		info.Recommendation = "Good contrast, meets AA for normal text"
	case ratio >= 3:
		info.Recommendation = "Acceptable for large text only; increase contrast for body text"
	default:
		info.Recommendation = "Insufficient contrast; choose a darker foreground or lighter background"
	}

	return info, nil
}

// OptimizeForATS forces a scheme into ATS-friendly territory: a dark
// primary, a white-enough background, and an accent readable against it.
// The operation is deterministic and idempotent.
func OptimizeForATS(scheme models.ColorScheme) models.ColorScheme {
	if lum, err := RelativeLuminance(scheme.Primary); err != nil || lum > 0.5 {
		scheme.Primary = "#1f2937"
	}

	if lum, err := RelativeLuminance(scheme.Background); err != nil || lum < 0.8 {
		scheme.Background = "#ffffff"
	}

	if ratio, err := ContrastRatio(scheme.Accent, scheme.Background); err != nil || ratio < 3.0 {
		scheme.Accent = "#2563eb"
	}

	return scheme
}
