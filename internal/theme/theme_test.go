package theme

import (
	"strings"
	"testing"
)

func TestIsATSSafeLuminanceBand(t *testing.T) {
	cases := []struct {
		color string
		want  bool
	}{
		{"#777777", true},    // mid gray, inside the band
		{"#0a0a0a", false},   // near black, below band, not curated
		{"#fefefe", false},   // near white, above band, not curated
		{"#000000", true},    // curated despite zero luminance
		{"#ffffff", true},    // curated despite full luminance
		{"#2b6cb0", true},    // theme color, curated
		{"not-a-color", false},
		{"#12345", false},    // five digits
		{"#gggggg", false},   // invalid hex digits
	}

	for _, tc := range cases {
		if got := IsATSSafe(tc.color); got != tc.want {
			t.Errorf("IsATSSafe(%q) = %v, want %v", tc.color, got, tc.want)
		}
	}
}

func TestIsATSSafeRejectsOutOfBandEvenIfValid(t *testing.T) {
	// Valid syntax, luminance ~0.013, and not on the curated list.
	if IsATSSafe("#101010") {
		t.Error("expected #101010 to be rejected: valid hex but outside the luminance band")
	}
}

func TestRelativeLuminanceKnownValues(t *testing.T) {
	cases := []struct {
		color string
		want  float64
	}{
		{"#000000", 0},
		{"#ffffff", 1},
		{"#ff0000", 0.2126},
		{"#00ff00", 0.7152},
		{"#0000ff", 0.0722},
	}

	for _, tc := range cases {
		got, err := RelativeLuminance(tc.color)
		if err != nil {
			t.Fatalf("RelativeLuminance(%q): %v", tc.color, err)
		}
		if diff := got - tc.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("RelativeLuminance(%q) = %f, want %f", tc.color, got, tc.want)
		}
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	a, err := ContrastRatio("#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ContrastRatio("#ffffff", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("contrast ratio should be order-independent: %f vs %f", a, b)
	}
	if a < 20.9 || a > 21.1 {
		t.Errorf("black/white contrast = %f, want ~21", a)
	}
}

func TestCreateCustomThemeDropsUnsafeOverrides(t *testing.T) {
	scheme := CreateCustomTheme(map[string]string{
		"accent":  "#0a0a0a", // unsafe, dropped
		"primary": "#777777", // safe, applied
	})

	if scheme.Accent != baseTheme.Accent {
		t.Errorf("unsafe accent override applied: %s", scheme.Accent)
	}
	if scheme.Primary != "#777777" {
		t.Errorf("safe primary override not applied: %s", scheme.Primary)
	}
}

func TestGenerateHarmoniousColors(t *testing.T) {
	colors, err := GenerateHarmoniousColors("#2b6cb0", "complementary")
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) > 5 {
		t.Fatalf("got %d colors, want at most 5", len(colors))
	}
	for _, c := range colors {
		if !IsATSSafe(c) {
			t.Errorf("generated color %s is not ATS-safe", c)
		}
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("generated color %s is not a 6-hex-digit color", c)
		}
	}
}

func TestGenerateHarmoniousColorsUnsafeBase(t *testing.T) {
	if _, err := GenerateHarmoniousColors("#0a0a0a", "triadic"); err == nil {
		t.Error("expected validation error for unsafe base color")
	}
}

func TestGenerateHarmoniousColorsUnknownRelation(t *testing.T) {
	if _, err := GenerateHarmoniousColors("#2b6cb0", "quadratic"); err == nil {
		t.Error("expected validation error for unknown relation")
	}
}

func TestCreateColorStates(t *testing.T) {
	states, err := CreateColorStates("#2b6cb0")
	if err != nil {
		t.Fatal(err)
	}

	if states.Normal != "#2b6cb0" {
		t.Errorf("normal state should echo the base color, got %s", states.Normal)
	}

	baseHSL, _ := HexToHSL("#2b6cb0")
	lightHSL, _ := HexToHSL(states.Light)
	darkHSL, _ := HexToHSL(states.Dark)

	if lightHSL.L <= baseHSL.L {
		t.Errorf("light variant should be lighter: %f <= %f", lightHSL.L, baseHSL.L)
	}
	if darkHSL.L >= baseHSL.L {
		t.Errorf("dark variant should be darker: %f >= %f", darkHSL.L, baseHSL.L)
	}
}

func TestOptimizeForATSIdempotent(t *testing.T) {
	scheme := baseTheme
	scheme.Primary = "#fafafa"    // too light for a primary
	scheme.Background = "#333333" // too dark for a background
	scheme.Accent = "#eeeeee"     // washes out against white

	once := OptimizeForATS(scheme)
	twice := OptimizeForATS(once)

	if once != twice {
		t.Errorf("OptimizeForATS is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}

	if once.Background != "#ffffff" {
		t.Errorf("dark background not forced white: %s", once.Background)
	}
	if lum, _ := RelativeLuminance(once.Primary); lum > 0.5 {
		t.Errorf("primary still too light: %s", once.Primary)
	}
	if ratio, _ := ContrastRatio(once.Accent, once.Background); ratio < 3.0 {
		t.Errorf("accent contrast still below 3.0: %f", ratio)
	}
}

func TestOptimizeForATSLeavesGoodSchemesAlone(t *testing.T) {
	optimized := OptimizeForATS(baseTheme)
	if optimized != baseTheme {
		t.Errorf("compliant scheme was modified: %+v", optimized)
	}
}

func TestGetColorAccessibilityInfo(t *testing.T) {
	info, err := GetColorAccessibilityInfo("#000000", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if !info.PassesAA || !info.PassesAAA {
		t.Errorf("black on white should pass AA and AAA: %+v", info)
	}

	info, err = GetColorAccessibilityInfo("#cccccc", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if info.PassesAA {
		t.Errorf("light gray on white should fail AA: %+v", info)
	}
	if info.Recommendation == "" {
		t.Error("expected a recommendation string")
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, hex := range []string{"#2b6cb0", "#718096", "#b45309", "#15803d"} {
		hsl, err := HexToHSL(hex)
		if err != nil {
			t.Fatal(err)
		}
		back := HSLToHex(hsl)
		if back != hex {
			// Rounding may move a channel by one; verify it stays close.
			r1, g1, b1, _ := ParseHex(hex)
			r2, g2, b2, _ := ParseHex(back)
			if abs(r1-r2) > 1 || abs(g1-g2) > 1 || abs(b1-b2) > 1 {
				t.Errorf("HSL round trip drifted: %s -> %s", hex, back)
			}
		}
	}
}

func TestCSSVariablesOrder(t *testing.T) {
	css := CSSVariables(baseTheme)
	primaryIdx := strings.Index(css, "--color-primary")
	linkIdx := strings.Index(css, "--color-link")
	if primaryIdx == -1 || linkIdx == -1 {
		t.Fatal("missing color custom properties")
	}
	if primaryIdx > linkIdx {
		t.Error("primary should be emitted before link")
	}
}

func TestValidateSchemeRejectsUnsafeRole(t *testing.T) {
	scheme := baseTheme
	scheme.Muted = "#050505"
	if err := ValidateScheme(scheme); err == nil {
		t.Error("expected error for unsafe muted color")
	}
	if err := ValidateScheme(baseTheme); err != nil {
		t.Errorf("base theme should validate: %v", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
