package typography

import (
	"strings"
	"testing"

	"resumeforge-utils/pkg/models"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateCustomTypographyDropsUnknownFamilies(t *testing.T) {
	settings := CreateCustomTypography(overridesWith("Comic Sans MS", "Papyrus"))

	defaults := DefaultTypography()
	if settings.Heading.Family != defaults.Heading.Family {
		t.Errorf("unknown heading family applied: %s", settings.Heading.Family)
	}
	if settings.Body.Family != defaults.Body.Family {
		t.Errorf("unknown body family applied: %s", settings.Body.Family)
	}
}

func TestCreateCustomTypographyAcceptsAllowListed(t *testing.T) {
	settings := CreateCustomTypography(overridesWith("Georgia", "Arial"))

	if settings.Heading.Family != "Georgia" {
		t.Errorf("heading family = %s, want Georgia", settings.Heading.Family)
	}
	if settings.Body.Family != "Arial" {
		t.Errorf("body family = %s, want Arial", settings.Body.Family)
	}
}

func TestCreateCustomTypographyNumericUnchecked(t *testing.T) {
	lh := 2.5 // poor choice, but numeric overrides are not gated
	settings := CreateCustomTypography(overridesWithLineHeight(lh))
	if settings.Body.LineHeight != lh {
		t.Errorf("line height = %f, want %f", settings.Body.LineHeight, lh)
	}
}

func TestMonospaceRoleRejectsTextFont(t *testing.T) {
	mono := "Georgia"
	settings := CreateCustomTypography(monoOverride(mono))
	if settings.Monospace.Family == "Georgia" {
		t.Error("serif font accepted for the monospace role")
	}
}

func TestReadabilityScoreOptimalSettings(t *testing.T) {
	report := CalculateReadabilityScore(DefaultTypography())
	if report.Score < 85 {
		t.Errorf("default settings score = %f, want >= 85", report.Score)
	}
}

func TestReadabilityScorePenalizesTinyText(t *testing.T) {
	settings := DefaultTypography()
	settings.Sizes["normal"] = 7
	settings.Body.LineHeight = 1.0

	report := CalculateReadabilityScore(settings)
	if report.Score > 50 {
		t.Errorf("degraded settings score = %f, want <= 50", report.Score)
	}
	if len(report.Recommendations) < 2 {
		t.Errorf("expected recommendations for both size and line height, got %v", report.Recommendations)
	}
}

func TestReadabilityScoreBounds(t *testing.T) {
	for _, size := range []float64{5, 9, 11, 12, 14, 30} {
		settings := DefaultTypography()
		settings.Sizes["normal"] = size
		report := CalculateReadabilityScore(settings)
		if report.Score < 0 || report.Score > 100 {
			t.Errorf("score out of range for size %f: %f", size, report.Score)
		}
	}
}

func TestApplyProfessionalCombination(t *testing.T) {
	settings, err := ApplyProfessionalCombination("classic")
	if err != nil {
		t.Fatal(err)
	}
	if settings.Heading.Family != "Georgia" {
		t.Errorf("heading family = %s, want Georgia", settings.Heading.Family)
	}

	if _, err := ApplyProfessionalCombination("nonexistent"); err == nil {
		t.Error("expected validation error for unknown combination")
	}
}

func TestIndustryRecommendations(t *testing.T) {
	rec, ok := GetIndustryRecommendations("technology")
	if !ok {
		t.Fatal("technology should have recommendations")
	}
	if rec.Monospace == "" {
		t.Error("technology recommendation should include a monospace font")
	}
	if !IsAllowedTextFont(rec.Heading) || !IsAllowedTextFont(rec.Body) {
		t.Error("recommended fonts must come from the allow-list")
	}

	if _, ok := GetIndustryRecommendations("astrology"); ok {
		t.Error("unknown industry should not resolve")
	}
}

func TestCSSEmission(t *testing.T) {
	css := CSS(DefaultTypography())

	for _, want := range []string{"body {", ".section-title", ".accent-text", "code, pre", ".contact-info"} {
		if !strings.Contains(css, want) {
			t.Errorf("CSS missing %q", want)
		}
	}

	if !strings.Contains(css, "Calibri") {
		t.Error("CSS should reference the body font stack")
	}
}

func overridesWith(heading, body string) (o models.TypographyOverrides) {
	o.HeadingFamily = strPtr(heading)
	o.BodyFamily = strPtr(body)
	return o
}

func overridesWithLineHeight(lh float64) (o models.TypographyOverrides) {
	o.BodyLineHeight = floatPtr(lh)
	return o
}

func monoOverride(family string) (o models.TypographyOverrides) {
	o.MonoFamily = strPtr(family)
	return o
}
