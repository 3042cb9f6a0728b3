package layout

import (
	"strings"
	"testing"

	"resumeforge-utils/pkg/models"
)

func TestApplyPresetKnownAndUnknown(t *testing.T) {
	settings, err := ApplyPreset("compact")
	if err != nil {
		t.Fatalf("ApplyPreset(compact): %v", err)
	}
	if settings.MarginTop != 0.5 {
		t.Errorf("compact top margin = %.2f, want 0.5", settings.MarginTop)
	}

	if _, err := ApplyPreset("brutalist"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		settings, err := ApplyPreset(name)
		if err != nil {
			t.Fatalf("ApplyPreset(%s): %v", name, err)
		}
		if err := Validate(settings); err != nil {
			t.Errorf("preset %q does not validate: %v", name, err)
		}
	}
}

func TestMergeLayoutRejectsOutOfBounds(t *testing.T) {
	tiny := 0.1
	if _, err := MergeLayout(DefaultLayout(), models.LayoutOverrides{MarginTop: &tiny}); err == nil {
		t.Error("expected error for 0.1in margin")
	}

	three := 3
	if _, err := MergeLayout(DefaultLayout(), models.LayoutOverrides{Columns: &three}); err == nil {
		t.Error("expected error for 3 columns")
	}

	diagonal := "diagonal"
	if _, err := MergeLayout(DefaultLayout(), models.LayoutOverrides{Alignment: &diagonal}); err == nil {
		t.Error("expected error for unknown alignment")
	}
}

func TestMergeLayoutAppliesAndClearsPreset(t *testing.T) {
	gap := 1.0
	merged, err := MergeLayout(DefaultLayout(), models.LayoutOverrides{SectionGap: &gap})
	if err != nil {
		t.Fatalf("MergeLayout: %v", err)
	}
	if merged.SectionGap != 1.0 {
		t.Errorf("section gap = %.2f, want 1.0", merged.SectionGap)
	}
	if merged.Preset != "" {
		t.Errorf("preset should be cleared after overrides, got %q", merged.Preset)
	}
	if merged.MarginLeft != DefaultLayout().MarginLeft {
		t.Error("untouched fields should carry over from base")
	}
}

func TestEfficiencyScoreOrdersPresets(t *testing.T) {
	compact, _ := ApplyPreset("compact")
	executive, _ := ApplyPreset("executive")

	compactScore := EfficiencyScore(compact)
	executiveScore := EfficiencyScore(executive)

	if compactScore <= executiveScore {
		t.Errorf("compact (%.1f) should outscore executive (%.1f)", compactScore, executiveScore)
	}
	for _, score := range []float64{compactScore, executiveScore} {
		if score < 0 || score > 100 {
			t.Errorf("score %.1f out of range", score)
		}
	}
}

func TestCSSEmitsColumnsAndSpacing(t *testing.T) {
	settings, _ := ApplyPreset("two-column")
	css := CSS(settings)

	if !strings.Contains(css, "column-count: 2;") {
		t.Error("two-column preset should emit column-count")
	}
	if !strings.Contains(css, "margin-bottom: 1.00em;") {
		t.Error("section gap should drive section margin")
	}

	single := CSS(DefaultLayout())
	if strings.Contains(single, "column-count") {
		t.Error("single column layout should not emit column rules")
	}
}
