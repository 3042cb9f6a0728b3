package customization

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"resumeforge-utils/internal/theme"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

func newTestEngine() *Engine {
	return NewEngine("tmpl_modern", "user_1", 50)
}

func TestCustomizeColorRecordsAndNotifies(t *testing.T) {
	engine := newTestEngine()

	var got []models.CustomizationSnapshot
	engine.Subscribe(func(s models.CustomizationSnapshot) { got = append(got, s) })

	if err := engine.CustomizeColor("accent", "#2563eb"); err != nil {
		t.Fatalf("CustomizeColor: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].ColorScheme.Accent != "#2563eb" {
		t.Errorf("snapshot accent = %q", got[0].ColorScheme.Accent)
	}
	if engine.HistoryLen() != 1 {
		t.Errorf("history length = %d, want 1", engine.HistoryLen())
	}
}

func TestCustomizeColorRejectsUnsafe(t *testing.T) {
	engine := newTestEngine()

	err := engine.CustomizeColor("background", "#0a0a0a")
	if err == nil {
		t.Fatal("expected error for near-black background")
	}
	if !utils.IsKind(err, utils.ErrValidationFailed) {
		t.Errorf("unexpected error kind: %v", err)
	}
	if engine.HistoryLen() != 0 {
		t.Error("failed mutation must not be recorded")
	}
}

func TestCustomizeColorUnknownRole(t *testing.T) {
	engine := newTestEngine()
	if err := engine.CustomizeColor("chrome", "#2563eb"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	engine := newTestEngine()

	engine.Subscribe(func(models.CustomizationSnapshot) { panic("boom") })
	called := false
	engine.Subscribe(func(models.CustomizationSnapshot) { called = true })

	if err := engine.ApplyColorTheme("modern"); err != nil {
		t.Fatalf("ApplyColorTheme: %v", err)
	}
	if !called {
		t.Error("second subscriber should run despite the first panicking")
	}
	if engine.HistoryLen() != 1 {
		t.Error("mutation should still be recorded")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	engine := newTestEngine()
	if engine.UndoLastChange() {
		t.Error("undo with empty history should report false")
	}
}

func TestUndoRestoresPreviousColor(t *testing.T) {
	engine := newTestEngine()
	original := engine.Snapshot().ColorScheme.Accent

	if err := engine.CustomizeColor("accent", "#2563eb"); err != nil {
		t.Fatalf("CustomizeColor: %v", err)
	}
	if !engine.UndoLastChange() {
		t.Fatal("undo should succeed")
	}
	if got := engine.Snapshot().ColorScheme.Accent; got != original {
		t.Errorf("accent = %q after undo, want %q", got, original)
	}
}

func TestUndoResetClearsHistory(t *testing.T) {
	engine := newTestEngine()

	if err := engine.CustomizeColor("accent", "#2563eb"); err != nil {
		t.Fatalf("CustomizeColor: %v", err)
	}
	if err := engine.ResetToDefaults(); err != nil {
		t.Fatalf("ResetToDefaults: %v", err)
	}

	if engine.UndoLastChange() {
		t.Error("a reset record must not be undoable")
	}
	if engine.HistoryLen() != 0 {
		t.Errorf("history should be cleared, got %d entries", engine.HistoryLen())
	}
}

func TestHistoryEvictsOldestBeyondCapacity(t *testing.T) {
	history := NewHistory(50)
	for i := 0; i < 51; i++ {
		history.Append(models.CustomizationChange{ID: fmt.Sprintf("chg_%d", i)})
	}

	if history.Len() != 50 {
		t.Fatalf("history length = %d, want 50", history.Len())
	}
	entries := history.Entries()
	if entries[0].ID != "chg_1" {
		t.Errorf("oldest entry = %q, want chg_1 after eviction", entries[0].ID)
	}
	if entries[len(entries)-1].ID != "chg_50" {
		t.Errorf("newest entry = %q, want chg_50", entries[len(entries)-1].ID)
	}
}

func TestApplyLayoutPresetAndUndo(t *testing.T) {
	engine := newTestEngine()

	if err := engine.ApplyLayoutPreset("compact"); err != nil {
		t.Fatalf("ApplyLayoutPreset: %v", err)
	}
	if engine.Snapshot().Layout.MarginTop != 0.5 {
		t.Error("compact preset should set 0.5in top margin")
	}

	if !engine.UndoLastChange() {
		t.Fatal("undo should succeed")
	}
	if engine.Snapshot().Layout.MarginTop != 1.0 {
		t.Error("undo should restore the standard margins")
	}
}

func TestApplyRoleCustomizationReordersSections(t *testing.T) {
	engine := newTestEngine()

	if err := engine.ApplyRoleCustomization("researcher"); err != nil {
		t.Fatalf("ApplyRoleCustomization: %v", err)
	}

	visibility := engine.Snapshot().SectionVisibility
	if !visibility["publications"].Visible {
		t.Error("researcher role should surface publications")
	}
	if visibility["contact"].Order != 1 {
		t.Errorf("contact order = %d, want 1", visibility["contact"].Order)
	}
	if visibility["education"].Order >= visibility["publications"].Order {
		t.Error("researcher role should place education before publications")
	}
}

func TestApplyRoleCustomizationUnknownRole(t *testing.T) {
	engine := newTestEngine()
	if err := engine.ApplyRoleCustomization("astronaut"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newTestEngine()
	if err := source.ApplyColorTheme("forest"); err != nil {
		t.Fatalf("ApplyColorTheme: %v", err)
	}
	if err := source.ToggleSection("certifications"); err != nil {
		t.Fatalf("ToggleSection: %v", err)
	}

	data, err := source.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	target := newTestEngine()
	if err := target.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := target.Snapshot()
	want := source.Snapshot()
	if got.ColorScheme.Primary != want.ColorScheme.Primary {
		t.Errorf("primary = %q, want %q", got.ColorScheme.Primary, want.ColorScheme.Primary)
	}
	if !got.SectionVisibility["certifications"].Visible {
		t.Error("imported visibility lost the certifications toggle")
	}
}

func TestImportRejectsMissingCoreField(t *testing.T) {
	engine := newTestEngine()
	data, err := engine.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	delete(raw, "typography")
	broken, _ := json.Marshal(raw)

	err = newTestEngine().Import(broken)
	if err == nil {
		t.Fatal("expected import to fail without typography")
	}
	if !utils.IsKind(err, utils.ErrValidationFailed) {
		t.Errorf("unexpected error kind: %v", err)
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	if err := newTestEngine().Import([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestImportReappliesATSOptimization(t *testing.T) {
	engine := newTestEngine()
	data, err := engine.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var snapshot models.CustomizationSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	snapshot.ColorScheme.Primary = "#fafafa" // too light for a primary
	edited, _ := json.Marshal(snapshot)

	target := newTestEngine()
	if err := target.Import(edited); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := target.Snapshot().ColorScheme
	if got.Primary == "#fafafa" {
		t.Error("import should have forced the light primary to a safe dark value")
	}
	if err := theme.ValidateScheme(*got); err != nil {
		t.Errorf("imported scheme should be ATS-safe: %v", err)
	}
}

func TestImportForcesRequiredSectionVisible(t *testing.T) {
	engine := newTestEngine()
	data, err := engine.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var snapshot models.CustomizationSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	contact := snapshot.SectionVisibility["contact"]
	contact.Visible = false
	snapshot.SectionVisibility["contact"] = contact
	edited, _ := json.Marshal(snapshot)

	target := newTestEngine()
	if err := target.Import(edited); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if !target.Snapshot().SectionVisibility["contact"].Visible {
		t.Error("import should have forced the required contact section visible")
	}
}

func TestUndoImportRestoresEmptyHistory(t *testing.T) {
	source := newTestEngine()
	if err := source.ApplyColorTheme("forest"); err != nil {
		t.Fatalf("ApplyColorTheme: %v", err)
	}
	data, err := source.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	target := newTestEngine()
	if err := target.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !target.UndoLastChange() {
		t.Fatal("undoing the import should succeed")
	}

	// The target had no history before the import, so none may survive it.
	if got := target.HistoryLen(); got != 0 {
		t.Errorf("history length = %d after undoing the import, want 0", got)
	}
	if target.UndoLastChange() {
		t.Error("a second undo should find nothing to restore")
	}
}

func TestUndoUnappliedRecordReportsFalse(t *testing.T) {
	engine := newTestEngine()
	notified := 0
	engine.Subscribe(func(models.CustomizationSnapshot) { notified++ })

	// A deserialized record carries its previous value as a generic map,
	// which cannot be applied back onto the typed engine state.
	engine.history.Append(models.CustomizationChange{
		ID:            "chg_bad",
		Type:          models.ChangeTypeLayout,
		Property:      "layout",
		PreviousValue: map[string]interface{}{"columns": 1},
	})
	before := engine.Snapshot().Metadata.MutationCount

	if engine.UndoLastChange() {
		t.Error("an unappliable record must not report a successful undo")
	}
	if notified != 0 {
		t.Errorf("subscribers notified %d times, want 0", notified)
	}
	if got := engine.Snapshot().Metadata.MutationCount; got != before {
		t.Errorf("mutation count advanced from %d to %d on a failed undo", before, got)
	}
	if engine.HistoryLen() != 0 {
		t.Error("the unappliable record should stay popped")
	}
}

func TestReorderSectionsKeepsHiddenAfterVisible(t *testing.T) {
	engine := newTestEngine()

	if err := engine.ReorderSections([]string{"skills", "contact"}); err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}

	visibility := engine.Snapshot().SectionVisibility
	visibleCount := 0
	for _, section := range visibility {
		if section.Visible {
			visibleCount++
		}
	}
	for id, section := range visibility {
		if section.Visible && section.Order > visibleCount {
			t.Errorf("visible section %q has order %d beyond the visible block of %d",
				id, section.Order, visibleCount)
		}
		if !section.Visible && section.Order <= visibleCount {
			t.Errorf("hidden section %q has order %d inside the visible block of %d",
				id, section.Order, visibleCount)
		}
	}
}

func TestGenerateCSSSectionOrder(t *testing.T) {
	css := newTestEngine().GenerateCSS()

	rootIdx := indexOf(t, css, ":root")
	bodyIdx := indexOf(t, css, "body {")
	pageIdx := indexOf(t, css, ".resume-page")
	sectionIdx := indexOf(t, css, "[data-section=")

	if !(rootIdx < bodyIdx && bodyIdx < pageIdx && pageIdx < sectionIdx) {
		t.Errorf("stylesheet blocks out of order: %d %d %d %d", rootIdx, bodyIdx, pageIdx, sectionIdx)
	}
}

func TestAnalyticsScoresAndCap(t *testing.T) {
	engine := newTestEngine()
	analytics := engine.Analytics(nil)

	for name, score := range map[string]float64{
		"overall":     analytics.OverallScore,
		"ats":         analytics.ATSScore,
		"readability": analytics.ReadabilityScore,
		"layout":      analytics.LayoutScore,
	} {
		if score < 0 || score > 100 {
			t.Errorf("%s score %.1f out of range", name, score)
		}
	}
	if len(analytics.Recommendations) > 5 {
		t.Errorf("recommendations capped at 5, got %d", len(analytics.Recommendations))
	}
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		t.Fatalf("stylesheet missing %q", needle)
	}
	return idx
}
