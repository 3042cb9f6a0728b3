package sections

import (
	"strings"
	"testing"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

func TestDefaultVisibilityContiguousOrders(t *testing.T) {
	visibility := DefaultVisibility()
	visible := VisibleInOrder(visibility)

	for i, section := range visible {
		if section.Order != i+1 {
			t.Errorf("visible section %q has order %d, want %d", section.ID, section.Order, i+1)
		}
	}
}

func TestToggleSectionFlipsExactlyOne(t *testing.T) {
	original := DefaultVisibility()

	updated, err := ToggleSection("projects", original)
	if err != nil {
		t.Fatalf("ToggleSection: %v", err)
	}

	if updated["projects"].Visible == original["projects"].Visible {
		t.Error("projects visibility was not flipped")
	}
	for id, section := range updated {
		if id == "projects" {
			continue
		}
		if section != original[id] {
			t.Errorf("section %q changed unexpectedly: %+v != %+v", id, section, original[id])
		}
	}
}

func TestToggleSectionRejectsHidingRequired(t *testing.T) {
	visibility := DefaultVisibility()

	_, err := ToggleSection("experience", visibility)
	if err == nil {
		t.Fatal("expected error hiding a required visible section")
	}
	if !utils.IsKind(err, utils.ErrValidationFailed) {
		t.Errorf("unexpected error kind: %v", err)
	}
}

func TestToggleSectionUnknownID(t *testing.T) {
	if _, err := ToggleSection("hobbies_v2", DefaultVisibility()); err == nil {
		t.Fatal("expected error for unknown section id")
	}
}

func TestReorderSectionsAssignsListedThenRest(t *testing.T) {
	visibility := DefaultVisibility()

	updated, err := ReorderSections([]string{"skills", "experience"}, visibility)
	if err != nil {
		t.Fatalf("ReorderSections: %v", err)
	}

	if updated["skills"].Order != 1 {
		t.Errorf("skills order = %d, want 1", updated["skills"].Order)
	}
	if updated["experience"].Order != 2 {
		t.Errorf("experience order = %d, want 2", updated["experience"].Order)
	}

	// Remaining sections keep their relative order and occupy 3..N uniquely.
	seen := make(map[int]string)
	for id, section := range updated {
		if prev, dup := seen[section.Order]; dup {
			t.Errorf("sections %q and %q share order %d", prev, id, section.Order)
		}
		seen[section.Order] = id
	}
	if updated["contact"].Order >= updated["summary"].Order {
		t.Errorf("contact (%d) should still precede summary (%d)",
			updated["contact"].Order, updated["summary"].Order)
	}
}

func TestReorderSectionsUnknownID(t *testing.T) {
	if _, err := ReorderSections([]string{"nope"}, DefaultVisibility()); err == nil {
		t.Fatal("expected error for unknown section id")
	}
}

func TestCreateCustomVisibilityResolvesDuplicates(t *testing.T) {
	five := 5
	visibility, err := CreateCustomVisibility(map[string]VisibilityOverride{
		"summary": {Order: &five},
		"skills":  {Order: &five},
	})
	if err != nil {
		t.Fatalf("CreateCustomVisibility: %v", err)
	}

	visible := VisibleInOrder(visibility)
	for i, section := range visible {
		if section.Order != i+1 {
			t.Errorf("after collision repair, %q has order %d, want %d", section.ID, section.Order, i+1)
		}
	}
}

func TestCreateCustomVisibilityRejectsHidingRequired(t *testing.T) {
	hidden := false
	_, err := CreateCustomVisibility(map[string]VisibilityOverride{
		"contact": {Visible: &hidden},
	})
	if err == nil {
		t.Fatal("expected error hiding a required section")
	}
}

func TestSanitizeImportedRepairsTamperedMap(t *testing.T) {
	tampered := DefaultVisibility()

	contact := tampered["contact"]
	contact.Visible = false
	contact.Required = false
	tampered["contact"] = contact
	tampered["hobbies_v2"] = models.SectionConfig{ID: "hobbies_v2", Visible: true, Order: 1}

	sanitized := SanitizeImported(tampered)

	if _, ok := sanitized["hobbies_v2"]; ok {
		t.Error("unknown section should be dropped")
	}
	if !sanitized["contact"].Visible {
		t.Error("required contact section must come back visible")
	}
	if !sanitized["contact"].Required {
		t.Error("catalog required flag must win over the imported one")
	}
}

func TestSanitizeImportedKeepsCustomOrdering(t *testing.T) {
	custom := DefaultVisibility()
	for i, id := range []string{"contact", "skills", "experience", "education", "summary", "projects"} {
		section := custom[id]
		section.Order = i + 1
		custom[id] = section
	}

	sanitized := SanitizeImported(custom)
	visible := VisibleInOrder(sanitized)
	if visible[1].ID != "skills" {
		t.Errorf("second section = %q, want skills", visible[1].ID)
	}
	if visible[4].ID != "summary" {
		t.Errorf("fifth section = %q, want summary", visible[4].ID)
	}
}

func TestValidateSectionContentHiddenAlwaysValid(t *testing.T) {
	visibility := DefaultVisibility()
	section := visibility["projects"]
	section.Visible = false
	visibility["projects"] = section

	result := ValidateSectionContent("projects", nil, visibility)
	if !result.Valid {
		t.Errorf("hidden section should validate: %v", result.Errors)
	}
}

func TestValidateSectionContentExperienceRules(t *testing.T) {
	visibility := DefaultVisibility()

	items := []models.ExperienceItem{{Title: "Engineer"}} // company missing
	result := ValidateSectionContent("experience", items, visibility)
	if result.Valid {
		t.Fatal("expected experience entry without company to fail")
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "company") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors do not mention the missing company: %v", result.Errors)
	}
}

func TestValidateSectionContentContactFields(t *testing.T) {
	visibility := DefaultVisibility()

	content := map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com"}
	result := ValidateSectionContent("contact", content, visibility)
	if result.Valid {
		t.Fatal("expected contact without phone to fail")
	}
}

func TestValidateSectionContentMaxItemsWarns(t *testing.T) {
	visibility := DefaultVisibility()
	skills := make([]models.SkillGroup, 25)
	for i := range skills {
		skills[i] = models.SkillGroup{Category: "Tools", Items: []string{"x"}}
	}

	result := ValidateSectionContent("skills", skills, visibility)
	if !result.Valid {
		t.Fatalf("over-limit skills should warn, not fail: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for exceeding the recommended item count")
	}
}

func TestOptimizeForATSForcesCoreAndOrder(t *testing.T) {
	visibility := DefaultVisibility()
	section := visibility["skills"]
	section.Visible = false
	visibility["skills"] = section

	optimized := OptimizeForATS(visibility)
	if !optimized["skills"].Visible {
		t.Error("skills should be forced visible")
	}

	visible := VisibleInOrder(optimized)
	if visible[0].ID != "contact" {
		t.Errorf("first section = %q, want contact", visible[0].ID)
	}
	for i, section := range visible {
		if section.Order != i+1 {
			t.Errorf("section %q order = %d, want %d", section.ID, section.Order, i+1)
		}
	}
}

func TestOptimizeForATSIdempotent(t *testing.T) {
	once := OptimizeForATS(DefaultVisibility())
	twice := OptimizeForATS(once)
	for id, section := range once {
		if twice[id] != section {
			t.Errorf("section %q changed on second pass: %+v != %+v", id, twice[id], section)
		}
	}
}

func TestGetSectionAnalyticsRecommendations(t *testing.T) {
	visibility := DefaultVisibility()
	content := map[string]interface{}{
		"contact": map[string]interface{}{"name": "Ada", "email": "a@b.c", "phone": "1"},
	}

	analytics := GetSectionAnalytics(visibility, content)
	if analytics.Completeness >= 60 {
		t.Errorf("mostly empty content should score low, got %.1f", analytics.Completeness)
	}
	if analytics.ATSScore <= 0 || analytics.ATSScore > 100 {
		t.Errorf("ATS score out of range: %.1f", analytics.ATSScore)
	}
	if len(analytics.Recommendations) == 0 {
		t.Error("expected recommendations for sparse content")
	}
}

func TestCSSHiddenAndOrderRules(t *testing.T) {
	visibility := DefaultVisibility()
	section := visibility["projects"]
	section.Visible = false
	visibility["projects"] = section

	css := CSS(visibility)
	if !strings.Contains(css, `[data-section="projects"] {
  display: none;`) {
		t.Error("hidden section should emit display: none")
	}
	if !strings.Contains(css, `[data-section="contact"] {
  order: 1;`) {
		t.Error("contact should emit order: 1")
	}
}
