package sections

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// VisibilityOverride is a partial update for one section.
type VisibilityOverride struct {
	Visible *bool `json:"visible,omitempty"`
	Order   *int  `json:"order,omitempty"`
}

// CreateCustomVisibility applies visible/order overrides onto the default
// catalog. A required section may not end up hidden; duplicate orders among
// visible sections are resolved by reassigning contiguous orders in the
// current sort sequence.
func CreateCustomVisibility(overrides map[string]VisibilityOverride) (models.SectionVisibility, error) {
	visibility := DefaultVisibility()

	for id, override := range overrides {
		section, ok := visibility[id]
		if !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("unknown section %q", id))
		}
		if override.Visible != nil {
			if section.Required && !*override.Visible {
				return nil, utils.NewValidationError(
					fmt.Sprintf("section %q is required and cannot be hidden", id))
			}
			section.Visible = *override.Visible
		}
		if override.Order != nil {
			section.Order = *override.Order
		}
		visibility[id] = section
	}

	resolveDuplicateOrders(visibility)
	return visibility, nil
}

// SanitizeImported rebuilds an externally supplied visibility map on top of
// the catalog. Unknown section ids are dropped, catalog metadata wins over
// whatever the input carried, required sections are forced visible, and
// colliding orders are repaired. Only Visible and Order survive from the
// input.
func SanitizeImported(imported models.SectionVisibility) models.SectionVisibility {
	visibility := DefaultVisibility()

	for id, section := range visibility {
		incoming, ok := imported[id]
		if !ok {
			continue
		}
		section.Visible = incoming.Visible
		section.Order = incoming.Order
		if section.Required {
			section.Visible = true
		}
		visibility[id] = section
	}

	resolveDuplicateOrders(visibility)
	return visibility
}

// resolveDuplicateOrders reassigns contiguous orders 1..N to visible
// sections in their current sort sequence when any two collide, then moves
// hidden sections to the orders above N.
func resolveDuplicateOrders(visibility models.SectionVisibility) {
	seen := make(map[int]bool)
	duplicated := false
	for _, section := range visibility {
		if !section.Visible {
			continue
		}
		if seen[section.Order] {
			duplicated = true
			break
		}
		seen[section.Order] = true
	}
	if !duplicated {
		return
	}

	order := 1
	for _, section := range SortedByOrder(visibility) {
		if !section.Visible {
			continue
		}
		section.Order = order
		visibility[section.ID] = section
		order++
	}
	for _, section := range SortedByOrder(visibility) {
		if section.Visible {
			continue
		}
		section.Order = order
		visibility[section.ID] = section
		order++
	}
}

// ToggleSection flips visibility of one section. Hiding a required section
// is rejected; everything else in the map is left untouched.
func ToggleSection(id string, current models.SectionVisibility) (models.SectionVisibility, error) {
	section, ok := current[id]
	if !ok {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown section %q", id))
	}
	if section.Required && section.Visible {
		return nil, utils.NewValidationError(
			fmt.Sprintf("section %q is required and cannot be hidden", id))
	}

	updated := cloneVisibility(current)
	section.Visible = !section.Visible
	updated[id] = section
	return updated, nil
}

// ReorderSections assigns order index+1 to each id in orderedIDs, then
// subsequent orders to every remaining section in its existing relative
// order. Unknown ids are rejected.
func ReorderSections(orderedIDs []string, current models.SectionVisibility) (models.SectionVisibility, error) {
	for _, id := range orderedIDs {
		if _, ok := current[id]; !ok {
			return nil, utils.NewValidationError(fmt.Sprintf("unknown section %q", id))
		}
	}

	updated := cloneVisibility(current)
	listed := make(map[string]bool, len(orderedIDs))

	for index, id := range orderedIDs {
		section := updated[id]
		section.Order = index + 1
		updated[id] = section
		listed[id] = true
	}

	// Remaining sections keep their relative order above the listed block.
	var rest []models.SectionConfig
	for _, section := range SortedByOrder(current) {
		if !listed[section.ID] {
			rest = append(rest, section)
		}
	}
	next := len(orderedIDs) + 1
	for _, section := range rest {
		section.Order = next
		updated[section.ID] = section
		next++
	}

	return updated, nil
}

// ContentValidation is the structured result of validating one section's
// content.
type ContentValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateSectionContent checks a section's content against its min/max
// item bounds and section-specific structural rules. Hidden sections are
// always valid.
func ValidateSectionContent(id string, content interface{}, visibility models.SectionVisibility) ContentValidation {
	result := ContentValidation{Valid: true}

	section, ok := visibility[id]
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unknown section %q", id))
		return result
	}
	if !section.Visible {
		return result
	}

	if isEmptyContent(content) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("section %q is visible but has no content", id))
		return result
	}

	if count, isList := itemCount(content); isList {
		if count < section.MinItems {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("section %q has %d items, at least %d required", id, count, section.MinItems))
		}
		if section.MaxItems > 0 && count > section.MaxItems {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("section %q has %d items, more than the recommended %d", id, count, section.MaxItems))
		}
	}

	structuralChecks(id, content, &result)
	return result
}

// structuralChecks applies per-section field requirements.
func structuralChecks(id string, content interface{}, result *ContentValidation) {
	switch id {
	case "contact":
		for _, field := range []string{"name", "email", "phone"} {
			if fieldValue(content, field) == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("contact is missing %s", field))
			}
		}
	case "experience", "volunteer":
		forEachItem(content, func(i int, item interface{}) {
			if fieldValue(item, "title") == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s entry %d is missing a title", id, i+1))
			}
			if fieldValue(item, "company") == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s entry %d is missing a company", id, i+1))
			}
		})
	case "education":
		forEachItem(content, func(i int, item interface{}) {
			if fieldValue(item, "institution") == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("education entry %d is missing an institution", i+1))
			}
			if fieldValue(item, "degree") == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("education entry %d is missing a degree", i+1))
			}
		})
	}
}

// OptimizeForATS reassigns orders to the canonical ATS-preferred sequence
// and forces the core sections visible.
func OptimizeForATS(visibility models.SectionVisibility) models.SectionVisibility {
	updated := cloneVisibility(visibility)

	for _, id := range []string{"contact", "experience", "education", "skills"} {
		if section, ok := updated[id]; ok {
			section.Visible = true
			updated[id] = section
		}
	}

	order := 1
	for _, id := range atsPreferredOrder {
		if section, ok := updated[id]; ok && section.Visible {
			section.Order = order
			updated[id] = section
			order++
		}
	}
	for _, id := range atsPreferredOrder {
		if section, ok := updated[id]; ok && !section.Visible {
			section.Order = order
			updated[id] = section
			order++
		}
	}

	return updated
}

// SectionAnalytics grades the section setup of one customization.
type SectionAnalytics struct {
	Completeness    float64  `json:"completeness"` // 0-100
	ATSScore        float64  `json:"ats_score"`    // 0-100
	VisibleCount    int      `json:"visible_count"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// GetSectionAnalytics computes content completeness against section
// minimums (capped at 10 points per section), an ATS score blending
// required-section visibility, order conformance and completeness, and
// qualitative recommendations.
func GetSectionAnalytics(visibility models.SectionVisibility, content map[string]interface{}) SectionAnalytics {
	visible := VisibleInOrder(visibility)

	analytics := SectionAnalytics{VisibleCount: len(visible)}
	if len(visible) == 0 {
		analytics.Recommendations = append(analytics.Recommendations, "Make at least the core sections visible")
		return analytics
	}

	// Completeness: content volume against each visible section's minimum.
	var points float64
	for _, section := range visible {
		sectionContent, ok := content[section.ID]
		if !ok || isEmptyContent(sectionContent) {
			continue
		}
		count, isList := itemCount(sectionContent)
		if !isList {
			count = 1
		}
		minItems := section.MinItems
		if minItems < 1 {
			minItems = 1
		}
		p := float64(count) / float64(minItems) * 10
		if p > 10 {
			p = 10
		}
		points += p
	}
	analytics.Completeness = points / float64(10*len(visible)) * 100

	// Required-section visibility fraction.
	var required, requiredVisible int
	for _, section := range visibility {
		if section.Required {
			required++
			if section.Visible {
				requiredVisible++
			}
		}
	}
	requiredFraction := 1.0
	if required > 0 {
		requiredFraction = float64(requiredVisible) / float64(required)
	}

	// Order conformance: how closely the visible sequence matches the ideal
	// prefix built from the same ids.
	ideal := make([]string, 0, len(visible))
	visibleIDs := make(map[string]bool, len(visible))
	for _, section := range visible {
		visibleIDs[section.ID] = true
	}
	for _, id := range atsPreferredOrder {
		if visibleIDs[id] {
			ideal = append(ideal, id)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Order < visible[j].Order })
	matches := 0
	for i, section := range visible {
		if i < len(ideal) && ideal[i] == section.ID {
			matches++
		}
	}
	orderFraction := float64(matches) / float64(len(visible))

	analytics.ATSScore = requiredFraction*40 + orderFraction*30 + analytics.Completeness*0.3

	if len(visible) < 5 {
		analytics.Recommendations = append(analytics.Recommendations,
			"Consider adding more sections to give a fuller picture")
	}
	if len(visible) > 8 {
		analytics.Recommendations = append(analytics.Recommendations,
			"Consider reducing the number of sections to keep the resume focused")
	}
	if requiredFraction < 1 {
		analytics.Recommendations = append(analytics.Recommendations,
			"Every required section should be visible")
	}
	if orderFraction < 1 {
		analytics.Recommendations = append(analytics.Recommendations,
			"Reorder sections toward the standard resume sequence for better ATS parsing")
	}
	if analytics.Completeness < 60 {
		analytics.Recommendations = append(analytics.Recommendations,
			"Fill out visible sections; several are below their minimum content")
	}

	return analytics
}

func cloneVisibility(visibility models.SectionVisibility) models.SectionVisibility {
	out := make(models.SectionVisibility, len(visibility))
	for id, section := range visibility {
		out[id] = section
	}
	return out
}

// itemCount reports the length of list-like content.
func itemCount(content interface{}) (int, bool) {
	v := reflect.ValueOf(content)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return v.Len(), true
	}
	return 0, false
}

func isEmptyContent(content interface{}) bool {
	if content == nil {
		return true
	}
	v := reflect.ValueOf(content)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// fieldValue extracts a string field from either a map or a struct,
// matching the binder's loosely keyed output as well as typed records.
func fieldValue(item interface{}, field string) string {
	if m, ok := item.(map[string]interface{}); ok {
		if s, ok := m[field].(string); ok {
			return s
		}
		return ""
	}

	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, field) {
			if s, ok := v.Field(i).Interface().(string); ok {
				return s
			}
			return ""
		}
	}
	return ""
}

func forEachItem(content interface{}, fn func(int, interface{})) {
	v := reflect.ValueOf(content)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return
	}
	for i := 0; i < v.Len(); i++ {
		fn(i, v.Index(i).Interface())
	}
}
