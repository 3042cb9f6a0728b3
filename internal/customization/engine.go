package customization

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resumeforge-utils/internal/layout"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/sections"
	"resumeforge-utils/internal/theme"
	"resumeforge-utils/internal/typography"
	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

const (
	defaultHistoryCapacity = 50
	snapshotVersion        = "1.0.0"
)

// Subscriber receives the full snapshot after every successful mutation.
type Subscriber func(models.CustomizationSnapshot)

// Engine owns the customization state of one editing session. It provides no
// internal locking: one session, one writer. Concurrent access must be
// serialized by the caller (the session manager does this).
type Engine struct {
	id         string
	templateID string
	userID     string

	colors     models.ColorScheme
	typography models.TypographySettings
	layout     models.LayoutSettings
	visibility models.SectionVisibility
	metadata   models.CustomizationMetadata

	history     *History
	subscribers []Subscriber
}

// NewEngine seeds a fresh engine from the module defaults.
func NewEngine(templateID, userID string, historyCapacity int) *Engine {
	now := time.Now()
	return &Engine{
		id:         utils.GenerateSessionID(),
		templateID: templateID,
		userID:     userID,
		colors:     theme.BaseTheme(),
		typography: typography.DefaultTypography(),
		layout:     layout.DefaultLayout(),
		visibility: sections.DefaultVisibility(),
		metadata: models.CustomizationMetadata{
			CreatedAt: now,
			UpdatedAt: now,
			Version:   snapshotVersion,
		},
		history: NewHistory(historyCapacity),
	}
}

func (e *Engine) ID() string         { return e.id }
func (e *Engine) TemplateID() string { return e.templateID }
func (e *Engine) UserID() string     { return e.userID }

// Subscribe registers a callback invoked synchronously, in subscription
// order, after every successful mutation.
func (e *Engine) Subscribe(fn Subscriber) {
	e.subscribers = append(e.subscribers, fn)
}

// Snapshot returns the current state in the export wire shape.
func (e *Engine) Snapshot() models.CustomizationSnapshot {
	colors := e.colors
	typo := e.typography
	lay := e.layout
	visibility := make(models.SectionVisibility, len(e.visibility))
	for id, section := range e.visibility {
		visibility[id] = section
	}
	return models.CustomizationSnapshot{
		ColorScheme:       &colors,
		Typography:        &typo,
		Layout:            &lay,
		SectionVisibility: visibility,
		Metadata:          e.metadata,
		BaseTemplate:      e.templateID,
	}
}

// HistoryLen reports how many changes are currently undoable.
func (e *Engine) HistoryLen() int { return e.history.Len() }

// ApplyColorTheme replaces the whole scheme with a named theme.
func (e *Engine) ApplyColorTheme(name string) error {
	scheme, ok := theme.NamedTheme(name)
	if !ok {
		return utils.NewValidationError(fmt.Sprintf("unknown color theme %q", name))
	}
	previous := e.colors
	e.colors = scheme
	e.recordAndNotify(models.ChangeTypeColor, "scheme", previous, scheme,
		map[string]interface{}{"theme": name})
	return nil
}

// CustomizeColor assigns one role, rejecting colors that are not ATS-safe.
func (e *Engine) CustomizeColor(role, color string) error {
	previous, ok := e.colors.Role(role)
	if !ok {
		return utils.NewValidationError(fmt.Sprintf("unknown color role %q", role))
	}
	if !theme.IsATSSafe(color) {
		return utils.NewValidationError(fmt.Sprintf("color %q is not ATS-safe", color))
	}
	e.colors.SetRole(role, color)
	e.recordAndNotify(models.ChangeTypeColor, role, previous, color, nil)
	return nil
}

// ApplyFontCombination replaces typography with a curated combination.
func (e *Engine) ApplyFontCombination(name string) error {
	settings, err := typography.ApplyProfessionalCombination(name)
	if err != nil {
		return err
	}
	previous := e.typography
	e.typography = settings
	e.recordAndNotify(models.ChangeTypeTypography, "combination", previous, settings,
		map[string]interface{}{"combination": name})
	return nil
}

// CustomizeTypography merges partial overrides; families outside the
// allow-lists are silently dropped by the typography module.
func (e *Engine) CustomizeTypography(overrides models.TypographyOverrides) error {
	previous := e.typography
	e.typography = typography.MergeTypography(e.typography, overrides)
	e.recordAndNotify(models.ChangeTypeTypography, "overrides", previous, e.typography, nil)
	return nil
}

// ApplyLayoutPreset replaces the layout with a named preset.
func (e *Engine) ApplyLayoutPreset(name string) error {
	settings, err := layout.ApplyPreset(name)
	if err != nil {
		return err
	}
	previous := e.layout
	e.layout = settings
	e.recordAndNotify(models.ChangeTypeLayout, "preset", previous, settings,
		map[string]interface{}{"preset": name})
	return nil
}

// CustomizeLayout merges partial layout overrides.
func (e *Engine) CustomizeLayout(overrides models.LayoutOverrides) error {
	merged, err := layout.MergeLayout(e.layout, overrides)
	if err != nil {
		return err
	}
	previous := e.layout
	e.layout = merged
	e.recordAndNotify(models.ChangeTypeLayout, "overrides", previous, merged, nil)
	return nil
}

// ToggleSection flips one section's visibility.
func (e *Engine) ToggleSection(id string) error {
	updated, err := sections.ToggleSection(id, e.visibility)
	if err != nil {
		return err
	}
	previous := e.visibility
	e.visibility = updated
	e.recordAndNotify(models.ChangeTypeSection, id, previous, updated, nil)
	return nil
}

// ReorderSections reassigns section ordering.
func (e *Engine) ReorderSections(orderedIDs []string) error {
	updated, err := sections.ReorderSections(orderedIDs, e.visibility)
	if err != nil {
		return err
	}
	previous := e.visibility
	e.visibility = updated
	e.recordAndNotify(models.ChangeTypeSection, "order", previous, updated,
		map[string]interface{}{"ordered_ids": orderedIDs})
	return nil
}

// ApplyRoleCustomization tailors section visibility and ordering to a
// target role, and adopts the matching industry fonts when one exists.
func (e *Engine) ApplyRoleCustomization(role string) error {
	recommended, ok := sections.RoleRecommendedSections(role)
	if !ok {
		return utils.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	previousVisibility := e.visibility
	previousTypography := e.typography

	updated := make(models.SectionVisibility, len(e.visibility))
	for id, section := range e.visibility {
		updated[id] = section
	}
	for _, id := range recommended {
		if section, exists := updated[id]; exists {
			section.Visible = true
			updated[id] = section
		}
	}
	reordered, err := sections.ReorderSections(recommended, updated)
	if err != nil {
		return err
	}
	e.visibility = reordered

	if fonts, found := typography.GetIndustryRecommendations(roleIndustry(role)); found {
		e.typography = typography.MergeTypography(e.typography, models.TypographyOverrides{
			HeadingFamily: &fonts.Heading,
			BodyFamily:    &fonts.Body,
		})
	}

	e.recordAndNotify(models.ChangeTypeRole, role,
		roleState{Visibility: previousVisibility, Typography: previousTypography},
		roleState{Visibility: e.visibility, Typography: e.typography},
		map[string]interface{}{"role": role})
	return nil
}

// roleIndustry maps role keywords onto the typography module's industry
// table.
func roleIndustry(role string) string {
	switch role {
	case "engineer", "developer":
		return "technology"
	case "designer":
		return "design"
	case "researcher", "academic", "graduate":
		return "academia"
	case "manager", "sales":
		return "marketing"
	default:
		return role
	}
}

// roleState bundles the fields a role customization touches so undo can
// restore them together.
type roleState struct {
	Visibility models.SectionVisibility
	Typography models.TypographySettings
}

// ResetToDefaults restores every field to its module default. The reset is
// recorded but cannot itself be undone.
func (e *Engine) ResetToDefaults() error {
	previous := e.Snapshot()
	e.colors = theme.BaseTheme()
	e.typography = typography.DefaultTypography()
	e.layout = layout.DefaultLayout()
	e.visibility = sections.DefaultVisibility()
	e.recordAndNotify(models.ChangeTypeReset, "all", previous, e.Snapshot(), nil)
	return nil
}

// UndoLastChange restores the previous value of the most recent change and
// reports whether an undo happened. A reset record clears the history
// instead of being undone.
func (e *Engine) UndoLastChange() bool {
	change, ok := e.history.Pop()
	if !ok {
		return false
	}

	if change.Type == models.ChangeTypeReset {
		e.history.Clear()
		return false
	}

	// A record whose previous value is not of the expected type cannot be
	// applied. It stays popped, but the engine state was not changed, so no
	// undo is reported and subscribers are not notified.
	restored := false
	switch change.Type {
	case models.ChangeTypeColor:
		if change.Property == "scheme" {
			if scheme, ok := change.PreviousValue.(models.ColorScheme); ok {
				e.colors = scheme
				restored = true
			}
		} else if color, ok := change.PreviousValue.(string); ok {
			e.colors.SetRole(change.Property, color)
			restored = true
		}
	case models.ChangeTypeTypography:
		if settings, ok := change.PreviousValue.(models.TypographySettings); ok {
			e.typography = settings
			restored = true
		}
	case models.ChangeTypeLayout:
		if settings, ok := change.PreviousValue.(models.LayoutSettings); ok {
			e.layout = settings
			restored = true
		}
	case models.ChangeTypeSection:
		if visibility, ok := change.PreviousValue.(models.SectionVisibility); ok {
			e.visibility = visibility
			restored = true
		}
	case models.ChangeTypeRole:
		if state, ok := change.PreviousValue.(roleState); ok {
			e.visibility = state.Visibility
			e.typography = state.Typography
			restored = true
		}
	case models.ChangeTypeImport:
		if snapshot, ok := change.PreviousValue.(models.CustomizationSnapshot); ok {
			e.restoreSnapshot(snapshot)
			restored = true
		}
	}
	if !restored {
		return false
	}

	e.touch()
	e.notify()
	return true
}

// Export serializes the full snapshot with change history.
func (e *Engine) Export() ([]byte, error) {
	snapshot := e.Snapshot()
	snapshot.ChangeHistory = e.history.Entries()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, utils.NewError(utils.ErrExportFailed,
			fmt.Sprintf("could not serialize customization: %v", err)).
			WithContext(e.templateID, e.userID)
	}
	return data, nil
}

// Import replaces the engine state from an exported snapshot. The payload
// is schema-checked first; imported colors, layout and section visibility
// are re-sanitized so a hand-edited snapshot cannot smuggle unsafe values
// or hide a required section.
func (e *Engine) Import(data []byte) error {
	if err := validateSnapshotJSON(data); err != nil {
		return err
	}

	var snapshot models.CustomizationSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return utils.NewError(utils.ErrParseError, fmt.Sprintf("could not decode snapshot: %v", err))
	}
	if snapshot.ColorScheme == nil || snapshot.Typography == nil ||
		snapshot.Layout == nil || len(snapshot.SectionVisibility) == 0 {
		return utils.NewValidationError("snapshot is missing one of colorScheme/typography/layout/sectionVisibility")
	}

	previous := e.Snapshot()
	previous.ChangeHistory = e.history.Entries()

	e.colors = theme.OptimizeForATS(*snapshot.ColorScheme)
	e.typography = *snapshot.Typography
	e.layout = sanitizeLayout(*snapshot.Layout)
	e.visibility = sections.SanitizeImported(snapshot.SectionVisibility)
	e.history.Replace(snapshot.ChangeHistory)

	e.recordAndNotify(models.ChangeTypeImport, "snapshot", previous, e.Snapshot(), nil)
	return nil
}

// sanitizeLayout pulls imported layout values back inside validated bounds
// instead of rejecting the whole snapshot.
func sanitizeLayout(settings models.LayoutSettings) models.LayoutSettings {
	if err := layout.Validate(settings); err == nil {
		return settings
	}
	fixed := layout.DefaultLayout()
	if settings.Columns >= 1 && settings.Columns <= 2 {
		fixed.Columns = settings.Columns
	}
	if settings.Alignment == "left" || settings.Alignment == "center" || settings.Alignment == "justify" {
		fixed.Alignment = settings.Alignment
	}
	return fixed
}

func (e *Engine) restoreSnapshot(snapshot models.CustomizationSnapshot) {
	if snapshot.ColorScheme != nil {
		e.colors = *snapshot.ColorScheme
	}
	if snapshot.Typography != nil {
		e.typography = *snapshot.Typography
	}
	if snapshot.Layout != nil {
		e.layout = *snapshot.Layout
	}
	if len(snapshot.SectionVisibility) > 0 {
		e.visibility = snapshot.SectionVisibility
	}
	// The snapshot's history is authoritative, even when empty. Leaving a
	// stale history behind would let later undos replay records that never
	// belonged to the restored state.
	e.history.Replace(snapshot.ChangeHistory)
}

// Analytics grades the session across typography, layout and sections.
// Section content may be nil when the caller has no resume data at hand.
func (e *Engine) Analytics(content map[string]interface{}) models.CustomizationAnalytics {
	readability := typography.CalculateReadabilityScore(e.typography)
	layoutScore := layout.EfficiencyScore(e.layout)
	sectionReport := sections.GetSectionAnalytics(e.visibility, content)

	analytics := models.CustomizationAnalytics{
		ReadabilityScore: readability.Score,
		LayoutScore:      layoutScore,
		SectionScore:     sectionReport.ATSScore,
	}
	analytics.OverallScore = (readability.Score + layoutScore + sectionReport.ATSScore) / 3
	analytics.ATSScore = 100 -
		(100-readability.Score)*0.3 -
		(100-sectionReport.ATSScore)*0.4 -
		(100-layoutScore)*0.3
	analytics.ATSScore = utils.Clamp(analytics.ATSScore, 0, 100)

	dimensions := []struct {
		name  string
		score float64
	}{
		{"typography readability", readability.Score},
		{"layout efficiency", layoutScore},
		{"section structure", sectionReport.ATSScore},
	}
	for _, dim := range dimensions {
		switch {
		case dim.score >= 85:
			analytics.Strengths = append(analytics.Strengths, fmt.Sprintf("Strong %s", dim.name))
		case dim.score <= 60:
			analytics.Warnings = append(analytics.Warnings, fmt.Sprintf("Weak %s", dim.name))
		}
	}

	analytics.Recommendations = append(analytics.Recommendations, readability.Recommendations...)
	analytics.Recommendations = append(analytics.Recommendations, sectionReport.Recommendations...)
	if len(analytics.Recommendations) > 5 {
		analytics.Recommendations = analytics.Recommendations[:5]
	}
	return analytics
}

// GenerateCSS assembles the full stylesheet: color custom properties,
// typography rules, layout rules, then per-section visibility selectors.
func (e *Engine) GenerateCSS() string {
	parts := []string{
		theme.CSSVariables(e.colors),
		typography.CSS(e.typography),
		layout.CSS(e.layout),
		sections.CSS(e.visibility),
	}
	return strings.Join(parts, "\n")
}

// Customization returns the aggregate model for persistence and rendering.
func (e *Engine) Customization() models.TemplateCustomization {
	return models.TemplateCustomization{
		ID:                e.id,
		TemplateID:        e.templateID,
		ColorScheme:       e.colors,
		Typography:        e.typography,
		Layout:            e.layout,
		SectionVisibility: e.visibility,
		Metadata:          e.metadata,
	}
}

func (e *Engine) recordAndNotify(changeType models.ChangeType, property string,
	previous, next interface{}, metadata map[string]interface{}) {

	e.history.Append(models.CustomizationChange{
		ID:            utils.GenerateChangeID(),
		Type:          changeType,
		Property:      property,
		PreviousValue: previous,
		NewValue:      next,
		Timestamp:     time.Now(),
		Metadata:      metadata,
	})
	e.touch()
	e.notify()
}

func (e *Engine) touch() {
	e.metadata.UpdatedAt = time.Now()
	e.metadata.MutationCount++
}

// notify calls every subscriber with the fresh snapshot. A panicking
// subscriber is logged and skipped so it cannot block the rest.
func (e *Engine) notify() {
	snapshot := e.Snapshot()
	log := logging.GetGlobalLogger()
	for i, subscriber := range e.subscribers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("customization subscriber panicked", map[string]interface{}{
						"subscriber": i,
						"session_id": e.id,
						"panic":      fmt.Sprintf("%v", r),
					})
				}
			}()
			subscriber(snapshot)
		}()
	}
}
