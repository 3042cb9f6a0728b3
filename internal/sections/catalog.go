package sections

import (
	"sort"

	"resumeforge-utils/pkg/models"
)

// defaultCatalog is the canonical section set every template starts from.
var defaultCatalog = []models.SectionConfig{
	{ID: "contact", DisplayName: "Contact Information", Visible: true, Required: true, Priority: 1, Order: 1, MinItems: 1, MaxItems: 1, Description: "Name, email, phone and links"},
	{ID: "summary", DisplayName: "Professional Summary", Visible: true, Required: false, Priority: 2, Order: 2, MinItems: 1, MaxItems: 1, Description: "Short pitch at the top of the resume"},
	{ID: "experience", DisplayName: "Work Experience", Visible: true, Required: true, Priority: 1, Order: 3, MinItems: 1, MaxItems: 10, Description: "Employment history"},
	{ID: "education", DisplayName: "Education", Visible: true, Required: true, Priority: 1, Order: 4, MinItems: 1, MaxItems: 5, Description: "Degrees and institutions"},
	{ID: "skills", DisplayName: "Skills", Visible: true, Required: true, Priority: 2, Order: 5, MinItems: 1, MaxItems: 20, Description: "Skill groups and keywords"},
	{ID: "projects", DisplayName: "Projects", Visible: true, Required: false, Priority: 3, Order: 6, MinItems: 1, MaxItems: 6, Description: "Selected projects"},
	{ID: "certifications", DisplayName: "Certifications", Visible: false, Required: false, Priority: 3, Order: 7, MinItems: 1, MaxItems: 10, Description: "Professional certifications"},
	{ID: "awards", DisplayName: "Awards", Visible: false, Required: false, Priority: 4, Order: 8, MinItems: 1, MaxItems: 10, Description: "Honors and awards"},
	{ID: "publications", DisplayName: "Publications", Visible: false, Required: false, Priority: 4, Order: 9, MinItems: 1, MaxItems: 10, Description: "Published work"},
	{ID: "languages", DisplayName: "Languages", Visible: false, Required: false, Priority: 4, Order: 10, MinItems: 1, MaxItems: 10, Description: "Spoken languages"},
	{ID: "volunteer", DisplayName: "Volunteer Experience", Visible: false, Required: false, Priority: 5, Order: 11, MinItems: 1, MaxItems: 5, Description: "Volunteer work"},
	{ID: "references", DisplayName: "References", Visible: false, Required: false, Priority: 5, Order: 12, MinItems: 1, MaxItems: 5, Description: "Professional references"},
}

// atsPreferredOrder is the canonical sequence ATS parsers handle best.
var atsPreferredOrder = []string{
	"contact", "summary", "experience", "education", "skills", "projects",
	"certifications", "awards", "publications", "languages", "volunteer", "references",
}

// roleRecommendations maps a job role keyword to the sections worth showing.
var roleRecommendations = map[string][]string{
	"engineer":   {"contact", "summary", "experience", "skills", "projects", "education", "certifications"},
	"developer":  {"contact", "summary", "experience", "skills", "projects", "education", "certifications"},
	"designer":   {"contact", "summary", "experience", "projects", "skills", "education"},
	"manager":    {"contact", "summary", "experience", "education", "skills", "certifications"},
	"researcher": {"contact", "summary", "education", "publications", "experience", "skills"},
	"academic":   {"contact", "summary", "education", "publications", "experience", "awards"},
	"graduate":   {"contact", "summary", "education", "projects", "skills", "experience", "volunteer"},
	"sales":      {"contact", "summary", "experience", "skills", "awards", "education"},
}

// DefaultVisibility returns a copy of the default catalog keyed by id.
func DefaultVisibility() models.SectionVisibility {
	visibility := make(models.SectionVisibility, len(defaultCatalog))
	for _, section := range defaultCatalog {
		visibility[section.ID] = section
	}
	return visibility
}

// ATSPreferredOrder returns the canonical section sequence.
func ATSPreferredOrder() []string {
	out := make([]string, len(atsPreferredOrder))
	copy(out, atsPreferredOrder)
	return out
}

// RoleRecommendedSections returns the recommended section ids for a role
// keyword.
func RoleRecommendedSections(role string) ([]string, bool) {
	ids, ok := roleRecommendations[role]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// SortedByOrder returns the configs of a visibility map ordered by their
// Order field, with id as the tiebreaker so the result is deterministic.
func SortedByOrder(visibility models.SectionVisibility) []models.SectionConfig {
	configs := make([]models.SectionConfig, 0, len(visibility))
	for _, section := range visibility {
		configs = append(configs, section)
	}
	sort.Slice(configs, func(i, j int) bool {
		if configs[i].Order != configs[j].Order {
			return configs[i].Order < configs[j].Order
		}
		return configs[i].ID < configs[j].ID
	})
	return configs
}

// VisibleInOrder returns only the visible configs, ordered.
func VisibleInOrder(visibility models.SectionVisibility) []models.SectionConfig {
	var visible []models.SectionConfig
	for _, section := range SortedByOrder(visibility) {
		if section.Visible {
			visible = append(visible, section)
		}
	}
	return visible
}
