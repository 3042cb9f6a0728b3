package pipeline

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"resumeforge-utils/pkg/models"
)

// renderMarkup turns the processed sections into the HTML document body.
// The stylesheet stays external unless the optimization stage inlines it.
func renderMarkup(rc *RenderingContext) (string, error) {
	var b strings.Builder

	title := rc.Resume.PersonalInfo.Name
	if title == "" {
		title = "Resume"
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<div class=\"resume-page\">\n<main class=\"resume-body resume-sections\">\n")

	ordered := make([]models.ProcessedSection, len(rc.Sections))
	copy(ordered, rc.Sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Visibility.Order < ordered[j].Visibility.Order
	})

	for _, section := range ordered {
		b.WriteString(fmt.Sprintf("<section class=\"resume-section\" data-section=\"%s\">\n",
			html.EscapeString(section.ID)))
		if section.ID != "contact" && section.Visibility.DisplayName != "" {
			b.WriteString(fmt.Sprintf("<h2 class=\"section-title\">%s</h2>\n",
				html.EscapeString(section.Visibility.DisplayName)))
		}
		writeSectionBody(&b, section)
		b.WriteString("</section>\n")
	}

	b.WriteString("</main>\n</div>\n</body>\n</html>\n")
	return b.String(), nil
}

func writeSectionBody(b *strings.Builder, section models.ProcessedSection) {
	switch data := section.Data.(type) {
	case models.PersonalInfo:
		writeContact(b, data)
	case string:
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(data)))
	case []models.ExperienceItem:
		for _, item := range data {
			writeExperience(b, item)
		}
	case []models.EducationItem:
		for _, item := range data {
			b.WriteString("<div class=\"item\">\n")
			b.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(item.Degree)))
			b.WriteString(fmt.Sprintf("<p class=\"accent-text\">%s</p>\n", html.EscapeString(item.Institution)))
			if item.EndDate != "" {
				b.WriteString(fmt.Sprintf("<p class=\"dates\">%s</p>\n",
					html.EscapeString(strings.TrimSpace(item.StartDate+" - "+item.EndDate))))
			}
			b.WriteString("</div>\n")
		}
	case []models.SkillGroup:
		for _, group := range data {
			b.WriteString("<div class=\"item\">\n")
			if group.Category != "" {
				b.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(group.Category)))
			}
			b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(strings.Join(group.Items, ", "))))
			b.WriteString("</div>\n")
		}
	case []models.ProjectItem:
		for _, item := range data {
			b.WriteString("<div class=\"item\">\n")
			b.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(item.Name)))
			if item.Description != "" {
				b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(item.Description)))
			}
			writeHighlights(b, item.Highlights)
			b.WriteString("</div>\n")
		}
	case []models.CertificationItem:
		for _, item := range data {
			line := item.Name
			if item.Issuer != "" {
				line += ", " + item.Issuer
			}
			b.WriteString(fmt.Sprintf("<p class=\"item\">%s</p>\n", html.EscapeString(line)))
		}
	case []models.LanguageItem:
		for _, item := range data {
			line := item.Name
			if item.Proficiency != "" {
				line += " (" + item.Proficiency + ")"
			}
			b.WriteString(fmt.Sprintf("<p class=\"item\">%s</p>\n", html.EscapeString(line)))
		}
	case []string:
		b.WriteString("<ul>\n")
		for _, line := range data {
			b.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(line)))
		}
		b.WriteString("</ul>\n")
	default:
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(fmt.Sprintf("%v", data))))
	}
}

func writeContact(b *strings.Builder, info models.PersonalInfo) {
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(info.Name)))
	b.WriteString("<div class=\"contact-info\">\n")
	parts := []string{info.Email, info.Phone, info.Location, info.Website, info.LinkedIn, info.GitHub}
	var present []string
	for _, part := range parts {
		if part != "" {
			present = append(present, html.EscapeString(part))
		}
	}
	b.WriteString(fmt.Sprintf("<p>%s</p>\n", strings.Join(present, " | ")))
	b.WriteString("</div>\n")
}

func writeExperience(b *strings.Builder, item models.ExperienceItem) {
	b.WriteString("<div class=\"item\">\n")
	b.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(item.Title)))
	employer := item.Company
	if item.Location != "" {
		employer += ", " + item.Location
	}
	b.WriteString(fmt.Sprintf("<p class=\"accent-text\">%s</p>\n", html.EscapeString(employer)))

	end := item.EndDate
	if item.Current {
		end = "Present"
	}
	if item.StartDate != "" || end != "" {
		b.WriteString(fmt.Sprintf("<p class=\"dates\">%s</p>\n",
			html.EscapeString(strings.TrimSpace(item.StartDate+" - "+end))))
	}
	if item.Description != "" {
		b.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(item.Description)))
	}
	writeHighlights(b, item.Highlights)
	b.WriteString("</div>\n")
}

func writeHighlights(b *strings.Builder, highlights []string) {
	if len(highlights) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, h := range highlights {
		b.WriteString(fmt.Sprintf("<li>%s</li>\n", html.EscapeString(h)))
	}
	b.WriteString("</ul>\n")
}
