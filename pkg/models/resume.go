package models

// PersonalInfo carries the contact block of a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceItem is one work-history record.
type ExperienceItem struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// EducationItem is one education record.
type EducationItem struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillGroup is a named cluster of skills.
type SkillGroup struct {
	Category string   `json:"category,omitempty"`
	Items    []string `json:"items"`
}

// ProjectItem is one showcased project.
type ProjectItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// CertificationItem is one certification record.
type CertificationItem struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// LanguageItem is one spoken-language record.
type LanguageItem struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ResumeData is the user's content, read-only input to data binding. Keys
// beyond the typed fields land in Extras so templates with custom sections
// still bind.
type ResumeData struct {
	ID             string                   `json:"id"`
	PersonalInfo   PersonalInfo             `json:"personal_info"`
	Summary        string                   `json:"summary,omitempty"`
	Experience     []ExperienceItem         `json:"experience,omitempty"`
	Education      []EducationItem          `json:"education,omitempty"`
	Skills         []SkillGroup             `json:"skills,omitempty"`
	Projects       []ProjectItem            `json:"projects,omitempty"`
	Certifications []CertificationItem      `json:"certifications,omitempty"`
	Awards         []string                 `json:"awards,omitempty"`
	Publications   []string                 `json:"publications,omitempty"`
	Languages      []LanguageItem           `json:"languages,omitempty"`
	Volunteer      []ExperienceItem         `json:"volunteer,omitempty"`
	References     []string                 `json:"references,omitempty"`
	Extras         map[string]interface{}   `json:"extras,omitempty"`
}

// SectionContent returns the raw content for a section id, or nil when the
// resume carries nothing for it.
func (r *ResumeData) SectionContent(id string) interface{} {
	switch id {
	case "contact":
		return r.PersonalInfo
	case "summary":
		if r.Summary == "" {
			return nil
		}
		return r.Summary
	case "experience":
		if len(r.Experience) == 0 {
			return nil
		}
		return r.Experience
	case "education":
		if len(r.Education) == 0 {
			return nil
		}
		return r.Education
	case "skills":
		if len(r.Skills) == 0 {
			return nil
		}
		return r.Skills
	case "projects":
		if len(r.Projects) == 0 {
			return nil
		}
		return r.Projects
	case "certifications":
		if len(r.Certifications) == 0 {
			return nil
		}
		return r.Certifications
	case "awards":
		if len(r.Awards) == 0 {
			return nil
		}
		return r.Awards
	case "publications":
		if len(r.Publications) == 0 {
			return nil
		}
		return r.Publications
	case "languages":
		if len(r.Languages) == 0 {
			return nil
		}
		return r.Languages
	case "volunteer":
		if len(r.Volunteer) == 0 {
			return nil
		}
		return r.Volunteer
	case "references":
		if len(r.References) == 0 {
			return nil
		}
		return r.References
	default:
		if v, ok := r.Extras[id]; ok {
			return v
		}
		return nil
	}
}
