package pipeline

import (
	"context"
	"fmt"

	"resumeforge-utils/pkg/models"
)

// DataBinder maps raw resume records into a template's field slots. The
// pipeline only depends on this contract, so a remote binder can be swapped
// in without touching stage code.
type DataBinder interface {
	Bind(ctx context.Context, template *models.ResumeTemplate, resume *models.ResumeData,
		overrides *models.CustomizationSnapshot) (*models.BindingResult, error)
}

// DefaultBinder binds section content straight off the resume model.
type DefaultBinder struct{}

func NewDefaultBinder() *DefaultBinder { return &DefaultBinder{} }

func (b *DefaultBinder) Bind(ctx context.Context, template *models.ResumeTemplate,
	resume *models.ResumeData, overrides *models.CustomizationSnapshot) (*models.BindingResult, error) {

	result := &models.BindingResult{
		Success: true,
		Data:    make(map[string]interface{}),
	}

	hidden := make(map[string]bool)
	if overrides != nil {
		for id, section := range overrides.SectionVisibility {
			if !section.Visible {
				hidden[id] = true
			}
		}
	}

	total := 0
	for _, section := range template.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hidden[section.ID] {
			continue
		}
		total++

		content := resume.SectionContent(section.ID)
		if content == nil {
			if section.Required {
				result.Errors = append(result.Errors, models.BindingError{
					Code:    models.BindingErrorMissingRequired,
					Message: fmt.Sprintf("required section %q has no content", section.ID),
					Section: section.ID,
				})
				result.Success = false
			} else {
				result.Warnings = append(result.Warnings, models.BindingWarning{
					Message: fmt.Sprintf("section %q has no content and will be skipped", section.ID),
					Impact:  "section omitted from output",
				})
			}
			continue
		}

		if section.ID == "contact" {
			b.checkContactFields(section, resume.PersonalInfo, result)
		}

		result.Data[section.ID] = content
		result.Metadata.BoundFields++
	}

	if total > 0 {
		result.Metadata.DataCompleteness = float64(result.Metadata.BoundFields) / float64(total) * 100
	}
	return result, nil
}

func (b *DefaultBinder) checkContactFields(section models.SectionDefinition,
	info models.PersonalInfo, result *models.BindingResult) {

	values := map[string]string{
		"name":  info.Name,
		"email": info.Email,
		"phone": info.Phone,
	}
	for _, rule := range section.Fields {
		value, known := values[rule.Field]
		if !known {
			continue
		}
		if rule.Required && value == "" {
			result.Errors = append(result.Errors, models.BindingError{
				Code:    models.BindingErrorMissingRequired,
				Message: fmt.Sprintf("contact field %q is required", rule.Field),
				Field:   rule.Field,
				Section: section.ID,
			})
			result.Success = false
			continue
		}
		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			result.Errors = append(result.Errors, models.BindingError{
				Code:    models.BindingErrorTypeMismatch,
				Message: fmt.Sprintf("contact field %q exceeds %d characters", rule.Field, rule.MaxLength),
				Field:   rule.Field,
				Section: section.ID,
			})
		}
	}
}
