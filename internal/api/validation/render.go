package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	templateIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	hexColorPattern   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// RegisterRenderValidators registers the custom validators the render and
// customization endpoints rely on.
func RegisterRenderValidators(v *validator.Validate) {
	_ = v.RegisterValidation("template_id", validateTemplateID)
	_ = v.RegisterValidation("hexcolor6", validateHexColor6)
}

// validateTemplateID accepts lowercase slug identifiers such as
// "tmpl_modern" or "two-column-2024".
func validateTemplateID(fl validator.FieldLevel) bool {
	return templateIDPattern.MatchString(fl.Field().String())
}

// validateHexColor6 accepts only the six-digit hex form. Shorthand
// three-digit colors are rejected because downstream contrast math
// expects full channels.
func validateHexColor6(fl validator.FieldLevel) bool {
	return hexColorPattern.MatchString(fl.Field().String())
}
