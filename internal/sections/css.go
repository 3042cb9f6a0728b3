package sections

import (
	"fmt"
	"strings"

	"resumeforge-utils/pkg/models"
)

// CSS emits per-section display and flex-order rules keyed on the
// data-section attribute the rendered markup carries.
func CSS(visibility models.SectionVisibility) string {
	var b strings.Builder

	b.WriteString(".resume-sections {\n")
	b.WriteString("  display: flex;\n")
	b.WriteString("  flex-direction: column;\n")
	b.WriteString("}\n\n")

	for _, section := range SortedByOrder(visibility) {
		selector := fmt.Sprintf("[data-section=%q]", section.ID)
		if !section.Visible {
			b.WriteString(fmt.Sprintf("%s {\n  display: none;\n}\n\n", selector))
			continue
		}
		b.WriteString(fmt.Sprintf("%s {\n  order: %d;\n}\n\n", selector, section.Order))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
