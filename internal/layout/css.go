package layout

import (
	"fmt"
	"strings"

	"resumeforge-utils/pkg/models"
)

// CSS emits the page container and spacing rules for one layout.
func CSS(settings models.LayoutSettings) string {
	var b strings.Builder

	alignment := settings.Alignment
	if alignment == "" {
		alignment = "left"
	}

	b.WriteString(".resume-page {\n")
	b.WriteString(fmt.Sprintf("  width: %.2fin;\n", pageWidth))
	b.WriteString(fmt.Sprintf("  min-height: %.2fin;\n", pageHeight))
	b.WriteString(fmt.Sprintf("  padding: %.2fin %.2fin %.2fin %.2fin;\n",
		settings.MarginTop, settings.MarginRight, settings.MarginBottom, settings.MarginLeft))
	b.WriteString(fmt.Sprintf("  text-align: %s;\n", alignment))
	b.WriteString("  box-sizing: border-box;\n")
	b.WriteString("}\n\n")

	if settings.Columns > 1 {
		b.WriteString(".resume-body {\n")
		b.WriteString(fmt.Sprintf("  column-count: %d;\n", settings.Columns))
		b.WriteString(fmt.Sprintf("  column-gap: %.2fem;\n", settings.SectionGap))
		b.WriteString("}\n\n")
	}

	b.WriteString(".resume-section {\n")
	b.WriteString(fmt.Sprintf("  margin-bottom: %.2fem;\n", settings.SectionGap))
	b.WriteString("  break-inside: avoid;\n")
	b.WriteString("}\n\n")

	b.WriteString(".resume-section .item {\n")
	b.WriteString(fmt.Sprintf("  margin-bottom: %.2fem;\n", settings.ItemGap))
	b.WriteString("}\n")

	return b.String()
}
