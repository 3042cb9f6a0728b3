package theme

import (
	"fmt"
	"strings"

	"resumeforge-utils/pkg/models"
)

// roleOrder fixes the emission order of color custom properties.
var roleOrder = []string{
	"primary", "secondary", "accent", "background", "text",
	"muted", "border", "highlight", "link",
}

// CSSVariables emits the root-scoped custom-property block for a scheme.
func CSSVariables(scheme models.ColorScheme) string {
	roles := scheme.Roles()

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, role := range roleOrder {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", role, roles[role])
	}
	b.WriteString("}\n")

	b.WriteString(".accent-text { color: var(--color-accent); }\n")
	b.WriteString("a { color: var(--color-link); }\n")

	return b.String()
}
