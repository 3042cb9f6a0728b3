package typography

import (
	"fmt"
	"strings"

	"resumeforge-utils/pkg/models"
)

// CSS emits the typography rules for the standard text roles.
func CSS(settings models.TypographySettings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "body {\n  font-family: %s;\n  font-weight: %d;\n  font-size: %.1fpt;\n  line-height: %.2f;\n  letter-spacing: %.2fem;\n}\n",
		FallbackStack(settings.Body.Family),
		settings.Body.Weight,
		settings.Sizes["normal"],
		settings.Body.LineHeight,
		settings.Body.LetterSpacing,
	)

	fmt.Fprintf(&b, "h1, h2, h3, h4, h5, h6, .section-title {\n  font-family: %s;\n  font-weight: %d;\n  line-height: %.2f;\n}\n",
		FallbackStack(settings.Heading.Family),
		settings.Heading.Weight,
		settings.Heading.LineHeight,
	)

	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		if size, ok := settings.Sizes[level]; ok {
			fmt.Fprintf(&b, "%s { font-size: %.1fpt; }\n", level, size)
		}
	}

	fmt.Fprintf(&b, ".accent-text {\n  font-family: %s;\n  font-weight: %d;\n  letter-spacing: %.2fem;\n}\n",
		FallbackStack(settings.Accent.Family),
		settings.Accent.Weight,
		settings.Accent.LetterSpacing,
	)

	fmt.Fprintf(&b, "code, pre {\n  font-family: %s;\n}\n",
		FallbackStack(settings.Monospace.Family),
	)

	if small, ok := settings.Sizes["small"]; ok {
		fmt.Fprintf(&b, ".contact-info, small { font-size: %.1fpt; }\n", small)
	}

	return b.String()
}
