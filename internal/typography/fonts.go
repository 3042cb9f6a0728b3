package typography

import "sort"

// FontCategory groups fonts by rendering family.
type FontCategory string

const (
	CategorySerif     FontCategory = "serif"
	CategorySansSerif FontCategory = "sans-serif"
	CategoryMonospace FontCategory = "monospace"
)

// FontInfo describes one allow-listed font: how readable it rates on
// printed resumes and the CSS stack to emit for it.
type FontInfo struct {
	Category    FontCategory
	Readability int // 0-100
	Fallback    string
}

// fontCatalog is the curated allow-list. Only these families survive
// customization; anything else is dropped in favor of the default.
var fontCatalog = map[string]FontInfo{
	"Georgia":         {CategorySerif, 85, `Georgia, "Times New Roman", serif`},
	"Garamond":        {CategorySerif, 82, `Garamond, Georgia, serif`},
	"Times New Roman": {CategorySerif, 78, `"Times New Roman", Times, serif`},
	"Cambria":         {CategorySerif, 80, `Cambria, Georgia, serif`},
	"Palatino":        {CategorySerif, 81, `Palatino, "Palatino Linotype", serif`},

	"Arial":        {CategorySansSerif, 88, `Arial, Helvetica, sans-serif`},
	"Helvetica":    {CategorySansSerif, 90, `Helvetica, Arial, sans-serif`},
	"Calibri":      {CategorySansSerif, 92, `Calibri, "Segoe UI", sans-serif`},
	"Verdana":      {CategorySansSerif, 86, `Verdana, Geneva, sans-serif`},
	"Tahoma":       {CategorySansSerif, 85, `Tahoma, Geneva, sans-serif`},
	"Trebuchet MS": {CategorySansSerif, 84, `"Trebuchet MS", Helvetica, sans-serif`},

	"Courier New": {CategoryMonospace, 70, `"Courier New", Courier, monospace`},
	"Consolas":    {CategoryMonospace, 75, `Consolas, Monaco, monospace`},
	"Monaco":      {CategoryMonospace, 74, `Monaco, Consolas, monospace`},
}

// LookupFont returns catalog info for a family name.
func LookupFont(family string) (FontInfo, bool) {
	info, ok := fontCatalog[family]
	return info, ok
}

// IsAllowedTextFont reports whether a family may be used for heading, body
// or accent roles (serif or sans-serif).
func IsAllowedTextFont(family string) bool {
	info, ok := fontCatalog[family]
	return ok && info.Category != CategoryMonospace
}

// IsAllowedMonoFont reports whether a family may be used for the monospace role.
func IsAllowedMonoFont(family string) bool {
	info, ok := fontCatalog[family]
	return ok && info.Category == CategoryMonospace
}

// FallbackStack returns the CSS font stack for a family, or a generic stack
// for unknown families.
func FallbackStack(family string) string {
	if info, ok := fontCatalog[family]; ok {
		return info.Fallback
	}
	return "Arial, Helvetica, sans-serif"
}

// FontsByCategory lists the allow-listed family names of one category in
// sorted order.
func FontsByCategory(category FontCategory) []string {
	var names []string
	for name, info := range fontCatalog {
		if info.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
