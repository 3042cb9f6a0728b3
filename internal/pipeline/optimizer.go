package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"resumeforge-utils/pkg/models"
)

var (
	interTagWhitespace = regexp.MustCompile(`>\s+<`)
	cssWhitespace      = regexp.MustCompile(`\s+`)
	cssComments        = regexp.MustCompile(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)
)

// optimize applies the selected transforms to the rendered markup and
// stylesheet in place.
func optimize(ctx context.Context, rc *RenderingContext, opts models.OptimizationOptions) error {
	if rc.Markup == "" {
		return fmt.Errorf("no markup to optimize")
	}

	if opts.MinifyCSS {
		rc.Stylesheet = minifyCSS(rc.Stylesheet)
	}
	if opts.MinifyHTML {
		minified, err := minifyHTML(rc.Markup)
		if err != nil {
			return fmt.Errorf("minify markup: %w", err)
		}
		rc.Markup = minified
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.InlineCSS {
		inlined, err := inlineStylesheet(rc.Markup, rc.Stylesheet)
		if err != nil {
			return fmt.Errorf("inline stylesheet: %w", err)
		}
		rc.Markup = inlined
	}
	if opts.Compress {
		rc.Markup = strings.TrimSpace(rc.Markup)
		rc.Stylesheet = strings.TrimSpace(rc.Stylesheet)
	}
	return nil
}

// minifyHTML parses the document and re-serializes it with inter-tag
// whitespace collapsed.
func minifyHTML(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return interTagWhitespace.ReplaceAllString(out, "><"), nil
}

// inlineStylesheet injects the stylesheet as a <style> element in <head>,
// so the document renders standalone.
func inlineStylesheet(markup, stylesheet string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	head := doc.Find("head")
	if head.Length() == 0 {
		return "", fmt.Errorf("document has no head element")
	}
	head.Find("style").Remove()
	head.AppendHtml("<style>" + stylesheet + "</style>")

	return doc.Html()
}

func minifyCSS(stylesheet string) string {
	out := cssComments.ReplaceAllString(stylesheet, "")
	out = cssWhitespace.ReplaceAllString(out, " ")
	out = strings.ReplaceAll(out, " {", "{")
	out = strings.ReplaceAll(out, "{ ", "{")
	out = strings.ReplaceAll(out, "; ", ";")
	out = strings.ReplaceAll(out, ": ", ":")
	out = strings.ReplaceAll(out, " }", "}")
	return strings.TrimSpace(out)
}
