package validate

import (
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// checkSEO covers title, meta description and Open Graph presence.
func checkSEO(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	title := doc.First("title")
	if title == nil || markup.Text(title) == "" {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Category: domain.CategorySEO,
			Message:  "missing or empty <title> tag",
			FixHint:  "add a descriptive <title> inside <head>",
		})
	}

	if !hasMetaName(doc, "description") {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategorySEO,
			Message:  "missing meta description",
			FixHint:  `add <meta name="description" content="..."> inside <head>`,
		})
	}

	if !hasOpenGraph(doc) {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Category: domain.CategorySEO,
			Message:  "no Open Graph tags found",
			FixHint:  `add og:title and og:description meta tags for link previews`,
		})
	}

	return issues
}

func hasMetaName(doc *markup.Document, name string) bool {
	for _, m := range doc.All("meta") {
		if n, ok := markup.Attr(m, "name"); ok && strings.EqualFold(n, name) {
			if content, ok := markup.Attr(m, "content"); ok && strings.TrimSpace(content) != "" {
				return true
			}
		}
	}
	return false
}

func hasOpenGraph(doc *markup.Document) bool {
	for _, m := range doc.All("meta") {
		if prop, ok := markup.Attr(m, "property"); ok && strings.HasPrefix(strings.ToLower(prop), "og:") {
			return true
		}
	}
	return false
}
