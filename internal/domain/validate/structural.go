package validate

import (
	"fmt"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// checkStructural covers the document skeleton: doctype, charset, viewport,
// heading hierarchy and semantic landmarks.
func checkStructural(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	if !markup.HasDoctype(doc.Source) {
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityError,
			Category:    domain.CategoryStructural,
			Message:     "missing <!DOCTYPE html> declaration",
			FixHint:     "add <!DOCTYPE html> as the first line",
			AutoFixable: true,
		})
	}

	if !hasCharsetMeta(doc) {
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityError,
			Category:    domain.CategoryStructural,
			Message:     "missing charset meta tag",
			FixHint:     `add <meta charset="UTF-8"> inside <head>`,
			AutoFixable: true,
		})
	}

	if !hasViewportMeta(doc) {
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityError,
			Category:    domain.CategoryStructural,
			Message:     "missing viewport meta tag",
			FixHint:     `add <meta name="viewport" content="width=device-width, initial-scale=1.0"> inside <head>`,
			AutoFixable: true,
		})
	}

	issues = append(issues, checkHeadings(doc)...)
	issues = append(issues, checkLandmarks(doc)...)
	issues = append(issues, checkExternalLinks(doc)...)

	return issues
}

// checkHeadings enforces exactly one top-level heading and monotonic level
// progression. Only the first level skip is reported.
func checkHeadings(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	levels := doc.HeadingLevels()
	h1Count := 0
	for _, l := range levels {
		if l == 1 {
			h1Count++
		}
	}

	switch {
	case h1Count == 0:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityError,
			Category: domain.CategoryStructural,
			Message:  "no <h1> heading found",
			FixHint:  "add exactly one <h1> describing the page",
		})
	case h1Count > 1:
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryStructural,
			Message:  fmt.Sprintf("%d <h1> headings found, expected exactly one", h1Count),
			FixHint:  "demote all but the first <h1>",
		})
	}

	prev := 0
	for _, l := range levels {
		if prev > 0 && l > prev+1 {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Category: domain.CategoryStructural,
				Message:  fmt.Sprintf("heading level skips from h%d to h%d", prev, l),
				FixHint:  "keep heading levels sequential",
			})
			break
		}
		prev = l
	}

	return issues
}

// checkLandmarks looks for the semantic landmark elements assistive
// technology and crawlers navigate by.
func checkLandmarks(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	if doc.First("main") == nil {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryStructural,
			Message:  "no <main> landmark element",
			FixHint:  "wrap the primary page content in <main>",
		})
	}

	var missing []string
	for _, tag := range []string{"header", "footer", "nav"} {
		if doc.First(tag) == nil {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityInfo,
			Category: domain.CategoryStructural,
			Message:  fmt.Sprintf("missing semantic elements: %s", strings.Join(missing, ", ")),
			FixHint:  "use semantic landmarks instead of generic <div> wrappers",
		})
	}

	return issues
}

// checkExternalLinks flags target=_blank anchors that lack rel hardening.
func checkExternalLinks(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	for _, a := range doc.All("a") {
		target, _ := markup.Attr(a, "target")
		if target != "_blank" {
			continue
		}
		rel, _ := markup.Attr(a, "rel")
		if strings.Contains(rel, "noopener") {
			continue
		}
		href, _ := markup.Attr(a, "href")
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryStructural,
			Message:     fmt.Sprintf("external link %q opens in a new tab without rel=noopener", href),
			FixHint:     `add rel="noopener noreferrer"`,
			AutoFixable: true,
			Line:        markup.LineOf(doc.Source, `target="_blank"`),
		})
		break // one finding covers the fix; the auto-fix patches every anchor
	}

	return issues
}

func hasCharsetMeta(doc *markup.Document) bool {
	for _, m := range doc.All("meta") {
		if _, ok := markup.Attr(m, "charset"); ok {
			return true
		}
		if equiv, ok := markup.Attr(m, "http-equiv"); ok && strings.EqualFold(equiv, "content-type") {
			return true
		}
	}
	return false
}

func hasViewportMeta(doc *markup.Document) bool {
	for _, m := range doc.All("meta") {
		if name, ok := markup.Attr(m, "name"); ok && strings.EqualFold(name, "viewport") {
			return true
		}
	}
	return false
}
