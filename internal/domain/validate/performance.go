package validate

import (
	"fmt"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// checkPerformance counts inline style attributes, flags oversized inline
// scripts and missing lazy-loading hints.
func checkPerformance(doc *markup.Document, policy domain.Policy) []domain.Issue {
	var issues []domain.Issue

	inlineStyles := strings.Count(strings.ToLower(doc.Source), " style=")
	if inlineStyles > policy.MaxInlineStyles {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryPerformance,
			Message:  fmt.Sprintf("%d inline style attributes (threshold %d)", inlineStyles, policy.MaxInlineStyles),
			FixHint:  "move repeated inline styles into the stylesheet",
		})
	}

	for _, script := range doc.All("script") {
		if _, ok := markup.Attr(script, "src"); ok {
			continue
		}
		if size := len(markup.Text(script)); size > policy.LargeInlineScript {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Category: domain.CategoryPerformance,
				Message:  fmt.Sprintf("inline script of %d bytes (threshold %d)", size, policy.LargeInlineScript),
				FixHint:  "move large scripts into an external file",
			})
		}
	}

	lazyMissing := 0
	for _, img := range doc.All("img") {
		if _, ok := markup.Attr(img, "loading"); !ok {
			lazyMissing++
		}
	}
	if lazyMissing > 0 {
		issues = append(issues, domain.Issue{
			Severity:    domain.SeverityInfo,
			Category:    domain.CategoryPerformance,
			Message:     fmt.Sprintf("%d images without a loading attribute", lazyMissing),
			FixHint:     `add loading="lazy" to below-the-fold images`,
			AutoFixable: true,
		})
	}

	return issues
}
