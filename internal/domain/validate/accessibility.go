package validate

import (
	"fmt"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// checkAccessibility covers lang, alt text, accessible names on buttons,
// labelable form inputs and visible focus styling.
func checkAccessibility(doc *markup.Document, policy domain.Policy) []domain.Issue {
	var issues []domain.Issue

	if root := doc.First("html"); root != nil {
		if lang, ok := markup.Attr(root, "lang"); !ok || strings.TrimSpace(lang) == "" {
			// Only fixable when the source carries a literal <html> tag the
			// fixer can patch; the parser synthesizes one for fragments.
			hasTag := strings.Contains(strings.ToLower(doc.Source), "<html")
			issues = append(issues, domain.Issue{
				Severity:    domain.SeverityError,
				Category:    domain.CategoryAccessibility,
				Message:     "missing lang attribute on <html>",
				FixHint:     fmt.Sprintf(`add lang=%q to the <html> element`, policy.DefaultLang),
				AutoFixable: hasTag,
			})
		}
	}

	for _, img := range doc.All("img") {
		if _, ok := markup.Attr(img, "alt"); !ok {
			src, _ := markup.Attr(img, "src")
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Category: domain.CategoryAccessibility,
				Message:  fmt.Sprintf("image %q has no alt attribute", src),
				FixHint:  "add alt text, or alt=\"\" for decorative images",
				Line:     markup.LineOf(doc.Source, src),
			})
		}
	}

	for _, btn := range doc.All("button") {
		if markup.Text(btn) != "" {
			continue
		}
		if label, ok := markup.Attr(btn, "aria-label"); ok && strings.TrimSpace(label) != "" {
			continue
		}
		if title, ok := markup.Attr(btn, "title"); ok && strings.TrimSpace(title) != "" {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryAccessibility,
			Message:  "button has no accessible name",
			FixHint:  "add visible text or an aria-label",
		})
	}

	issues = append(issues, checkInputs(doc)...)
	issues = append(issues, checkFocusStyles(doc)...)

	return issues
}

// checkInputs requires a labelable id (or aria-label) on every form input
// that collects user data.
func checkInputs(doc *markup.Document) []domain.Issue {
	var issues []domain.Issue

	for _, in := range doc.All("input", "textarea", "select") {
		if in.Data == "input" {
			typ, _ := markup.Attr(in, "type")
			switch strings.ToLower(typ) {
			case "submit", "button", "reset", "hidden":
				continue
			}
		}
		if _, ok := markup.Attr(in, "id"); ok {
			continue
		}
		if label, ok := markup.Attr(in, "aria-label"); ok && strings.TrimSpace(label) != "" {
			continue
		}
		name, _ := markup.Attr(in, "name")
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryAccessibility,
			Message:  fmt.Sprintf("form input %q has no id for a label to reference", name),
			FixHint:  "give the input an id and pair it with a <label for>",
		})
	}

	return issues
}

// checkFocusStyles is a source-level heuristic: pages with interactive
// elements should carry some :focus styling. Absence is advisory only.
func checkFocusStyles(doc *markup.Document) []domain.Issue {
	interactive := len(doc.All("a")) + len(doc.All("button")) + len(doc.All("input"))
	if interactive == 0 {
		return nil
	}
	if strings.Contains(doc.Source, ":focus") {
		return nil
	}
	return []domain.Issue{{
		Severity: domain.SeverityInfo,
		Category: domain.CategoryAccessibility,
		Message:  "no visible :focus styling for interactive elements",
		FixHint:  "add a :focus or :focus-visible rule so keyboard users can see where they are",
	}}
}
