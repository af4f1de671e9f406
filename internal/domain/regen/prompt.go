// Package regen composes the targeted re-generation request sent to the LLM
// collaborator when a page cannot be repaired locally. It builds the
// payload only; the round trip belongs to the caller.
package regen

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/wrap"
)

// Builder assembles regeneration prompts from the original specification,
// the shared chrome of a known-good sibling page and the site stylesheet.
type Builder struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Builder {
	return &Builder{policy: policy}
}

// stylesheetCap bounds how much of the shared stylesheet rides along in the
// prompt. Enough for palette and layout rules without blowing the context.
const stylesheetCap = 4000

var (
	navBlockRe    = regexp.MustCompile(`(?is)<nav\b[^>]*>.*?</nav>`)
	footerBlockRe = regexp.MustCompile(`(?is)<footer\b[^>]*>.*?</footer>`)
)

// Build composes the regeneration request for one page.
func (b *Builder) Build(filename, spec, referencePage, stylesheet string, reasons []string) domain.RegenRequest {
	var p strings.Builder

	fmt.Fprintf(&p, "Regenerate the page %q for this website. The previous generation was unusable.\n\n", filename)

	if len(reasons) > 0 {
		p.WriteString("What was wrong:\n")
		for _, r := range reasons {
			fmt.Fprintf(&p, "- %s\n", r)
		}
		p.WriteString("\n")
	}

	if spec != "" {
		p.WriteString("Original website specification:\n")
		p.WriteString(spec)
		p.WriteString("\n\n")
	}

	if nav := navBlockRe.FindString(referencePage); nav != "" {
		p.WriteString("Reuse this exact navigation markup so the site stays consistent:\n")
		p.WriteString(nav)
		p.WriteString("\n\n")
	}
	if footer := footerBlockRe.FindString(referencePage); footer != "" {
		p.WriteString("Reuse this exact footer markup:\n")
		p.WriteString(footer)
		p.WriteString("\n\n")
	}

	if stylesheet != "" {
		sheet := stylesheet
		if len(sheet) > stylesheetCap {
			sheet = sheet[:stylesheetCap] + "\n/* ... truncated ... */"
		}
		p.WriteString("Shared stylesheet (reference the same classes and custom properties):\n")
		p.WriteString(sheet)
		p.WriteString("\n\n")
	}

	p.WriteString("The page must contain at least these sections:\n")
	for _, section := range b.sections(filename) {
		fmt.Fprintf(&p, "- %s\n", section)
	}
	p.WriteString("\nReturn a single complete HTML document: doctype, <html lang>, charset and viewport metas, one <h1>, plain HTML with no framework components and no templating syntax.\n")

	return domain.RegenRequest{
		Filename: filename,
		Prompt:   p.String(),
		Reasons:  reasons,
	}
}

// sections resolves the minimum-section checklist for a page type, falling
// back to a generic checklist for unknown pages. The page type is the base
// filename, so path-qualified names still match.
func (b *Builder) sections(filename string) []string {
	base := path.Base(filename)
	pageType := strings.ToLower(strings.TrimSuffix(strings.TrimSuffix(base, ".html"), ".htm"))
	if sections, ok := b.policy.PageSections[pageType]; ok {
		return sections
	}
	title := wrap.TitleFromFilename(filename)
	return []string{
		fmt.Sprintf("a heading and intro for %q", title),
		"a main content section with real copy",
		"footer",
	}
}
