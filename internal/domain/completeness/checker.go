// Package completeness detects generation-specific corruption across a
// multi-page site: blank pages, leaked templating syntax, broken navigation
// and missing files. It never mutates its input.
package completeness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// Checker runs the per-page and cross-file completeness checks.
type Checker struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Checker {
	return &Checker{policy: policy}
}

// foreignTagNameRe matches component-style tags that leaked verbatim from a
// templating framework into final markup: <Hero />, <NavBar>...</NavBar>.
// Browsers treat them as unknown elements and render nothing.
var foreignTagNameRe = `</?([A-Z][A-Za-z0-9]*)(?:\s[^>]*?)?/?>`

// tagExceptions are capitalized tokens that are legitimate markup.
var tagExceptions = map[string]bool{
	"DOCTYPE": true,
}

// componentExtensions are source-file extensions that must never appear as
// link targets in rendered output.
var componentExtensions = []string{".jsx", ".tsx", ".vue", ".svelte"}

// placeholderPhrases are boilerplate strings a finished page should not
// still contain.
var placeholderPhrases = []string{
	"lorem ipsum",
	"your content here",
	"coming soon",
	"[placeholder]",
	"insert text here",
}

// Check verifies the whole file set: every expected page exists and every
// present page passes the per-page checks.
func (c *Checker) Check(files domain.FileSet, expected []string) domain.PageCompletenessResult {
	result := domain.PageCompletenessResult{Passed: true}

	for _, name := range expected {
		if _, ok := files[name]; !ok {
			result.MissingPages = append(result.MissingPages, name)
			result.CriticalErrors = append(result.CriticalErrors, fmt.Sprintf("%s: expected page is missing", name))
			result.Passed = false
		}
	}
	sort.Strings(result.MissingPages)

	var names []string
	for name := range files {
		if isHTMLFile(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		page := c.CheckPage(name, files[name])
		result.Pages = append(result.Pages, page)
		if page.NeedsRegeneration {
			result.Passed = false
			for _, iss := range page.Issues {
				if iss.Severity == domain.PageSeverityCritical {
					result.CriticalErrors = append(result.CriticalErrors, fmt.Sprintf("%s: %s", name, iss.Message))
				}
			}
		}
	}

	return result
}

// CheckPage runs every per-page check against one HTML file.
func (c *Checker) CheckPage(filename, content string) domain.PageCheckResult {
	page := domain.PageCheckResult{
		Filename: filename,
		Length:   len(content),
	}

	if tags := ForeignTags(content); len(tags) > 0 {
		page.HasForeignTags = true
		page.ForeignTags = tags
		page.Issues = append(page.Issues, domain.PageIssue{
			Severity: domain.PageSeverityCritical,
			Type:     domain.PageIssueForeignTags,
			Message:  fmt.Sprintf("unconverted component tags in markup: %s", strings.Join(tags, ", ")),
		})
	}

	visible := markup.VisibleText(content)
	if len(content) < c.policy.MinRawChars || len(visible) < c.policy.MinVisibleChars {
		page.IsEmpty = true
		page.Issues = append(page.Issues, domain.PageIssue{
			Severity: domain.PageSeverityCritical,
			Type:     domain.PageIssueEmptyPage,
			Message:  fmt.Sprintf("page is effectively blank: %d raw chars (floor %d), %d visible chars (floor %d)", len(content), c.policy.MinRawChars, len(visible), c.policy.MinVisibleChars),
		})
	}

	if n := artifactLineCount(content); n > 0 {
		page.Issues = append(page.Issues, domain.PageIssue{
			Severity: domain.PageSeverityCritical,
			Type:     domain.PageIssueArtifactLine,
			Message:  fmt.Sprintf("%d stray '>' lines, symptom of a leaked template expression", n),
		})
	}

	if !markup.HasDoctype(content) {
		page.Issues = append(page.Issues, domain.PageIssue{
			Severity: domain.PageSeverityCritical,
			Type:     domain.PageIssueNoDoctype,
			Message:  "missing doctype declaration",
		})
	}

	page.Issues = append(page.Issues, checkNavigation(content)...)
	page.Issues = append(page.Issues, checkContentQuality(content)...)

	for _, iss := range page.Issues {
		if iss.Severity == domain.PageSeverityCritical {
			page.NeedsRegeneration = true
			break
		}
	}

	return page
}

// checkNavigation flags links that point at component source files or at a
// bare root where sibling-file relative links are expected.
func checkNavigation(content string) []domain.PageIssue {
	var issues []domain.PageIssue

	doc := markup.Parse(content)
	for _, a := range doc.All("a") {
		href, ok := markup.Attr(a, "href")
		if !ok {
			continue
		}
		href = strings.TrimSpace(href)

		for _, ext := range componentExtensions {
			if strings.HasSuffix(strings.ToLower(href), ext) {
				issues = append(issues, domain.PageIssue{
					Severity: domain.PageSeverityWarning,
					Type:     domain.PageIssueNavFormat,
					Message:  fmt.Sprintf("link %q points at a component source file", href),
				})
			}
		}

		if href == "/" {
			issues = append(issues, domain.PageIssue{
				Severity: domain.PageSeverityWarning,
				Type:     domain.PageIssueNavFormat,
				Message:  `bare root link "/"; static multi-page sites need relative links like "index.html"`,
			})
		}
	}

	return issues
}

// checkContentQuality flags boilerplate placeholder text and broken image
// sources.
func checkContentQuality(content string) []domain.PageIssue {
	var issues []domain.PageIssue

	lower := strings.ToLower(content)
	for _, phrase := range placeholderPhrases {
		if strings.Contains(lower, phrase) {
			issues = append(issues, domain.PageIssue{
				Severity: domain.PageSeverityWarning,
				Type:     domain.PageIssuePlaceholder,
				Message:  fmt.Sprintf("placeholder text %q still present", phrase),
			})
		}
	}

	doc := markup.Parse(content)
	for _, img := range doc.All("img") {
		src, _ := markup.Attr(img, "src")
		src = strings.TrimSpace(src)
		if src == "" || src == "#" || strings.EqualFold(src, "placeholder") {
			issues = append(issues, domain.PageIssue{
				Severity: domain.PageSeverityWarning,
				Type:     domain.PageIssueBrokenImage,
				Message:  fmt.Sprintf("image with unusable src %q", src),
			})
		}
	}

	return issues
}

// artifactLineCount counts lines whose entire content is a single '>'.
func artifactLineCount(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == ">" {
			n++
		}
	}
	return n
}

func isHTMLFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
