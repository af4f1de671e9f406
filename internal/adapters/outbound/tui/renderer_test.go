package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge/pageforge/internal/adapters/outbound/tui"
	"github.com/pageforge/pageforge/internal/domain"
)

func TestRenderAudit_CleanResult(t *testing.T) {
	out := tui.RenderAudit("index.html", domain.NewValidationResult(nil))
	assert.Contains(t, out, "pageforge")
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "No issues found.")
}

func TestRenderAudit_ListsIssues(t *testing.T) {
	result := domain.NewValidationResult([]domain.Issue{
		{Severity: domain.SeverityError, Category: domain.CategoryStructural, Message: "missing charset meta tag", FixHint: "add the meta", AutoFixable: true},
		{Severity: domain.SeverityWarning, Category: domain.CategorySEO, Message: "missing meta description"},
	})

	out := tui.RenderAudit("about.html", result)
	assert.Contains(t, out, "missing charset meta tag")
	assert.Contains(t, out, "missing meta description")
	assert.Contains(t, out, "(auto-fixable)")
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "1 warnings")
}

func TestRenderHistory(t *testing.T) {
	out := tui.RenderHistory(nil)
	assert.Contains(t, out, "No audit history yet.")

	out = tui.RenderHistory([]domain.AuditEntry{
		{Timestamp: "2026-08-30T10:00:00Z", Filename: "index.html", Score: 95, Grade: "A+", CommitHash: "abcdef1234567890"},
	})
	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "95")
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef123456")
}

func TestRenderCompleteness(t *testing.T) {
	out := tui.RenderCompleteness(domain.PageCompletenessResult{Passed: true})
	assert.Contains(t, out, "PASS")

	out = tui.RenderCompleteness(domain.PageCompletenessResult{
		Passed:       false,
		MissingPages: []string{"contact.html"},
		Pages: []domain.PageCheckResult{
			{Filename: "services.html", Length: 61, NeedsRegeneration: true, Issues: []domain.PageIssue{
				{Severity: domain.PageSeverityCritical, Type: domain.PageIssueForeignTags, Message: "unconverted component tags in markup: Hero"},
			}},
		},
		CriticalErrors: []string{"services.html: unconverted component tags in markup: Hero"},
	})
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "services.html")
	assert.Contains(t, out, "contact.html")
	assert.Contains(t, out, "unconverted component tags")
	assert.Contains(t, out, "regen")
}

func TestRenderSite(t *testing.T) {
	out := tui.RenderSite(domain.SiteResult{
		Files: []domain.PipelineResult{
			{Filename: "index.html", Stage: domain.StageSanitized, InitialScore: 100, FinalScore: 100},
			{Filename: "services.html", Stage: domain.StageWrapped, InitialScore: 18, FinalScore: 95, AppliedFixes: []string{"insert_doctype"}},
		},
		Completeness: domain.PageCompletenessResult{Passed: true},
		Policy:       "default-src 'self'",
	})

	assert.Contains(t, out, "index.html")
	assert.Contains(t, out, "services.html")
	assert.Contains(t, out, "wrapped")
	assert.Contains(t, out, "insert_doctype")
	assert.Contains(t, out, "default-src 'self'")
}
