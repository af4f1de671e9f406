package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pageforge/pageforge/internal/domain"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

// RenderCompleteness renders the multi-page completeness verdict.
func RenderCompleteness(result domain.PageCompletenessResult) string {
	var b strings.Builder

	verdict := passStyle.Render("PASS")
	if !result.Passed {
		verdict = failStyle.Render("FAIL")
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("pageforge") + "\n" +
		dimStyle.Render("Page completeness") + "\n\n" + verdict))
	b.WriteString("\n\n")

	for _, page := range result.Pages {
		renderPage(&b, page)
	}

	if len(result.MissingPages) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s %s\n",
			sectionHeaderStyle.Render("Missing Pages"),
			dimStyle.Render(fmt.Sprintf("(%d)", len(result.MissingPages))),
		))
		for _, name := range result.MissingPages {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("✗"), fileStyle.Render(name))
		}
	}

	if len(result.CriticalErrors) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Pages with critical errors need regeneration; run pageforge regen."))
		b.WriteString("\n")
	}

	return b.String()
}

func renderPage(b *strings.Builder, page domain.PageCheckResult) {
	icon := passStyle.Render("●")
	if page.NeedsRegeneration {
		icon = failStyle.Render("●")
	} else if len(page.Issues) > 0 {
		icon = warnStyle.Render("●")
	}

	fmt.Fprintf(b, "  %s %s %s\n",
		icon,
		titleStyle.Render(padRight(page.Filename, 20)),
		dimStyle.Render(fmt.Sprintf("%d bytes", page.Length)),
	)

	for _, iss := range page.Issues {
		tag := warnTagStyle.Render("warn ")
		if iss.Severity == domain.PageSeverityCritical {
			tag = errorTagStyle.Render("crit ")
		}
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(iss.Message))
	}
}

// RenderSite renders the full pipeline outcome for one generation.
func RenderSite(site domain.SiteResult) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(headerStyle.Render("pageforge") + "\n" +
		dimStyle.Render("Safety pipeline")))
	b.WriteString("\n\n")

	for _, f := range site.Files {
		arrow := faintStyle.Render("→")
		stage := stageTag(f.Stage)
		fmt.Fprintf(&b, "  %s %s %d %s %d  %s\n",
			titleStyle.Render(padRight(f.Filename, 20)),
			arrow, f.InitialScore, arrow, f.FinalScore,
			stage,
		)
		if len(f.AppliedFixes) > 0 {
			fmt.Fprintf(&b, "    %s\n", hintStyle.Render(strings.Join(f.AppliedFixes, ", ")))
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	b.WriteString(RenderCompleteness(site.Completeness))
	b.WriteString("\n  " + titleStyle.Render("Content-Security-Policy") + "\n")
	fmt.Fprintf(&b, "    %s\n", dimStyle.Render(site.Policy))

	return b.String()
}

func stageTag(stage string) string {
	switch stage {
	case domain.StageWrapped:
		return warnTagStyle.Render(stage)
	case domain.StageFixed:
		return infoTagStyle.Render(stage)
	default:
		return passStyle.Render(stage)
	}
}
