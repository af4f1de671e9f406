// Package tui renders pipeline reports for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pageforge/pageforge/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderAudit renders the validation result for one file.
func RenderAudit(filename string, result domain.ValidationResult) string {
	var b strings.Builder

	grade := domain.GradeFor(result.Score)
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100  %s", result.Score, grade))

	title := headerStyle.Render("pageforge")
	subtitle := dimStyle.Render(filename)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled))
	b.WriteString("\n\n")

	if len(result.Issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	if result.Errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", result.Errors)))
		b.WriteString("  ")
	}
	if result.Warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", result.Warnings)))
		b.WriteString("  ")
	}
	if result.Infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", result.Infos)))
	}
	b.WriteString("\n\n")

	for _, issue := range result.Issues {
		renderIssue(&b, issue)
	}

	b.WriteString("\n")
	return b.String()
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	location := ""
	if issue.Line > 0 {
		location = fileStyle.Render(fmt.Sprintf("line %d", issue.Line))
	}

	if location != "" {
		fmt.Fprintf(b, "    %s %s  %s\n", tag, dimStyle.Render(issue.Message), location)
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(issue.Message))
	}
	if issue.FixHint != "" {
		fixable := ""
		if issue.AutoFixable {
			fixable = passStyle.Render(" (auto-fixable)")
		}
		fmt.Fprintf(b, "         %s%s\n", hintStyle.Render(issue.FixHint), fixable)
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return danger
}

// RenderHistory renders past audit entries, most recent last.
func RenderHistory(entries []domain.AuditEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No audit history yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Audit history"))
	b.WriteString("\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		grade := lipgloss.NewStyle().Bold(true).Foreground(gradeColor(e.Grade)).Render(e.Grade)
		fmt.Fprintf(&b, "  %s  %s  %3d %s  %s\n",
			dimStyle.Render(e.Timestamp),
			fileStyle.Render(padRight(e.Filename, 18)),
			e.Score, grade,
			faintStyle.Render(hash),
		)
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
