package validate

import (
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// checkCSS is a heuristic on the document's own styles: a stylesheet of any
// real size that never uses custom properties tends to repeat its palette
// and spacing literals everywhere, which makes regenerated pages drift.
func checkCSS(doc *markup.Document) []domain.Issue {
	var css strings.Builder
	for _, style := range doc.All("style") {
		css.WriteString(markup.Text(style))
	}

	sheet := css.String()
	if len(sheet) < 400 {
		return nil
	}
	if strings.Contains(sheet, "--") {
		return nil
	}

	return []domain.Issue{{
		Severity: domain.SeverityInfo,
		Category: domain.CategoryCSS,
		Message:  "stylesheet defines no CSS custom properties",
		FixHint:  "hoist repeated colors and spacing into :root custom properties",
	}}
}
