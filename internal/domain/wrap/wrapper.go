// Package wrap guarantees a minimally valid document as the pipeline's last
// resort. It never runs when the earlier stages already produced the
// required structure.
package wrap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// Wrapper rebuilds broken content into a complete document: existing styles
// move into the synthesized stylesheet, existing scripts move to the end of
// the body, the remaining markup becomes the body content.
type Wrapper struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Wrapper {
	return &Wrapper{policy: policy}
}

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	headBlockRe   = regexp.MustCompile(`(?is)<head\b[^>]*>.*?</head>`)
	bodyBlockRe   = regexp.MustCompile(`(?is)<body\b[^>]*>(.*)</body>`)
	doctypeRe     = regexp.MustCompile(`(?is)<!doctype\b[^>]*>`)
	shellTagRe    = regexp.MustCompile(`(?is)</?(?:html|body)\b[^>]*>`)
	headTagRe     = regexp.MustCompile(`(?i)<head\b`)
)

// NeedsWrap reports whether content is missing any of the minimum document
// structure: doctype, a root element with lang, a head with charset and
// viewport, and a top-level heading.
func (w *Wrapper) NeedsWrap(content string) bool {
	if !markup.HasDoctype(content) {
		return true
	}
	if !headTagRe.MatchString(content) {
		return true
	}

	doc := markup.Parse(content)
	root := doc.First("html")
	if root == nil {
		return true
	}
	if lang, ok := markup.Attr(root, "lang"); !ok || strings.TrimSpace(lang) == "" {
		return true
	}
	if !hasMetaCharset(doc) || !hasMetaViewport(doc) {
		return true
	}
	for _, l := range doc.HeadingLevels() {
		if l == 1 {
			return false
		}
	}
	return true
}

// Wrap returns content unchanged when the minimum structure already holds,
// otherwise a synthesized document built around the salvageable parts.
func (w *Wrapper) Wrap(content, fallbackTitle string) string {
	if !w.NeedsWrap(content) {
		return content
	}

	// Salvage styles and scripts before stripping them from the body.
	var styles []string
	for _, m := range styleBlockRe.FindAllStringSubmatch(content, -1) {
		if css := strings.TrimSpace(m[1]); css != "" {
			styles = append(styles, css)
		}
	}
	scripts := scriptBlockRe.FindAllString(content, -1)

	body := extractBody(content)
	body = styleBlockRe.ReplaceAllString(body, "")
	body = scriptBlockRe.ReplaceAllString(body, "")
	body = strings.TrimSpace(body)

	doc := markup.Parse(content)
	title := deriveTitle(doc, fallbackTitle)
	title = escapeMeta(truncate(title, w.policy.TitleMaxLen))
	description := escapeMeta(truncate(deriveDescription(doc, title), w.policy.DescriptionMaxLen))

	heading := ""
	if !hasTopHeading(doc) {
		heading = fmt.Sprintf("<h1>%s</h1>\n", title)
	}

	stylesheet := strings.Join(styles, "\n")
	if stylesheet == "" {
		stylesheet = defaultStylesheet
	}

	var b strings.Builder
	fmt.Fprintf(&b, skeletonTop, w.policy.DefaultLang, title, description, stylesheet)
	b.WriteString("<body>\n")
	b.WriteString(heading)
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	for _, s := range scripts {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// TitleFromFilename derives a human-readable fallback title from a
// generated filename: "aboutUs.html" becomes "About Us".
func TitleFromFilename(filename string) string {
	base := filename
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")

	var words []string
	for _, field := range strings.Fields(base) {
		words = append(words, camelcase.Split(field)...)
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	if len(words) == 0 {
		return "Untitled Page"
	}
	return strings.Join(words, " ")
}

const skeletonTop = `<!DOCTYPE html>
<html lang=%q>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<meta name="description" content="%s">
<style>
%s
</style>
</head>
`

const defaultStylesheet = `:root { --fg: #1f2933; --bg: #ffffff; --accent: #2563eb; }
body { margin: 0 auto; max-width: 44rem; padding: 2rem 1rem; color: var(--fg); background: var(--bg); font-family: system-ui, sans-serif; line-height: 1.6; }
a { color: var(--accent); }
a:focus, button:focus { outline: 2px solid var(--accent); outline-offset: 2px; }`

// extractBody returns the inner body markup when a body element exists,
// otherwise the content with head, doctype and shell tags stripped.
func extractBody(content string) string {
	if m := bodyBlockRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	out := headBlockRe.ReplaceAllString(content, "")
	out = doctypeRe.ReplaceAllString(out, "")
	out = shellTagRe.ReplaceAllString(out, "")
	return out
}

func deriveTitle(doc *markup.Document, fallback string) string {
	if t := doc.First("title"); t != nil {
		if text := markup.Text(t); text != "" {
			return text
		}
	}
	if h := doc.First("h1", "h2"); h != nil {
		if text := markup.Text(h); text != "" {
			return text
		}
	}
	if fallback != "" {
		return fallback
	}
	return "Untitled Page"
}

func deriveDescription(doc *markup.Document, title string) string {
	if p := doc.First("p"); p != nil {
		if text := markup.Text(p); text != "" {
			return text
		}
	}
	if text := markup.VisibleText(doc.Source); text != "" {
		return text
	}
	return title
}

func hasTopHeading(doc *markup.Document) bool {
	for _, l := range doc.HeadingLevels() {
		if l == 1 {
			return true
		}
	}
	return false
}

func hasMetaCharset(doc *markup.Document) bool {
	for _, m := range doc.All("meta") {
		if _, ok := markup.Attr(m, "charset"); ok {
			return true
		}
	}
	return false
}

func hasMetaViewport(doc *markup.Document) bool {
	for _, m := range doc.All("meta") {
		if name, ok := markup.Attr(m, "name"); ok && strings.EqualFold(name, "viewport") {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}

func escapeMeta(s string) string {
	return metaEscaper.Replace(s)
}

var metaEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;", `"`, "&quot;")
