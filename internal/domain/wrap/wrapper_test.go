package wrap_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/wrap"
)

const completePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Complete</title>
</head>
<body>
<h1>Complete page</h1>
<p>Already carries the full document structure.</p>
</body>
</html>
`

func newWrapper() *wrap.Wrapper {
	return wrap.New(domain.DefaultPolicy())
}

func TestNeedsWrap(t *testing.T) {
	w := newWrapper()

	assert.False(t, w.NeedsWrap(completePage))

	assert.True(t, w.NeedsWrap("<p>bare fragment</p>"))
	assert.True(t, w.NeedsWrap(strings.Replace(completePage, `lang="en"`, "", 1)))
	assert.True(t, w.NeedsWrap(strings.Replace(completePage, `<meta charset="UTF-8">`, "", 1)))
	assert.True(t, w.NeedsWrap(strings.Replace(completePage, "<h1>Complete page</h1>", "", 1)))
	assert.True(t, w.NeedsWrap(strings.Replace(completePage, "<!DOCTYPE html>", "", 1)))
}

func TestWrap_CompleteDocumentIsUntouched(t *testing.T) {
	assert.Equal(t, completePage, newWrapper().Wrap(completePage, "Fallback"))
}

func TestWrap_FragmentBecomesCompleteDocument(t *testing.T) {
	w := newWrapper()
	out := w.Wrap("<h2>Contact</h2><p>Email us anytime.</p>", "Contact")

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<meta charset="UTF-8">`)
	assert.Contains(t, out, `name="viewport"`)
	assert.Contains(t, out, "<title>Contact</title>")
	assert.Contains(t, out, `<meta name="description" content="Email us anytime.">`)
	// No h1 in the fragment, so one is synthesized from the title.
	assert.Contains(t, out, "<h1>Contact</h1>")
	assert.Contains(t, out, "<h2>Contact</h2>")

	assert.False(t, w.NeedsWrap(out), "wrapped output must satisfy its own checks")
}

func TestWrap_SalvagesStylesAndScripts(t *testing.T) {
	src := `<style>h2 { color: teal; }</style>
<h2>Gallery</h2>
<p>Pictures from the season.</p>
<script>console.log("init")</script>`

	out := newWrapper().Wrap(src, "Gallery")

	// Styles move into the synthesized head stylesheet.
	headEnd := strings.Index(out, "</head>")
	require.Greater(t, headEnd, 0)
	assert.Contains(t, out[:headEnd], "h2 { color: teal; }")

	// Scripts move to the end of the body, after the content.
	scriptAt := strings.Index(out, `console.log("init")`)
	contentAt := strings.Index(out, "<p>Pictures")
	require.Greater(t, scriptAt, 0)
	assert.Greater(t, scriptAt, contentAt)

	// Neither appears twice.
	assert.Equal(t, 1, strings.Count(out, "h2 { color: teal; }"))
	assert.Equal(t, 1, strings.Count(out, `console.log("init")`))
}

func TestWrap_ExistingH1IsNotDuplicated(t *testing.T) {
	out := newWrapper().Wrap("<h1>Only One</h1><p>Body text.</p>", "Fallback")
	assert.Equal(t, 1, strings.Count(out, "<h1>"))
}

func TestWrap_TitleFallsBackToFilenameDerived(t *testing.T) {
	out := newWrapper().Wrap("<p>No headings at all.</p>", "Pricing Plans")
	assert.Contains(t, out, "<title>Pricing Plans</title>")
}

func TestWrap_MetadataIsEscapedAndCapped(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.TitleMaxLen = 12
	w := wrap.New(policy)

	out := w.Wrap(`<h2>A <em>very</em> long marketing headline</h2>`, "")
	start := strings.Index(out, "<title>") + len("<title>")
	end := strings.Index(out, "</title>")
	title := out[start:end]
	assert.LessOrEqual(t, len([]rune(title)), 12)
	assert.NotContains(t, title, "<")
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aboutUs.html", "About Us"},
		{"contact-page.html", "Contact Page"},
		{"our_team.html", "Our Team"},
		{"index.html", "Index"},
		{"sites/pricingPlans.html", "Pricing Plans"},
		{".html", "Untitled Page"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrap.TitleFromFilename(tt.in), "input %q", tt.in)
	}
}
