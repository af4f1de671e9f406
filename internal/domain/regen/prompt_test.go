package regen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/regen"
)

const referencePage = `<!DOCTYPE html>
<html lang="en">
<body>
<nav class="site-nav"><a href="index.html">Home</a><a href="about.html">About</a></nav>
<main><h1>Home</h1></main>
<footer class="site-footer"><p>Made in the neighborhood.</p></footer>
</body>
</html>`

func newBuilder() *regen.Builder {
	return regen.New(domain.DefaultPolicy())
}

func TestBuild_CarriesReasonsAndSpec(t *testing.T) {
	req := newBuilder().Build("services.html", "A three-page site for a plumbing business.", referencePage, "", []string{
		"unconverted component tags in markup: Hero",
		"page is effectively blank",
	})

	assert.Equal(t, "services.html", req.Filename)
	assert.Contains(t, req.Prompt, `Regenerate the page "services.html"`)
	assert.Contains(t, req.Prompt, "What was wrong:")
	assert.Contains(t, req.Prompt, "- unconverted component tags in markup: Hero")
	assert.Contains(t, req.Prompt, "- page is effectively blank")
	assert.Contains(t, req.Prompt, "A three-page site for a plumbing business.")
	assert.Equal(t, []string{"unconverted component tags in markup: Hero", "page is effectively blank"}, req.Reasons)
}

func TestBuild_ReusesSiteChrome(t *testing.T) {
	req := newBuilder().Build("about.html", "", referencePage, "", nil)

	assert.Contains(t, req.Prompt, `<nav class="site-nav">`)
	assert.Contains(t, req.Prompt, `<footer class="site-footer">`)
	assert.Contains(t, req.Prompt, "Reuse this exact navigation markup")
	assert.Contains(t, req.Prompt, "Reuse this exact footer markup")
}

func TestBuild_NoChromeWithoutReference(t *testing.T) {
	req := newBuilder().Build("about.html", "", "", "", nil)
	assert.NotContains(t, req.Prompt, "navigation markup")
	assert.NotContains(t, req.Prompt, "footer markup")
}

func TestBuild_IncludesStylesheet(t *testing.T) {
	req := newBuilder().Build("index.html", "", "", ":root { --accent: teal; }", nil)
	assert.Contains(t, req.Prompt, ":root { --accent: teal; }")
	assert.Contains(t, req.Prompt, "Shared stylesheet")
}

func TestBuild_TruncatesLongStylesheet(t *testing.T) {
	sheet := strings.Repeat(".cls { padding: 1rem; }\n", 400)
	req := newBuilder().Build("index.html", "", "", sheet, nil)
	assert.Contains(t, req.Prompt, "truncated")
	assert.Less(t, len(req.Prompt), len(sheet))
}

func TestBuild_SectionChecklistByPageType(t *testing.T) {
	req := newBuilder().Build("index.html", "", "", "", nil)
	assert.Contains(t, req.Prompt, "- hero")
	assert.Contains(t, req.Prompt, "- features")
	assert.Contains(t, req.Prompt, "- footer")
}

func TestBuild_SectionChecklistForPathQualifiedNames(t *testing.T) {
	req := newBuilder().Build("pages/index.html", "", "", "", nil)
	assert.Contains(t, req.Prompt, "- hero")
	assert.Contains(t, req.Prompt, "- features")
}

func TestBuild_GenericChecklistForUnknownPages(t *testing.T) {
	req := newBuilder().Build("teamMembers.html", "", "", "", nil)
	assert.Contains(t, req.Prompt, `a heading and intro for "Team Members"`)
	assert.Contains(t, req.Prompt, "- footer")
}

func TestBuild_ForbidsFrameworkOutput(t *testing.T) {
	req := newBuilder().Build("index.html", "", "", "", nil)
	assert.Contains(t, req.Prompt, "no framework components")
	assert.Contains(t, req.Prompt, "single complete HTML document")
}
