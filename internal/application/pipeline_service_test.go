package application_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/application"
	"github.com/pageforge/pageforge/internal/domain"
)

const healthyPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Fern and Forage | Seasonal Kitchen</title>
<meta name="description" content="A neighborhood kitchen serving seasonal plates and natural wine.">
<meta property="og:title" content="Fern and Forage">
<style>
:root { --accent: #2563eb; }
a:focus { outline: 2px solid var(--accent); }
</style>
</head>
<body>
<header>
<nav><a href="index.html">Home</a> <a href="services.html">Services</a></nav>
</header>
<main>
<h1>Fern and Forage</h1>
<p>We cook what the market gives us. The menu changes every week, built around
whatever our farm partners bring through the back door each morning. Come
hungry and curious; the kitchen decides, you enjoy.</p>
<h2>This Week</h2>
<p>Roasted squash with brown butter, charred leeks with romesco, and a slow
braise that has been on the stove since Tuesday. Every plate is meant for
sharing and every bottle on the list comes from a grower we have met.</p>
</main>
<footer><p>Open Wednesday through Sunday, from five until late.</p></footer>
</body>
</html>
`

func newService() *application.PipelineService {
	return application.NewPipelineService(domain.DefaultPolicy())
}

func TestProcessFile_HealthyPageExitsEarly(t *testing.T) {
	result := newService().ProcessFile("index.html", healthyPage)

	assert.Equal(t, domain.StageSanitized, result.Stage)
	assert.Equal(t, healthyPage, result.Content)
	assert.Equal(t, 100, result.InitialScore)
	assert.Equal(t, 100, result.FinalScore)
	assert.Empty(t, result.AppliedFixes)
	assert.True(t, result.Validation.Passed)
}

func TestProcessFile_BareDocumentEndsWrapped(t *testing.T) {
	result := newService().ProcessFile("services.html", "<html><body>Test</body></html>")

	assert.Equal(t, domain.StageWrapped, result.Stage)
	assert.Equal(t, 32, result.InitialScore)
	assert.GreaterOrEqual(t, result.FinalScore, 90)
	assert.True(t, result.Validation.Passed)

	assert.Contains(t, result.AppliedFixes, "insert_doctype")
	assert.Contains(t, result.Content, "<!DOCTYPE html>")
	assert.Contains(t, result.Content, `<html lang="en">`)
	assert.Contains(t, result.Content, "Test")
}

func TestProcessFile_SanitizesBeforeScoring(t *testing.T) {
	dirty := strings.Replace(healthyPage, "<main>",
		`<main><iframe src="https://evil.example"></iframe><script>alert(1)</script>`, 1)

	result := newService().ProcessFile("index.html", dirty)

	assert.NotContains(t, result.Content, "iframe")
	assert.NotContains(t, result.Content, "alert(1)")
	assert.Equal(t, domain.StageSanitized, result.Stage)
	assert.Equal(t, 100, result.FinalScore)
}

func TestProcessSite_RunsCrossFileChecks(t *testing.T) {
	files := domain.FileSet{
		"index.html":    healthyPage,
		"services.html": "<div>\n<Hero />\n</div>\n",
		"styles.css":    "body { margin: 0; }",
	}

	site := newService().ProcessSite(files, []string{"index.html", "services.html", "contact.html"})

	require.Len(t, site.Files, 2)
	assert.Equal(t, "index.html", site.Files[0].Filename)
	assert.Equal(t, "services.html", site.Files[1].Filename)

	// The wrapper cannot repair leaked component tags, so completeness
	// still fails on the pipeline output.
	assert.False(t, site.Completeness.Passed)
	assert.Equal(t, []string{"contact.html"}, site.Completeness.MissingPages)

	assert.Contains(t, site.Policy, "default-src 'self'")
	assert.Equal(t, "DENY", site.Headers["X-Frame-Options"])
}

func TestRepaired_SubstitutesPipelineOutput(t *testing.T) {
	files := domain.FileSet{
		"index.html": healthyPage,
		"about.html": "<p>tiny</p>",
		"styles.css": "body { margin: 0; }",
	}
	site := newService().ProcessSite(files, nil)

	out := application.Repaired(files, site)
	assert.Equal(t, healthyPage, out["index.html"])
	assert.Equal(t, "body { margin: 0; }", out["styles.css"])
	assert.Contains(t, out["about.html"], "<!DOCTYPE html>")
	assert.NotEqual(t, files["about.html"], out["about.html"])
}
