package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const goodPage = `<!DOCTYPE html>
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

const brokenPage = `<div>
<Hero title="Welcome" />
<FeatureGrid>
</FeatureGrid>
>
</div>
`

// writeSite materializes a file set in a fresh directory.
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func goodSite(t *testing.T) string {
	return writeSite(t, map[string]string{
		"index.html": goodPage,
		"styles.css": ":root { --accent: #2563eb; }",
	})
}

func brokenSite(t *testing.T) string {
	return writeSite(t, map[string]string{
		"index.html":    goodPage,
		"services.html": brokenPage,
		"styles.css":    ":root { --accent: #2563eb; }",
	})
}
