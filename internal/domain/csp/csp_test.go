package csp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/csp"
)

// bareExtractor has no baseline CDN origins, so the test sees exactly what
// was detected.
func bareExtractor() *csp.Extractor {
	return csp.NewExtractor(domain.Policy{})
}

func TestExtract_ScriptOriginsDeduplicated(t *testing.T) {
	code := `<script src="https://cdn.example.com/a.js"></script>
<script src="https://cdn.example.com/b.js"></script>
<script src="/js/app.js"></script>`

	set := bareExtractor().Extract(code)
	assert.Equal(t, []string{"https://cdn.example.com"}, set.Scripts)
}

func TestExtract_SkipsNonNetworkURLs(t *testing.T) {
	code := `<img src="data:image/png;base64,AAAA">
<img src="blob:https://example.com/uuid">
<img src="images/local.png">
<img src="https://img.example.com/pic.png">`

	set := bareExtractor().Extract(code)
	assert.Equal(t, []string{"https://img.example.com"}, set.Images)
}

func TestExtract_Stylesheets(t *testing.T) {
	code := `<link rel="stylesheet" href="https://cdn.example.com/theme.css">
@import url("https://styles.example.net/base.css");`

	set := bareExtractor().Extract(code)
	assert.ElementsMatch(t, []string{"https://cdn.example.com", "https://styles.example.net"}, set.Styles)
}

func TestExtract_FontsFromURLFunctions(t *testing.T) {
	code := `@font-face { src: url(https://fonts.gstatic.com/s/inter.woff2) format("woff2"); }`
	set := bareExtractor().Extract(code)
	assert.Equal(t, []string{"https://fonts.gstatic.com"}, set.Fonts)
}

func TestExtract_APICalls(t *testing.T) {
	code := `fetch("https://api.example.com/v1/items")
axios.get('https://data.example.org/feed')`

	set := bareExtractor().Extract(code)
	assert.ElementsMatch(t, []string{"https://api.example.com", "https://data.example.org"}, set.APIs)
}

func TestExtract_Srcset(t *testing.T) {
	code := `<img srcset="https://img.example.com/s.png 1x, https://img.example.com/l.png 2x" src="https://img.example.com/s.png">`
	set := bareExtractor().Extract(code)
	assert.Equal(t, []string{"https://img.example.com"}, set.Images)
}

func TestExtract_CDNBaselineAlwaysIncluded(t *testing.T) {
	set := csp.NewExtractor(domain.DefaultPolicy()).Extract("<p>no external references</p>")
	assert.Contains(t, set.Scripts, "https://cdn.jsdelivr.net")
	assert.Contains(t, set.Styles, "https://fonts.googleapis.com")
	assert.Contains(t, set.Fonts, "https://fonts.gstatic.com")
	assert.Empty(t, set.APIs)
	assert.Empty(t, set.Images)
}

func TestExtractFromFiles_MergesAllFiles(t *testing.T) {
	files := domain.FileSet{
		"index.html": `<script src="https://cdn.example.com/a.js"></script>`,
		"app.js":     `fetch("https://api.example.com/items")`,
	}
	set := bareExtractor().ExtractFromFiles(files)
	assert.Equal(t, []string{"https://cdn.example.com"}, set.Scripts)
	assert.Equal(t, []string{"https://api.example.com"}, set.APIs)
}

func TestBuildPolicy(t *testing.T) {
	set := domain.CSPDomainSet{
		Scripts: []string{"https://cdn.example.com"},
		APIs:    []string{"https://api.example.com"},
	}
	policy := csp.BuildPolicy(set)

	assert.Contains(t, policy, "default-src 'self'")
	assert.Contains(t, policy, "script-src 'self' https://cdn.example.com")
	assert.Contains(t, policy, "style-src 'self' 'unsafe-inline'")
	assert.Contains(t, policy, "connect-src 'self' https://api.example.com")
	assert.Contains(t, policy, "img-src 'self' data:")
	assert.Contains(t, policy, "frame-ancestors 'none'")
	assert.Contains(t, policy, "object-src 'none'")
	assert.Contains(t, policy, "upgrade-insecure-requests")
}

func TestMetaTag_DropsFrameAncestors(t *testing.T) {
	tag := csp.MetaTag(domain.CSPDomainSet{})
	assert.True(t, strings.HasPrefix(tag, `<meta http-equiv="Content-Security-Policy"`))
	assert.NotContains(t, tag, "frame-ancestors")
}

func TestHeaders(t *testing.T) {
	headers := csp.Headers(domain.CSPDomainSet{})

	require.Contains(t, headers, "Content-Security-Policy")
	assert.Equal(t, "nosniff", headers["X-Content-Type-Options"])
	assert.Equal(t, "DENY", headers["X-Frame-Options"])
	assert.Equal(t, "strict-origin-when-cross-origin", headers["Referrer-Policy"])
	assert.Contains(t, headers["Permissions-Policy"], "camera=()")
}

func TestValidatePolicy(t *testing.T) {
	v := csp.ValidatePolicy(csp.BuildPolicy(domain.CSPDomainSet{}))
	assert.True(t, v.Valid)
	assert.Empty(t, v.MissingDirectives)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "'unsafe-inline'")
}

func TestValidatePolicy_MissingDirectives(t *testing.T) {
	v := csp.ValidatePolicy("img-src 'self'")
	assert.False(t, v.Valid)
	assert.ElementsMatch(t, []string{"default-src", "script-src", "style-src"}, v.MissingDirectives)
}
