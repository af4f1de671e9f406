// Package csp derives a Content-Security-Policy from the third-party
// origins a generated site actually references.
package csp

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
)

// Extractor scans code for external references. Five independent extractors
// cover scripts, stylesheets, fonts, API calls and images; unparseable
// URLs, relative paths and data:/blob: URIs are silently skipped.
type Extractor struct {
	policy domain.Policy
}

func NewExtractor(policy domain.Policy) *Extractor {
	return &Extractor{policy: policy}
}

var (
	scriptSrcRe = regexp.MustCompile(`(?i)<script\b[^>]*\bsrc\s*=\s*["']([^"']+)["']`)
	linkHrefRe  = regexp.MustCompile(`(?i)<link\b[^>]*\bhref\s*=\s*["']([^"']+)["']`)
	importRe    = regexp.MustCompile(`(?i)@import\s+(?:url\(\s*)?["']?([^"'()\s;]+)`)
	urlFuncRe   = regexp.MustCompile(`(?i)url\(\s*["']?([^"')]+?)["']?\s*\)`)
	fetchCallRe = regexp.MustCompile("(?i)\\bfetch\\(\\s*[\"'`]([^\"'`]+)")
	axiosCallRe = regexp.MustCompile("(?i)\\baxios(?:\\.\\w+)?\\(\\s*[\"'`]([^\"'`]+)")
	imgSrcRe    = regexp.MustCompile(`(?i)<img\b[^>]*\bsrc\s*=\s*["']([^"']+)["']`)
	srcsetRe    = regexp.MustCompile(`(?i)\bsrcset\s*=\s*["']([^"']+)["']`)
)

var (
	scriptExts = []string{".js", ".mjs"}
	styleExts  = []string{".css"}
	fontExts   = []string{".woff", ".woff2", ".ttf", ".otf", ".eot"}
	imageExts  = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif", ".ico"}
)

// Extract scans one code blob and returns the per-category origin sets.
// The common CDN origins from the policy are always unioned into the
// script, style and font sets.
func (e *Extractor) Extract(code string) domain.CSPDomainSet {
	scripts := newOriginSet()
	styles := newOriginSet()
	fonts := newOriginSet()
	apis := newOriginSet()
	images := newOriginSet()

	for _, m := range scriptSrcRe.FindAllStringSubmatch(code, -1) {
		scripts.addIfExt(m[1], scriptExts)
	}

	for _, m := range linkHrefRe.FindAllStringSubmatch(code, -1) {
		styles.addIfExt(m[1], styleExts)
	}
	for _, m := range importRe.FindAllStringSubmatch(code, -1) {
		styles.addIfExt(m[1], styleExts)
	}

	for _, m := range urlFuncRe.FindAllStringSubmatch(code, -1) {
		fonts.addIfExt(m[1], fontExts)
	}

	for _, m := range fetchCallRe.FindAllStringSubmatch(code, -1) {
		apis.add(m[1])
	}
	for _, m := range axiosCallRe.FindAllStringSubmatch(code, -1) {
		apis.add(m[1])
	}

	for _, m := range imgSrcRe.FindAllStringSubmatch(code, -1) {
		images.addIfExt(m[1], imageExts)
	}
	for _, m := range srcsetRe.FindAllStringSubmatch(code, -1) {
		for _, candidate := range strings.Split(m[1], ",") {
			fields := strings.Fields(strings.TrimSpace(candidate))
			if len(fields) > 0 {
				images.addIfExt(fields[0], imageExts)
			}
		}
	}

	for _, cdn := range e.policy.CommonCDNOrigins {
		scripts.add(cdn)
		styles.add(cdn)
		fonts.add(cdn)
	}

	return domain.CSPDomainSet{
		Scripts: scripts.sorted(),
		Styles:  styles.sorted(),
		Fonts:   fonts.sorted(),
		APIs:    apis.sorted(),
		Images:  images.sorted(),
	}
}

// ExtractFromFiles scans every file in the set and merges the results.
func (e *Extractor) ExtractFromFiles(files domain.FileSet) domain.CSPDomainSet {
	var names []string
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var all strings.Builder
	for _, name := range names {
		all.WriteString(files[name])
		all.WriteString("\n")
	}
	return e.Extract(all.String())
}

type originSet map[string]bool

func newOriginSet() originSet { return originSet{} }

// add records the origin of an absolute http(s) URL. Everything else
// (relative paths, data:/blob: URIs, garbage) is dropped without error.
func (s originSet) add(raw string) {
	origin, ok := originOf(raw)
	if ok {
		s[origin] = true
	}
}

func (s originSet) addIfExt(raw string, exts []string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return
	}
	path := strings.ToLower(u.Path)
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			s.add(raw)
			return
		}
	}
}

func (s originSet) sorted() []string {
	out := make([]string, 0, len(s))
	for origin := range s {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}

// originOf reduces a URL to its scheme+host(+port) origin.
func originOf(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return scheme + "://" + strings.ToLower(u.Host), true
}
