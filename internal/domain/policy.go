package domain

import "fmt"

// Policy is the immutable configuration threaded through every pipeline
// stage: allow-lists, thresholds and emptiness floors. Components never
// mutate it, so one value is safe to share across concurrent requests.
type Policy struct {
	// ScriptAllowlist lists URL prefixes an external <script src> may use.
	// Scripts outside the list are removed by the sanitizer.
	ScriptAllowlist []string `json:"script_allowlist"`

	// CommonCDNOrigins are always unioned into the script/style/font CSP
	// sets so a site with no detected third-party usage still gets a
	// workable default policy.
	CommonCDNOrigins []string `json:"common_cdn_origins"`

	// AcceptScore is the validation score at which the fallback chain
	// stops. Pages still below it after auto-fixing get template-wrapped.
	AcceptScore int `json:"accept_score"`

	// MinRawChars and MinVisibleChars are the blank-page floors: raw
	// content length and visible body text length a page must reach.
	MinRawChars     int `json:"min_raw_chars"`
	MinVisibleChars int `json:"min_visible_chars"`

	// TitleMaxLen and DescriptionMaxLen cap synthesized metadata.
	TitleMaxLen       int `json:"title_max_len"`
	DescriptionMaxLen int `json:"description_max_len"`

	// DefaultLang is inserted by the lang-attribute auto-fix.
	DefaultLang string `json:"default_lang"`

	// LargeInlineScript is the byte size past which an inline script is
	// flagged as a performance warning.
	LargeInlineScript int `json:"large_inline_script"`

	// MaxInlineStyles is the count of style= attributes tolerated before a
	// performance warning is raised.
	MaxInlineStyles int `json:"max_inline_styles"`

	// PageSections maps a page type (index, about, contact, ...) to the
	// minimum sections a regenerated page must contain.
	PageSections map[string][]string `json:"page_sections,omitempty"`
}

// DefaultPolicy returns the reference policy values. Floors and the accept
// threshold were calibrated against a known-good minimal template.
func DefaultPolicy() Policy {
	return Policy{
		ScriptAllowlist: []string{
			"https://cdn.jsdelivr.net/",
			"https://cdnjs.cloudflare.com/",
			"https://unpkg.com/",
			"https://cdn.tailwindcss.com/",
			"https://code.jquery.com/",
		},
		CommonCDNOrigins: []string{
			"https://cdn.jsdelivr.net",
			"https://cdnjs.cloudflare.com",
			"https://unpkg.com",
			"https://fonts.googleapis.com",
			"https://fonts.gstatic.com",
		},
		AcceptScore:       90,
		MinRawChars:       800,
		MinVisibleChars:   200,
		TitleMaxLen:       60,
		DescriptionMaxLen: 160,
		DefaultLang:       "en",
		LargeInlineScript: 2048,
		MaxInlineStyles:   10,
		PageSections: map[string][]string{
			"index":   {"hero", "features", "footer"},
			"about":   {"team or story section", "footer"},
			"contact": {"contact form or details", "footer"},
		},
	}
}

// Validate catches nonsensical policy values before they reach the pipeline.
func (p Policy) Validate() error {
	if p.AcceptScore < 0 || p.AcceptScore > 100 {
		return fmt.Errorf("accept_score must be in [0,100], got %d", p.AcceptScore)
	}
	if p.MinRawChars < 0 || p.MinVisibleChars < 0 {
		return fmt.Errorf("emptiness floors must be non-negative")
	}
	if p.MinVisibleChars > p.MinRawChars {
		return fmt.Errorf("min_visible_chars (%d) cannot exceed min_raw_chars (%d)", p.MinVisibleChars, p.MinRawChars)
	}
	if p.TitleMaxLen <= 0 || p.DescriptionMaxLen <= 0 {
		return fmt.Errorf("metadata caps must be positive")
	}
	return nil
}
