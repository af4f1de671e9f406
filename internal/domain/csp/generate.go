package csp

import (
	"fmt"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
)

// BuildPolicy serializes a domain set into a Content-Security-Policy
// string: default-src 'self', one directive per resource category, plus
// fixed hardening directives. style-src keeps 'unsafe-inline' because
// generated pages carry their styles in <style> blocks; validation flags it
// as a production-posture warning rather than an error.
func BuildPolicy(set domain.CSPDomainSet) string {
	directives := []string{
		"default-src 'self'",
		directive("script-src", "'self'", set.Scripts),
		directive("style-src", "'self' 'unsafe-inline'", set.Styles),
		directive("font-src", "'self'", set.Fonts),
		directive("connect-src", "'self'", set.APIs),
		directive("img-src", "'self' data:", set.Images),
		"frame-ancestors 'none'",
		"object-src 'none'",
		"base-uri 'self'",
		"upgrade-insecure-requests",
	}
	return strings.Join(directives, "; ")
}

// MetaTag serializes the policy for embedding in a page. frame-ancestors is
// only honored in a response header, so the meta variant drops it.
func MetaTag(set domain.CSPDomainSet) string {
	policy := BuildPolicy(set)
	policy = strings.ReplaceAll(policy, "frame-ancestors 'none'; ", "")
	return fmt.Sprintf(`<meta http-equiv="Content-Security-Policy" content=%q>`, policy)
}

// Headers returns the CSP plus the standard hardening response headers for
// a deployment config.
func Headers(set domain.CSPDomainSet) map[string]string {
	return map[string]string{
		"Content-Security-Policy": BuildPolicy(set),
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Permissions-Policy":      "camera=(), microphone=(), geolocation=()",
	}
}

// requiredDirectives must be present for a policy to count as valid.
var requiredDirectives = []string{"default-src", "script-src", "style-src"}

// ValidatePolicy checks a policy string for the required directives and
// flags weakening keywords. Weakening keywords are warnings, not failures.
func ValidatePolicy(policy string) domain.CSPValidation {
	v := domain.CSPValidation{Valid: true}

	for _, d := range requiredDirectives {
		if !strings.Contains(policy, d) {
			v.Valid = false
			v.MissingDirectives = append(v.MissingDirectives, d)
		}
	}

	if strings.Contains(policy, "'unsafe-inline'") {
		v.Warnings = append(v.Warnings, "policy allows 'unsafe-inline'; acceptable for previews, tighten for production")
	}
	if strings.Contains(policy, "'unsafe-eval'") {
		v.Warnings = append(v.Warnings, "policy allows 'unsafe-eval'; remove unless the site genuinely needs it")
	}

	return v
}

func directive(name, base string, origins []string) string {
	if len(origins) == 0 {
		return name + " " + base
	}
	return name + " " + base + " " + strings.Join(origins, " ")
}
