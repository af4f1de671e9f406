// Package autofix deterministically repairs the subset of validation
// findings that have a safe, narrowly scoped textual patch.
package autofix

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
)

// Fixer applies patches for auto-fixable issues only. Each patch touches
// exactly the construct it repairs; unrelated content is left byte-for-byte
// intact. With no auto-fixable issues the input is returned unchanged.
type Fixer struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Fixer {
	return &Fixer{policy: policy}
}

var (
	imgTagRe  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	aTagRe    = regexp.MustCompile(`(?i)<a\b[^>]*>`)
	htmlTagRe = regexp.MustCompile(`(?i)<html\b`)

	// Insertion anchors, most specific first. \b keeps <head> from
	// matching <header>.
	headAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<head\b`),
		regexp.MustCompile(`(?i)<html\b`),
		regexp.MustCompile(`(?i)<!doctype\b`),
	}
)

// Fix applies every available patch for the auto-fixable issues in result.
func (f *Fixer) Fix(src string, result domain.ValidationResult) domain.FixResult {
	fixed := src
	var applied []string
	fixedCount := 0

	for _, iss := range result.Issues {
		if !iss.AutoFixable {
			continue
		}

		var name string
		switch {
		case strings.Contains(iss.Message, "DOCTYPE"):
			fixed = "<!DOCTYPE html>\n" + fixed
			name = "insert_doctype"
		case strings.Contains(iss.Message, "charset"):
			fixed = insertInHead(fixed, `<meta charset="UTF-8">`)
			name = "insert_charset_meta"
		case strings.Contains(iss.Message, "viewport"):
			fixed = insertInHead(fixed, `<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
			name = "insert_viewport_meta"
		case strings.Contains(iss.Message, "lang attribute"):
			fixed = insertLang(fixed, f.policy.DefaultLang)
			name = "insert_lang_attribute"
		case strings.Contains(iss.Message, "loading attribute"):
			fixed = addLazyLoading(fixed)
			name = "add_lazy_loading"
		case strings.Contains(iss.Message, "rel=noopener"):
			fixed = hardenExternalLinks(fixed)
			name = "harden_external_links"
		default:
			continue
		}
		applied = append(applied, name)
		fixedCount++
	}

	return domain.FixResult{
		Fixed:          fixed,
		AppliedFixes:   applied,
		RemainingCount: len(result.Issues) - fixedCount,
	}
}

// insertInHead places a head-scoped tag at the best available insertion
// point: after <head>, else after <html ...>, else after the doctype, else
// at the very start. The parser assigns leading metadata to the implied
// head in every case.
func insertInHead(src, tag string) string {
	for _, anchor := range headAnchors {
		loc := anchor.FindStringIndex(src)
		if loc == nil {
			continue
		}
		end := strings.Index(src[loc[0]:], ">")
		if end < 0 {
			continue
		}
		at := loc[0] + end + 1
		return src[:at] + "\n" + tag + src[at:]
	}

	return tag + "\n" + src
}

// insertLang adds a lang attribute to the first <html> tag.
func insertLang(src, lang string) string {
	done := false
	return htmlTagRe.ReplaceAllStringFunc(src, func(m string) string {
		if done {
			return m
		}
		done = true
		return m + fmt.Sprintf(" lang=%q", lang)
	})
}

// addLazyLoading adds loading="lazy" to every <img> tag that has no
// loading attribute.
func addLazyLoading(src string) string {
	return imgTagRe.ReplaceAllStringFunc(src, func(tag string) string {
		if strings.Contains(strings.ToLower(tag), "loading=") {
			return tag
		}
		return injectAttr(tag, ` loading="lazy"`)
	})
}

// hardenExternalLinks adds rel="noopener noreferrer" to every anchor that
// opens a new tab without one.
func hardenExternalLinks(src string) string {
	return aTagRe.ReplaceAllStringFunc(src, func(tag string) string {
		lower := strings.ToLower(tag)
		if !strings.Contains(lower, "target=\"_blank\"") && !strings.Contains(lower, "target='_blank'") {
			return tag
		}
		if strings.Contains(lower, "rel=") {
			return tag
		}
		return injectAttr(tag, ` rel="noopener noreferrer"`)
	})
}

// injectAttr inserts an attribute just before the closing > of a tag,
// respecting self-closing /> syntax.
func injectAttr(tag, attr string) string {
	if strings.HasSuffix(tag, "/>") {
		return tag[:len(tag)-2] + attr + "/>"
	}
	return tag[:len(tag)-1] + attr + ">"
}
