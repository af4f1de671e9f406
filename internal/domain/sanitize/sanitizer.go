// Package sanitize strips dangerous constructs from generated markup before
// it reaches a preview or deploy target.
package sanitize

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/pageforge/pageforge/internal/domain"
)

// Sanitizer removes iframes, inline event handlers, javascript: URLs and
// non-allow-listed scripts. It streams tokens and re-emits unmodified tokens
// verbatim, so safe markup survives byte-for-byte and the transform is
// idempotent. It never fails: unparseable trailing input passes through.
type Sanitizer struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Sanitizer {
	return &Sanitizer{policy: policy}
}

// Sanitize returns the cleaned markup.
func (s *Sanitizer) Sanitize(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				// Tokenizer gave up; pass the remainder through untouched.
				b.Write(z.Raw())
			}
			return b.String()
		}

		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			// Token consumes the tag name and attribute spans, so it is
			// the only read of this token.
			tok := z.Token()

			switch tok.Data {
			case "iframe":
				if tt == html.StartTagToken {
					skipUntilClose(z, "iframe")
				}
				continue
			case "script":
				if !s.scriptAllowed(tok) {
					if tt == html.StartTagToken {
						skipUntilClose(z, "script")
					}
					continue
				}
			}

			writeToken(&b, raw, tok)

		default:
			b.WriteString(raw)
		}
	}
}

// IsCodeSafe runs the sanitizer's checks read-only: it reports whether
// sanitizing would change anything dangerous.
func (s *Sanitizer) IsCodeSafe(src string) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return true
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := z.Token()
		if tok.Data == "iframe" {
			return false
		}
		if tok.Data == "script" && !s.scriptAllowed(tok) {
			return false
		}
		for _, a := range tok.Attr {
			if isEventHandler(a.Key) {
				return false
			}
			if isURLAttr(a.Key) && isJavascriptURL(a.Val) {
				return false
			}
		}
	}
}

// scriptAllowed reports whether a script tag carries a src from the policy
// allow-list. Inline scripts (no src) are never allowed.
func (s *Sanitizer) scriptAllowed(tok html.Token) bool {
	for _, a := range tok.Attr {
		if strings.EqualFold(a.Key, "src") {
			src := strings.TrimSpace(a.Val)
			for _, prefix := range s.policy.ScriptAllowlist {
				if strings.HasPrefix(src, prefix) {
					return true
				}
			}
			return false
		}
	}
	return false
}

// writeToken emits a tag token: verbatim when no attribute needs scrubbing,
// otherwise re-serialized with event handlers dropped and javascript: URLs
// neutralized.
func writeToken(b *strings.Builder, raw string, tok html.Token) {
	dirty := false
	for _, a := range tok.Attr {
		if isEventHandler(a.Key) || (isURLAttr(a.Key) && isJavascriptURL(a.Val)) {
			dirty = true
			break
		}
	}
	if !dirty {
		b.WriteString(raw)
		return
	}

	kept := tok.Attr[:0:0]
	for _, a := range tok.Attr {
		if isEventHandler(a.Key) {
			continue
		}
		if isURLAttr(a.Key) && isJavascriptURL(a.Val) {
			a.Val = "#"
		}
		kept = append(kept, a)
	}
	tok.Attr = kept
	b.WriteString(tok.String())
}

// skipUntilClose consumes tokens up to and including the matching end tag.
// Nested same-name tags are tracked so a malformed nest cannot swallow the
// rest of the document beyond the outermost element.
func skipUntilClose(z *html.Tokenizer, tag string) {
	depth := 1
	for depth > 0 {
		tt := z.Next()
		if tt == html.ErrorToken {
			return
		}
		name, _ := z.TagName()
		switch tt {
		case html.StartTagToken:
			if string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			if string(name) == tag {
				depth--
			}
		}
	}
}

func isEventHandler(key string) bool {
	return len(key) > 2 && strings.HasPrefix(strings.ToLower(key), "on")
}

func isURLAttr(key string) bool {
	return strings.EqualFold(key, "href") || strings.EqualFold(key, "src")
}

func isJavascriptURL(val string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(val)), "javascript:")
}
