// Package markup provides tolerant HTML helpers shared by the pipeline
// stages. Parsing is best-effort: malformed input produces a usable tree
// rather than an error.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document pairs a parsed tree with the raw source it came from. Tree
// visitors answer structural questions; raw-text scans answer questions the
// tree normalizes away (line numbers, inline style counts).
type Document struct {
	Root   *html.Node
	Source string
}

// Parse builds a Document from raw markup. html.Parse is error-tolerant by
// design; a nil Root only happens on reader failure, which cannot occur for
// an in-memory string.
func Parse(src string) *Document {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		root = nil
	}
	return &Document{Root: root, Source: src}
}

// Walk visits every node in depth-first document order. The visitor
// returns false to prune the subtree below a node.
func Walk(n *html.Node, visit func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

// First returns the first element with any of the given tag names.
func (d *Document) First(tags ...string) *html.Node {
	var found *html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && matchTag(n, tags) {
			found = n
			return false
		}
		return true
	})
	return found
}

// All returns every element with any of the given tag names, in document
// order.
func (d *Document) All(tags ...string) []*html.Node {
	var out []*html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && matchTag(n, tags) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func matchTag(n *html.Node, tags []string) bool {
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute and whether it is present.
// Attribute names are matched case-insensitively.
func Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// HasDoctype reports whether the raw source carries a doctype declaration.
// Checked on the source rather than the tree: html.Parse synthesizes
// structure but never invents a doctype, and the raw check also works for
// fragments the parser would re-root.
func HasDoctype(src string) bool {
	return strings.Contains(strings.ToLower(src), "<!doctype")
}

// HeadingLevels returns the level of every h1-h6 element in document order.
func (d *Document) HeadingLevels() []int {
	var levels []int
	Walk(d.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				levels = append(levels, int(n.Data[1]-'0'))
			}
		}
		return true
	})
	return levels
}

// Text returns the concatenated text content of a node's subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return strings.TrimSpace(b.String())
}

// VisibleText extracts the text a browser would render for the given
// markup: head, script and style subtrees are dropped, remaining text is
// concatenated and whitespace-collapsed.
func VisibleText(src string) string {
	doc := Parse(src)
	var b strings.Builder
	Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
				return false
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// LineOf returns the 1-based line of the first occurrence of needle in src,
// or 0 when absent. Matching is case-insensitive.
func LineOf(src, needle string) int {
	idx := strings.Index(strings.ToLower(src), strings.ToLower(needle))
	if idx < 0 {
		return 0
	}
	return 1 + strings.Count(src[:idx], "\n")
}
