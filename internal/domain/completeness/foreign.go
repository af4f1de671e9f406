package completeness

import (
	"regexp"
	"sort"
	"strings"
)

var foreignTagRe = regexp.MustCompile(foreignTagNameRe)

// standardTags lists HTML element names, so an uppercase spelling of a real
// element (<BR>, <DIV>) is never reported as a leaked component.
var standardTags = map[string]bool{
	"a": true, "abbr": true, "address": true, "area": true, "article": true,
	"aside": true, "audio": true, "b": true, "base": true, "blockquote": true,
	"body": true, "br": true, "button": true, "canvas": true, "caption": true,
	"cite": true, "code": true, "col": true, "colgroup": true, "datalist": true,
	"dd": true, "del": true, "details": true, "dialog": true, "div": true,
	"dl": true, "dt": true, "em": true, "embed": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "i": true,
	"iframe": true, "img": true, "input": true, "ins": true, "kbd": true,
	"label": true, "legend": true, "li": true, "link": true, "main": true,
	"map": true, "mark": true, "menu": true, "meta": true, "meter": true,
	"nav": true, "noscript": true, "object": true, "ol": true, "optgroup": true,
	"option": true, "output": true, "p": true, "picture": true, "pre": true,
	"progress": true, "q": true, "samp": true, "script": true, "section": true,
	"select": true, "slot": true, "small": true, "source": true, "span": true,
	"strong": true, "style": true, "sub": true, "summary": true, "sup": true,
	"table": true, "tbody": true, "td": true, "template": true, "textarea": true,
	"tfoot": true, "th": true, "thead": true, "time": true, "title": true,
	"tr": true, "track": true, "u": true, "ul": true, "var": true,
	"video": true, "wbr": true,
}

// ForeignTags returns the deduplicated, sorted set of component-style tag
// names found in content.
func ForeignTags(content string) []string {
	seen := map[string]bool{}
	for _, m := range foreignTagRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if tagExceptions[name] || standardTags[strings.ToLower(name)] {
			continue
		}
		seen[name] = true
	}

	tags := make([]string, 0, len(seen))
	for name := range seen {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags
}
