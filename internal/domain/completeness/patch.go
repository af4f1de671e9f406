package completeness

import (
	"fmt"
	"strings"
)

// PatchPage applies the local best-effort repairs to a broken page: foreign
// component tags become comments naming the missing component, and stray
// '>' artifact lines are dropped. The page still needs regeneration; this
// only keeps it from rendering as silent blank space in the meantime.
func PatchPage(content string) string {
	patched := foreignTagRe.ReplaceAllStringFunc(content, func(tag string) string {
		m := foreignTagRe.FindStringSubmatch(tag)
		name := m[1]
		if tagExceptions[name] || standardTags[strings.ToLower(name)] {
			return tag
		}
		if strings.HasPrefix(tag, "</") {
			return ""
		}
		return fmt.Sprintf("<!-- missing component: %s -->", name)
	})

	var lines []string
	for _, line := range strings.Split(patched, "\n") {
		if strings.TrimSpace(line) == ">" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
