package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/completeness"
	"github.com/pageforge/pageforge/internal/domain/regen"
)

// RegenService decides which pages are unrecoverable locally and builds the
// regeneration payloads for them. The LLM round trip itself stays behind
// the Generator port.
type RegenService struct {
	policy  domain.Policy
	checker *completeness.Checker
	builder *regen.Builder
}

func NewRegenService(policy domain.Policy) *RegenService {
	return &RegenService{
		policy:  policy,
		checker: completeness.New(policy),
		builder: regen.New(policy),
	}
}

// BuildRequests checks the file set and composes one request per page that
// needs regeneration using the site's own chrome as shared context.
func (s *RegenService) BuildRequests(files domain.FileSet, expected []string, spec string) []domain.RegenRequest {
	result := s.checker.Check(files, expected)

	reference := s.referencePage(files, result)
	stylesheet := sharedStylesheet(files)

	var requests []domain.RegenRequest
	for _, page := range result.Pages {
		if !page.NeedsRegeneration {
			continue
		}
		var reasons []string
		for _, iss := range page.Issues {
			if iss.Severity == domain.PageSeverityCritical {
				reasons = append(reasons, iss.Message)
			}
		}
		requests = append(requests, s.builder.Build(page.Filename, spec, reference, stylesheet, reasons))
	}

	for _, name := range result.MissingPages {
		requests = append(requests, s.builder.Build(name, spec, reference, stylesheet,
			[]string{"page was not generated at all"}))
	}

	return requests
}

// Regenerate runs the requests through the Generator port and returns the
// file set with fresh content substituted in. Failed generations keep the
// old content and are reported in errs.
func (s *RegenService) Regenerate(files domain.FileSet, requests []domain.RegenRequest, gen domain.Generator) (domain.FileSet, []error) {
	out := domain.FileSet{}
	for name, content := range files {
		out[name] = content
	}

	var errs []error
	for _, req := range requests {
		fresh, err := gen.Generate(req)
		if err != nil {
			errs = append(errs, fmt.Errorf("regenerating %s: %w", req.Filename, err))
			continue
		}
		out[req.Filename] = fresh
	}
	return out, errs
}

// referencePage picks a known-good page to borrow navigation and footer
// markup from, preferring index.html.
func (s *RegenService) referencePage(files domain.FileSet, result domain.PageCompletenessResult) string {
	healthy := map[string]bool{}
	for _, page := range result.Pages {
		if !page.NeedsRegeneration {
			healthy[page.Filename] = true
		}
	}

	if healthy["index.html"] {
		return files["index.html"]
	}
	for _, page := range result.Pages {
		if healthy[page.Filename] {
			return files[page.Filename]
		}
	}
	return ""
}

// sharedStylesheet returns the site's standalone stylesheet when one
// exists.
func sharedStylesheet(files domain.FileSet) string {
	for _, name := range []string{"styles.css", "style.css", "main.css"} {
		if css, ok := files[name]; ok {
			return css
		}
	}
	var cssNames []string
	for name := range files {
		if strings.HasSuffix(strings.ToLower(name), ".css") {
			cssNames = append(cssNames, name)
		}
	}
	if len(cssNames) == 0 {
		return ""
	}
	sort.Strings(cssNames)
	return files[cssNames[0]]
}
