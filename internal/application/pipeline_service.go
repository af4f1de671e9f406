// Package application orchestrates the domain transforms into the
// per-request safety chain.
package application

import (
	"sort"
	"strings"

	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/autofix"
	"github.com/pageforge/pageforge/internal/domain/completeness"
	"github.com/pageforge/pageforge/internal/domain/csp"
	"github.com/pageforge/pageforge/internal/domain/sanitize"
	"github.com/pageforge/pageforge/internal/domain/validate"
	"github.com/pageforge/pageforge/internal/domain/wrap"
)

// PipelineService drives one file through the fallback chain
// (sanitize → validate → fix → re-validate → wrap) and one file set through
// the cross-file checks (completeness, CSP). All stages are pure, so one
// service is safe for concurrent use across requests.
type PipelineService struct {
	policy    domain.Policy
	sanitizer *sanitize.Sanitizer
	validator *validate.Validator
	fixer     *autofix.Fixer
	wrapper   *wrap.Wrapper
	checker   *completeness.Checker
	extractor *csp.Extractor
}

func NewPipelineService(policy domain.Policy) *PipelineService {
	return &PipelineService{
		policy:    policy,
		sanitizer: sanitize.New(policy),
		validator: validate.New(policy),
		fixer:     autofix.New(policy),
		wrapper:   wrap.New(policy),
		checker:   completeness.New(policy),
		extractor: csp.NewExtractor(policy),
	}
}

// ProcessFile advances one document through the chain's states until the
// validation score clears the acceptance threshold or the template wrapper,
// which always clears it structurally, has run.
func (s *PipelineService) ProcessFile(filename, content string) domain.PipelineResult {
	result := domain.PipelineResult{Filename: filename, Stage: domain.StageRaw}

	content = s.sanitizer.Sanitize(content)
	result.Stage = domain.StageSanitized
	vr := s.validator.Validate(content)
	result.InitialScore = vr.Score

	if vr.Score < s.policy.AcceptScore {
		fixed := s.fixer.Fix(content, vr)
		if len(fixed.AppliedFixes) > 0 {
			content = fixed.Fixed
			result.AppliedFixes = fixed.AppliedFixes
			result.Stage = domain.StageFixed
			vr = s.validator.Validate(content)
		}
	}

	if vr.Score < s.policy.AcceptScore {
		wrapped := s.wrapper.Wrap(content, wrap.TitleFromFilename(filename))
		if wrapped != content {
			content = wrapped
			result.Stage = domain.StageWrapped
			vr = s.validator.Validate(content)
		}
	}

	result.Content = content
	result.FinalScore = vr.Score
	result.Validation = vr
	return result
}

// ProcessSite runs the per-file chain over every HTML file, then the
// cross-file completeness check and CSP generation over the repaired set.
func (s *PipelineService) ProcessSite(files domain.FileSet, expected []string) domain.SiteResult {
	var site domain.SiteResult

	repaired := domain.FileSet{}
	for name, content := range files {
		repaired[name] = content
	}

	var names []string
	for name := range files {
		if isHTML(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		fileResult := s.ProcessFile(name, files[name])
		repaired[name] = fileResult.Content
		site.Files = append(site.Files, fileResult)
	}

	site.Completeness = s.checker.Check(repaired, expected)

	set := s.extractor.ExtractFromFiles(repaired)
	site.Policy = csp.BuildPolicy(set)
	site.Headers = csp.Headers(set)

	return site
}

// Repaired reconstructs the final file set from the input and a site
// result: pipeline output for HTML files, original content for the rest.
func Repaired(files domain.FileSet, site domain.SiteResult) domain.FileSet {
	out := domain.FileSet{}
	for name, content := range files {
		out[name] = content
	}
	for _, f := range site.Files {
		out[f.Filename] = f.Content
	}
	return out
}

func isHTML(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
