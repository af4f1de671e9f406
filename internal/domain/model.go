package domain

// Issue represents a single static-analysis finding in a generated document.
type Issue struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	FixHint     string `json:"fix_hint,omitempty"`
	AutoFixable bool   `json:"auto_fixable"`
	Line        int    `json:"line,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

const (
	CategoryStructural    = "structural"
	CategorySEO           = "seo"
	CategoryAccessibility = "accessibility"
	CategoryPerformance   = "performance"
	CategoryCSS           = "css"
)

// ValidationResult holds the outcome of validating one document.
// It is a deterministic function of the input text.
type ValidationResult struct {
	Passed   bool    `json:"passed"`
	Score    int     `json:"score"`
	Issues   []Issue `json:"issues"`
	Errors   int     `json:"errors"`
	Warnings int     `json:"warnings"`
	Infos    int     `json:"infos"`
}

// Severity weights used when deducting points from a perfect score.
const (
	ErrorWeight   = 10
	WarningWeight = 3
	InfoWeight    = 1
)

// NewValidationResult computes counts, score and pass/fail from a list of
// issues. Score starts at 100 and floors at 0; passed means zero errors.
func NewValidationResult(issues []Issue) ValidationResult {
	r := ValidationResult{Issues: issues}
	for _, iss := range issues {
		switch iss.Severity {
		case SeverityError:
			r.Errors++
		case SeverityWarning:
			r.Warnings++
		case SeverityInfo:
			r.Infos++
		}
	}
	score := 100 - r.Errors*ErrorWeight - r.Warnings*WarningWeight - r.Infos*InfoWeight
	if score < 0 {
		score = 0
	}
	r.Score = score
	r.Passed = r.Errors == 0
	return r
}

func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// FixResult is the outcome of applying auto-fixes to one document.
type FixResult struct {
	Fixed          string   `json:"fixed"`
	AppliedFixes   []string `json:"applied_fixes"`
	RemainingCount int      `json:"remaining_issue_count"`
}

// PageIssue is a single completeness finding for one generated page.
type PageIssue struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

// PageIssue severities. Critical findings mark the page for regeneration;
// warnings are advisory.
const (
	PageSeverityCritical = "critical"
	PageSeverityWarning  = "warning"
)

// PageIssue types reported by the completeness checker.
const (
	PageIssueForeignTags  = "foreign_tags"
	PageIssueEmptyPage    = "empty_page"
	PageIssueArtifactLine = "artifact_line"
	PageIssueNoDoctype    = "missing_doctype"
	PageIssueNavFormat    = "nav_format"
	PageIssuePlaceholder  = "placeholder_content"
	PageIssueBrokenImage  = "broken_image"
)

// PageCheckResult is the completeness verdict for one page.
type PageCheckResult struct {
	Filename          string      `json:"filename"`
	Length            int         `json:"length"`
	Issues            []PageIssue `json:"issues"`
	IsEmpty           bool        `json:"is_empty"`
	HasForeignTags    bool        `json:"has_foreign_tags"`
	ForeignTags       []string    `json:"foreign_tags,omitempty"`
	NeedsRegeneration bool        `json:"needs_regeneration"`
}

// PageCompletenessResult is the multi-page completeness verdict for one
// generation.
type PageCompletenessResult struct {
	Passed         bool              `json:"passed"`
	Pages          []PageCheckResult `json:"pages"`
	MissingPages   []string          `json:"missing_pages"`
	CriticalErrors []string          `json:"critical_errors"`
}

// FileSet maps filename to content for one generation request.
type FileSet map[string]string

// CSPDomainSet groups the third-party origins a site references, per
// resource category. Each list is deduplicated and sorted.
type CSPDomainSet struct {
	Scripts []string `json:"scripts"`
	Styles  []string `json:"styles"`
	Fonts   []string `json:"fonts"`
	APIs    []string `json:"apis"`
	Images  []string `json:"images"`
}

// CSPValidation reports on the production posture of a policy string.
type CSPValidation struct {
	Valid             bool     `json:"valid"`
	MissingDirectives []string `json:"missing_directives,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}

// Pipeline stages, in the order the chain advances through them.
const (
	StageRaw       = "raw"
	StageSanitized = "sanitized"
	StageFixed     = "fixed"
	StageWrapped   = "wrapped"
)

// PipelineResult records how one file moved through the safety chain.
type PipelineResult struct {
	Filename     string           `json:"filename"`
	Stage        string           `json:"stage"`
	Content      string           `json:"content"`
	InitialScore int              `json:"initial_score"`
	FinalScore   int              `json:"final_score"`
	AppliedFixes []string         `json:"applied_fixes,omitempty"`
	Validation   ValidationResult `json:"validation"`
}

// SiteResult is the full pipeline outcome for one generation request.
type SiteResult struct {
	Files        []PipelineResult       `json:"files"`
	Completeness PageCompletenessResult `json:"completeness"`
	Policy       string                 `json:"csp_policy"`
	Headers      map[string]string      `json:"csp_headers"`
	CommitHash   string                 `json:"commit_hash,omitempty"`
}

// RegenRequest is the payload handed to the LLM collaborator when a page
// cannot be repaired locally.
type RegenRequest struct {
	Filename string   `json:"filename"`
	Prompt   string   `json:"prompt"`
	Reasons  []string `json:"reasons"`
}
