// Package validate scores the structural, SEO, accessibility and performance
// quality of one generated document and emits findings as data.
package validate

import (
	"github.com/pageforge/pageforge/internal/domain"
	"github.com/pageforge/pageforge/internal/domain/markup"
)

// Validator runs every check against a document and folds the findings into
// a ValidationResult. Same input always yields the identical result.
type Validator struct {
	policy domain.Policy
}

func New(policy domain.Policy) *Validator {
	return &Validator{policy: policy}
}

// Validate parses the document once and runs the independent check groups.
// Score starts at 100 and loses 10 per error, 3 per warning, 1 per info;
// passed means zero errors.
func (v *Validator) Validate(src string) domain.ValidationResult {
	doc := markup.Parse(src)

	var issues []domain.Issue
	issues = append(issues, checkStructural(doc)...)
	issues = append(issues, checkSEO(doc)...)
	issues = append(issues, checkAccessibility(doc, v.policy)...)
	issues = append(issues, checkPerformance(doc, v.policy)...)
	issues = append(issues, checkCSS(doc)...)

	return domain.NewValidationResult(issues)
}
