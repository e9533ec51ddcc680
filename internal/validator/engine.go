package validator

import (
	"context"

	"salesdocs/internal/domain"
)

// Report is the outcome of running every rule against a document.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Checked  int      `json:"checked"`
}

// Engine runs the rules of a Registry.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Run evaluates every rule and groups the failures by severity. Passing results are
// only counted.
func (e *Engine) Run(ctx context.Context, doc *domain.Document) Report {
	report := Report{Errors: []Result{}, Warnings: []Result{}}
	for _, v := range e.registry.All() {
		for _, r := range v.Validate(ctx, doc) {
			report.Checked++
			if r.Passed {
				continue
			}
			if r.Severity == SeverityError {
				report.Errors = append(report.Errors, r)
			} else {
				report.Warnings = append(report.Warnings, r)
			}
		}
	}
	report.Valid = len(report.Errors) == 0
	return report
}

// Check returns a *domain.ValidationError listing every error-severity failure, or nil.
func (e *Engine) Check(ctx context.Context, doc *domain.Document) error {
	report := e.Run(ctx, doc)
	if report.Valid {
		return nil
	}
	verr := &domain.ValidationError{}
	for _, r := range report.Errors {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: r.FieldPath, Message: r.Message})
	}
	return verr
}
