// Package validator checks incoming documents against field-level business rules.
package validator

import (
	"context"

	"salesdocs/internal/domain"
)

// Severity decides whether a failed rule blocks a save.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is the outcome of one rule for one field path.
type Result struct {
	RuleKey       string   `json:"rule_key"`
	Passed        bool     `json:"passed"`
	Severity      Severity `json:"severity"`
	FieldPath     string   `json:"field_path"`
	ExpectedValue string   `json:"expected_value,omitempty"`
	ActualValue   string   `json:"actual_value,omitempty"`
	Message       string   `json:"message"`
}

// Validator is a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, doc *domain.Document) []Result
	RuleKey() string
	RuleName() string
	Severity() Severity
}

// rule adapts a check function to Validator.
type rule struct {
	key      string
	name     string
	severity Severity
	check    func(*domain.Document) []Result
}

func (r *rule) RuleKey() string    { return r.key }
func (r *rule) RuleName() string   { return r.name }
func (r *rule) Severity() Severity { return r.severity }

func (r *rule) Validate(_ context.Context, doc *domain.Document) []Result {
	results := r.check(doc)
	for i := range results {
		results[i].RuleKey = r.key
		results[i].Severity = r.severity
	}
	return results
}
