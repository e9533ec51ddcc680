package validator

import (
	"fmt"
	"strings"

	"salesdocs/internal/domain"
)

func presence(fieldPath, value, ruleName string) Result {
	passed := strings.TrimSpace(value) != ""
	msg := fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is required", ruleName, fieldPath)
	}
	return Result{Passed: passed, FieldPath: fieldPath, ExpectedValue: "non-empty value", ActualValue: value, Message: msg}
}

// RequiredValidators returns the presence checks.
func RequiredValidators() []Validator {
	return []Validator{
		&rule{
			key: "required.party", name: "Required: Customer or Lead", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				r := Result{Passed: doc.HasParty(), FieldPath: "customer_id", ExpectedValue: "customer_id or lead_id"}
				r.Message = "Required: Customer or Lead: a customer or lead is set"
				if !r.Passed {
					r.Message = "Required: Customer or Lead: customer_id or lead_id is required"
				}
				return []Result{r}
			},
		},
		&rule{
			key: "required.date", name: "Required: Date", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				r := Result{Passed: !doc.Date.IsZero(), FieldPath: "date", ExpectedValue: "a date"}
				r.Message = "Required: Date: date is present"
				if !r.Passed {
					r.Message = "Required: Date: date is required"
				}
				return []Result{r}
			},
		},
		&rule{
			key: "required.party_name", name: "Required: Party Name", severity: SeverityWarning,
			check: func(doc *domain.Document) []Result {
				return []Result{presence("party.name", doc.Party.Name, "Required: Party Name")}
			},
		},
		&rule{
			key: "required.items", name: "Required: Line Items", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				r := Result{Passed: len(doc.Items) > 0, FieldPath: "items", ExpectedValue: "at least one item", ActualValue: fmt.Sprint(len(doc.Items))}
				r.Message = "Required: Line Items: items are present"
				if !r.Passed {
					r.Message = "Required: Line Items: at least one item is required"
				}
				return []Result{r}
			},
		},
		&rule{
			key: "required.item.description", name: "Required: Item Description", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				results := make([]Result, 0, len(doc.Items))
				for i := range doc.Items {
					results = append(results, presence(fmt.Sprintf("items[%d].description", i), doc.Items[i].Description, "Required: Item Description"))
				}
				return results
			},
		},
	}
}
