package validator

import (
	"fmt"
	"regexp"

	"salesdocs/internal/domain"
)

var (
	gstinPattern     = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern       = regexp.MustCompile(`^\d{4,8}$`)
	stateCodePattern = regexp.MustCompile(`^\d{2}$`)
)

// ValidGSTIN reports whether s is a well-formed 15 character GSTIN.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

func regexCheck(fieldPath, value, ruleName string, re *regexp.Regexp) Result {
	if value == "" {
		return Result{
			Passed: true, FieldPath: fieldPath, ExpectedValue: re.String(),
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return Result{Passed: passed, FieldPath: fieldPath, ExpectedValue: re.String(), ActualValue: value, Message: msg}
}

// FormatValidators returns the pattern checks.
func FormatValidators() []Validator {
	return []Validator{
		&rule{
			key: "format.party.gstin", name: "Format: Party GSTIN", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				return []Result{regexCheck("party.gstin", doc.Party.GSTIN, "Format: Party GSTIN", gstinPattern)}
			},
		},
		&rule{
			key: "format.place_of_supply", name: "Format: Place of Supply", severity: SeverityWarning,
			check: func(doc *domain.Document) []Result {
				return []Result{regexCheck("place_of_supply", doc.PlaceOfSupply, "Format: Place of Supply", stateCodePattern)}
			},
		},
		&rule{
			key: "format.item.hsn", name: "Format: Item HSN Code", severity: SeverityWarning,
			check: func(doc *domain.Document) []Result {
				results := make([]Result, 0, len(doc.Items))
				for i := range doc.Items {
					results = append(results, regexCheck(fmt.Sprintf("items[%d].hsn_code", i), doc.Items[i].HSNCode, "Format: Item HSN Code", hsnPattern))
				}
				return results
			},
		},
	}
}
