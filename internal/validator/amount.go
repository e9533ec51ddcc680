package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"salesdocs/internal/domain"
)

var hundred = decimal.NewFromInt(100)

func amountResult(passed bool, fieldPath, expected string, actual decimal.Decimal, ruleName, failure string) Result {
	msg := fmt.Sprintf("%s: %s is valid", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s %s", ruleName, fieldPath, failure)
	}
	return Result{Passed: passed, FieldPath: fieldPath, ExpectedValue: expected, ActualValue: actual.String(), Message: msg}
}

// AmountValidators returns the numeric checks on items and charges.
func AmountValidators() []Validator {
	return []Validator{
		&rule{
			key: "amount.item.quantity", name: "Amount: Item Quantity", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				results := make([]Result, 0, len(doc.Items))
				for i := range doc.Items {
					q := doc.Items[i].Quantity
					results = append(results, amountResult(q.IsPositive(), fmt.Sprintf("items[%d].quantity", i), "> 0", q, "Amount: Item Quantity", "must be greater than zero"))
				}
				return results
			},
		},
		&rule{
			key: "amount.item.non_negative", name: "Amount: Non-negative Values", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				var results []Result
				for i := range doc.Items {
					item := &doc.Items[i]
					for _, f := range []struct {
						name  string
						value decimal.Decimal
					}{
						{"rate", item.Rate},
						{"discount", item.Discount},
						{"cgst_rate", item.CGSTRate},
						{"sgst_rate", item.SGSTRate},
						{"igst_rate", item.IGSTRate},
					} {
						results = append(results, amountResult(!f.value.IsNegative(), fmt.Sprintf("items[%d].%s", i, f.name), ">= 0", f.value, "Amount: Non-negative Values", "must not be negative"))
					}
				}
				for i := range doc.ExtraCharges {
					a := doc.ExtraCharges[i].Amount
					results = append(results, amountResult(!a.IsNegative(), fmt.Sprintf("extra_charges[%d].amount", i), ">= 0", a, "Amount: Non-negative Values", "must not be negative"))
				}
				for i := range doc.Discounts {
					a := doc.Discounts[i].Amount
					results = append(results, amountResult(!a.IsNegative(), fmt.Sprintf("discounts[%d].amount", i), ">= 0", a, "Amount: Non-negative Values", "must not be negative"))
				}
				return results
			},
		},
		&rule{
			key: "amount.item.discount_type", name: "Amount: Discount Type", severity: SeverityError,
			check: func(doc *domain.Document) []Result {
				results := make([]Result, 0, len(doc.Items))
				for i := range doc.Items {
					dt := doc.Items[i].DiscountType
					passed := dt == "" || dt == domain.DiscountAmount || dt == domain.DiscountPercentage
					r := Result{Passed: passed, FieldPath: fmt.Sprintf("items[%d].discount_type", i), ExpectedValue: "percentage or amount", ActualValue: string(dt)}
					r.Message = "Amount: Discount Type: " + r.FieldPath + " is valid"
					if !passed {
						r.Message = "Amount: Discount Type: " + r.FieldPath + " must be 'percentage' or 'amount'"
					}
					results = append(results, r)
				}
				return results
			},
		},
		&rule{
			key: "amount.item.discount_percentage", name: "Amount: Percentage Discount", severity: SeverityWarning,
			check: func(doc *domain.Document) []Result {
				var results []Result
				for i := range doc.Items {
					item := &doc.Items[i]
					if item.DiscountType == domain.DiscountAmount {
						continue
					}
					results = append(results, amountResult(item.Discount.LessThanOrEqual(hundred), fmt.Sprintf("items[%d].discount", i), "<= 100", item.Discount, "Amount: Percentage Discount", "exceeds 100 percent"))
				}
				return results
			},
		},
		&rule{
			key: "amount.item.gst_split", name: "Amount: GST Split", severity: SeverityWarning,
			check: func(doc *domain.Document) []Result {
				results := make([]Result, 0, len(doc.Items))
				for i := range doc.Items {
					item := &doc.Items[i]
					intra := !item.CGSTRate.IsZero() || !item.SGSTRate.IsZero()
					inter := !item.IGSTRate.IsZero()
					path := fmt.Sprintf("items[%d]", i)
					var r Result
					switch {
					case intra && inter:
						r = Result{Passed: false, FieldPath: path + ".igst_rate", Message: "Amount: GST Split: " + path + " has both CGST/SGST and IGST"}
					case intra && !item.CGSTRate.Equal(item.SGSTRate):
						r = Result{Passed: false, FieldPath: path + ".sgst_rate", Message: "Amount: GST Split: " + path + " CGST and SGST rates differ"}
					default:
						r = Result{Passed: true, FieldPath: path, Message: "Amount: GST Split: " + path + " is consistent"}
					}
					r.ExpectedValue = "cgst+sgst or igst"
					results = append(results, r)
				}
				return results
			},
		},
	}
}
