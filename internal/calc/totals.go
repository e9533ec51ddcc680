// Package calc derives document totals from line items and document-level charges.
package calc

import (
	"github.com/shopspring/decimal"

	"salesdocs/internal/domain"
)

// currencyPlaces is the number of minor-unit digits totals are rounded to.
const currencyPlaces = 2

var hundred = decimal.NewFromInt(100)

// LineResult is the per-item breakdown of a computed line.
type LineResult struct {
	Base          decimal.Decimal `json:"base"`
	Discount      decimal.Decimal `json:"discount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Total         decimal.Decimal `json:"total"`
}

// ComputeLine computes a single item without rounding. The index is only used to
// address the item in a returned *domain.LineItemError.
func ComputeLine(index int, item *domain.LineItem) (LineResult, error) {
	if err := checkItem(index, item); err != nil {
		return LineResult{}, err
	}

	base := item.Quantity.Mul(item.Rate)
	var discount decimal.Decimal
	switch item.DiscountType {
	case domain.DiscountAmount:
		discount = item.Discount
	case domain.DiscountPercentage, "":
		discount = base.Mul(item.Discount).Div(hundred)
	}

	taxable := base.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	cgst := taxable.Mul(item.CGSTRate).Div(hundred)
	sgst := taxable.Mul(item.SGSTRate).Div(hundred)
	igst := taxable.Mul(item.IGSTRate).Div(hundred)

	return LineResult{
		Base:          base,
		Discount:      discount,
		TaxableAmount: taxable,
		CGST:          cgst,
		SGST:          sgst,
		IGST:          igst,
		Total:         taxable.Add(cgst).Add(sgst).Add(igst),
	}, nil
}

// ComputeLines computes every item, rounding each breakdown to currency precision.
func ComputeLines(items []domain.LineItem) ([]LineResult, error) {
	out := make([]LineResult, 0, len(items))
	for i := range items {
		line, err := ComputeLine(i, &items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, LineResult{
			Base:          round(line.Base),
			Discount:      round(line.Discount),
			TaxableAmount: round(line.TaxableAmount),
			CGST:          round(line.CGST),
			SGST:          round(line.SGST),
			IGST:          round(line.IGST),
			Total:         round(line.Total),
		})
	}
	return out, nil
}

// ComputeTotals sums items, extra charges and discounts into DocumentTotals.
// Sums are kept exact and each reported figure is rounded to two decimals at the end.
// An empty input yields zero totals.
func ComputeTotals(items []domain.LineItem, extraCharges, discounts []domain.Charge) (domain.DocumentTotals, error) {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero

	for i := range items {
		line, err := ComputeLine(i, &items[i])
		if err != nil {
			return domain.DocumentTotals{}, err
		}
		subtotal = subtotal.Add(line.Base)
		taxable = taxable.Add(line.TaxableAmount)
		cgst = cgst.Add(line.CGST)
		sgst = sgst.Add(line.SGST)
		igst = igst.Add(line.IGST)
	}

	charges, err := sumCharges("extra_charges", extraCharges)
	if err != nil {
		return domain.DocumentTotals{}, err
	}
	less, err := sumCharges("discounts", discounts)
	if err != nil {
		return domain.DocumentTotals{}, err
	}

	total := taxable.Add(cgst).Add(sgst).Add(igst).Add(charges).Sub(less)

	return domain.DocumentTotals{
		Subtotal:     round(subtotal),
		TaxableTotal: round(taxable),
		CGSTTotal:    round(cgst),
		SGSTTotal:    round(sgst),
		IGSTTotal:    round(igst),
		TotalAmount:  round(total),
	}, nil
}

// Apply recomputes doc's totals in place from its items and charges.
func Apply(doc *domain.Document) error {
	totals, err := ComputeTotals(doc.Items, doc.ExtraCharges, doc.Discounts)
	if err != nil {
		return err
	}
	doc.DocumentTotals = totals
	return nil
}

func checkItem(index int, item *domain.LineItem) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"quantity", item.Quantity},
		{"rate", item.Rate},
		{"discount", item.Discount},
		{"cgst_rate", item.CGSTRate},
		{"sgst_rate", item.SGSTRate},
		{"igst_rate", item.IGSTRate},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return &domain.LineItemError{Index: index, Field: f.name, Reason: "must not be negative"}
		}
	}

	switch item.DiscountType {
	case domain.DiscountAmount, domain.DiscountPercentage, "":
	default:
		return &domain.LineItemError{Index: index, Field: "discount_type", Reason: "must be 'percentage' or 'amount'"}
	}
	return nil
}

func sumCharges(collection string, charges []domain.Charge) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range charges {
		if charges[i].Amount.IsNegative() {
			return decimal.Zero, &domain.LineItemError{
				Collection: collection, Index: i, Field: "amount", Reason: "must not be negative",
			}
		}
		sum = sum.Add(charges[i].Amount)
	}
	return sum, nil
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(currencyPlaces)
}
