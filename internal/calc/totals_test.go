package calc_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/calc"
	"salesdocs/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: expected %s, got %s", field, want, got.String())
}

func assertTotals(t *testing.T, want map[string]string, got domain.DocumentTotals) {
	t.Helper()
	assertDecimal(t, want["subtotal"], got.Subtotal, "subtotal")
	assertDecimal(t, want["taxable_total"], got.TaxableTotal, "taxable_total")
	assertDecimal(t, want["cgst_total"], got.CGSTTotal, "cgst_total")
	assertDecimal(t, want["sgst_total"], got.SGSTTotal, "sgst_total")
	assertDecimal(t, want["igst_total"], got.IGSTTotal, "igst_total")
	assertDecimal(t, want["total_amount"], got.TotalAmount, "total_amount")
}

func TestComputeTotals_IntrastateItem(t *testing.T) {
	items := []domain.LineItem{{
		Description: "Steel rack", Quantity: d("2"), Rate: d("1000"),
		Discount: d("0"), DiscountType: domain.DiscountAmount,
		CGSTRate: d("9"), SGSTRate: d("9"),
	}}

	totals, err := calc.ComputeTotals(items, nil, nil)

	require.NoError(t, err)
	assertTotals(t, map[string]string{
		"subtotal": "2000", "taxable_total": "2000", "cgst_total": "180",
		"sgst_total": "180", "igst_total": "0", "total_amount": "2360",
	}, totals)
}

func TestComputeTotals_InterstatePercentageDiscount(t *testing.T) {
	items := []domain.LineItem{{
		Description: "Control panel", Quantity: d("1"), Rate: d("500"),
		Discount: d("50"), DiscountType: domain.DiscountPercentage,
		IGSTRate: d("18"),
	}}

	totals, err := calc.ComputeTotals(items, nil, nil)

	require.NoError(t, err)
	assertTotals(t, map[string]string{
		"subtotal": "500", "taxable_total": "250", "cgst_total": "0",
		"sgst_total": "0", "igst_total": "45", "total_amount": "295",
	}, totals)

	line, err := calc.ComputeLine(0, &items[0])
	require.NoError(t, err)
	assertDecimal(t, "500", line.Base, "base")
	assertDecimal(t, "250", line.Discount, "discount")
	assertDecimal(t, "250", line.TaxableAmount, "taxable_amount")
}

func TestComputeTotals_Empty(t *testing.T) {
	totals, err := calc.ComputeTotals(nil, nil, nil)

	require.NoError(t, err)
	for _, v := range []decimal.Decimal{
		totals.Subtotal, totals.TaxableTotal, totals.CGSTTotal,
		totals.SGSTTotal, totals.IGSTTotal, totals.TotalAmount,
	} {
		assert.True(t, v.IsZero())
	}
}

func TestComputeTotals_DiscountFloorsAtZero(t *testing.T) {
	items := []domain.LineItem{{
		Quantity: d("1"), Rate: d("100"),
		Discount: d("150"), DiscountType: domain.DiscountAmount,
		CGSTRate: d("9"), SGSTRate: d("9"),
	}}

	line, err := calc.ComputeLine(0, &items[0])
	require.NoError(t, err)
	assert.True(t, line.TaxableAmount.IsZero())
	assert.False(t, line.TaxableAmount.IsNegative())

	totals, err := calc.ComputeTotals(items, nil, nil)
	require.NoError(t, err)
	assertDecimal(t, "100", totals.Subtotal, "subtotal")
	assertDecimal(t, "0", totals.TaxableTotal, "taxable_total")
	assertDecimal(t, "0", totals.TotalAmount, "total_amount")
}

func TestComputeTotals_ChargesAndDiscounts(t *testing.T) {
	items := []domain.LineItem{{
		Quantity: d("3"), Rate: d("100"), DiscountType: domain.DiscountAmount,
		CGSTRate: d("2.5"), SGSTRate: d("2.5"),
	}}
	extra := []domain.Charge{{Label: "Freight", Amount: d("50")}, {Label: "Packing", Amount: d("20")}}
	less := []domain.Charge{{Label: "Loyalty", Amount: d("15")}}

	totals, err := calc.ComputeTotals(items, extra, less)

	require.NoError(t, err)
	// 300 + 7.5 + 7.5 + 70 - 15
	assertDecimal(t, "370", totals.TotalAmount, "total_amount")
	assertDecimal(t, "300", totals.TaxableTotal, "taxable_total")
}

func TestComputeTotals_RoundsToTwoPlaces(t *testing.T) {
	items := []domain.LineItem{{
		Quantity: d("3"), Rate: d("33.333"), DiscountType: domain.DiscountPercentage,
		IGSTRate: d("18"),
	}}

	totals, err := calc.ComputeTotals(items, nil, nil)

	require.NoError(t, err)
	assertDecimal(t, "100", totals.TaxableTotal, "taxable_total")
	assertDecimal(t, "18", totals.IGSTTotal, "igst_total")
	assertDecimal(t, "118", totals.TotalAmount, "total_amount")
	assert.LessOrEqual(t, -totals.TotalAmount.Exponent(), int32(2))
}

func TestComputeTotals_DeterministicAndIdempotent(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: d("7"), Rate: d("149.99"), Discount: d("12.5"), DiscountType: domain.DiscountPercentage, CGSTRate: d("6"), SGSTRate: d("6")},
		{Quantity: d("1.5"), Rate: d("1200"), Discount: d("100"), DiscountType: domain.DiscountAmount, IGSTRate: d("28")},
	}
	snapshot := append([]domain.LineItem(nil), items...)

	first, err := calc.ComputeTotals(items, nil, nil)
	require.NoError(t, err)
	second, err := calc.ComputeTotals(items, nil, nil)
	require.NoError(t, err)

	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.IGSTTotal.Equal(second.IGSTTotal))
	assert.Equal(t, snapshot, items, "inputs must not be mutated")
}

func TestComputeTotals_NegativeQuantityRejected(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: d("1"), Rate: d("10")},
		{Quantity: d("-2"), Rate: d("10")},
	}

	_, err := calc.ComputeTotals(items, nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
	var lineErr *domain.LineItemError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, "items[1].quantity", lineErr.FieldPath())
}

func TestComputeTotals_NegativeRateRejected(t *testing.T) {
	_, err := calc.ComputeTotals([]domain.LineItem{{Quantity: d("1"), Rate: d("-0.01")}}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestComputeTotals_NegativeChargeRejected(t *testing.T) {
	_, err := calc.ComputeTotals(nil, []domain.Charge{{Label: "Freight", Amount: d("-5")}}, nil)

	require.Error(t, err)
	var lineErr *domain.LineItemError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, "extra_charges[0].amount", lineErr.FieldPath())
}

func TestComputeTotals_UnknownDiscountType(t *testing.T) {
	_, err := calc.ComputeTotals([]domain.LineItem{{Quantity: d("1"), Rate: d("1"), DiscountType: "bogus"}}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestApply_SetsDocumentTotals(t *testing.T) {
	doc := &domain.Document{
		Items: domain.LineItems{{Quantity: d("2"), Rate: d("1000"), CGSTRate: d("9"), SGSTRate: d("9"), DiscountType: domain.DiscountAmount}},
	}
	doc.TotalAmount = d("1")

	require.NoError(t, calc.Apply(doc))
	assertDecimal(t, "2360", doc.TotalAmount, "total_amount")
}

func TestComputeLines_RoundsBreakdown(t *testing.T) {
	lines, err := calc.ComputeLines([]domain.LineItem{{Quantity: d("1"), Rate: d("10.005"), IGSTRate: d("18")}})

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assertDecimal(t, "10.01", lines[0].Base, "base")
	assertDecimal(t, "1.8", lines[0].IGST, "igst")
}
