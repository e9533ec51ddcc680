package validator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/domain"
	"salesdocs/internal/validator"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validDoc() *domain.Document {
	customerID := uuid.New()
	return &domain.Document{
		DocumentType:  domain.DocumentTypeQuotation,
		Date:          time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		Party:         domain.PartySnapshot{Name: "Asha Traders", GSTIN: "27AAPFU0939F1ZV"},
		PlaceOfSupply: "27",
		Items: domain.LineItems{{
			Description: "Steel rack", HSNCode: "9403", Quantity: d("2"), Rate: d("1000"),
			DiscountType: domain.DiscountAmount, CGSTRate: d("9"), SGSTRate: d("9"),
		}},
	}
}

func findResult(results []validator.Result, path string) *validator.Result {
	for i := range results {
		if results[i].FieldPath == path {
			return &results[i]
		}
	}
	return nil
}

func TestEngine_ValidDocument(t *testing.T) {
	engine := validator.NewEngine(validator.DefaultRegistry())

	report := engine.Run(context.Background(), validDoc())

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Greater(t, report.Checked, 5)
	assert.NoError(t, engine.Check(context.Background(), validDoc()))
}

func TestEngine_MissingPartyAndItems(t *testing.T) {
	doc := validDoc()
	doc.CustomerID = nil
	doc.Items = nil
	engine := validator.NewEngine(validator.DefaultRegistry())

	err := engine.Check(context.Background(), doc)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["customer_id"])
	assert.True(t, fields["items"])
}

func TestEngine_ZeroQuantityIsFieldAddressed(t *testing.T) {
	doc := validDoc()
	doc.Items = append(doc.Items, domain.LineItem{Description: "Bolt", Quantity: d("0"), Rate: d("5"), IGSTRate: d("18")})

	report := validator.NewEngine(validator.DefaultRegistry()).Run(context.Background(), doc)

	assert.False(t, report.Valid)
	r := findResult(report.Errors, "items[1].quantity")
	require.NotNil(t, r)
	assert.Equal(t, "amount.item.quantity", r.RuleKey)
	assert.Equal(t, validator.SeverityError, r.Severity)
}

func TestEngine_InvalidGSTIN(t *testing.T) {
	doc := validDoc()
	doc.Party.GSTIN = "27AAPFU0939F1Z"

	report := validator.NewEngine(validator.DefaultRegistry()).Run(context.Background(), doc)

	require.NotNil(t, findResult(report.Errors, "party.gstin"))
}

func TestEngine_MixedGSTIsWarning(t *testing.T) {
	doc := validDoc()
	doc.Items[0].IGSTRate = d("18")

	report := validator.NewEngine(validator.DefaultRegistry()).Run(context.Background(), doc)

	assert.True(t, report.Valid)
	require.NotNil(t, findResult(report.Warnings, "items[0].igst_rate"))
}

func TestEngine_NegativeCharge(t *testing.T) {
	doc := validDoc()
	doc.Discounts = domain.Charges{{Label: "Promo", Amount: d("-10")}}

	report := validator.NewEngine(validator.DefaultRegistry()).Run(context.Background(), doc)

	require.NotNil(t, findResult(report.Errors, "discounts[0].amount"))
}

func TestRegistry_AllIsSorted(t *testing.T) {
	all := validator.DefaultRegistry().All()

	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].RuleKey(), all[i].RuleKey())
	}
	assert.NotNil(t, validator.DefaultRegistry().Get("required.party"))
	assert.Nil(t, validator.DefaultRegistry().Get("nope"))
}

func TestValidGSTIN(t *testing.T) {
	assert.True(t, validator.ValidGSTIN("27AAPFU0939F1ZV"))
	assert.False(t, validator.ValidGSTIN("27aapfu0939f1zv"))
}
