// Package conversion derives a new document from an existing one, e.g. an invoice from an
// accepted quotation.
package conversion

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/calc"
	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
)

var allowedTargets = map[domain.DocumentType][]domain.DocumentType{
	domain.DocumentTypeQuotation: {
		domain.DocumentTypeProforma,
		domain.DocumentTypeInvoice,
		domain.DocumentTypeOrder,
		domain.DocumentTypeDeliveryChallan,
	},
	domain.DocumentTypeOrder: {
		domain.DocumentTypeInvoice,
	},
}

// DefaultDueDays is the due date offset applied to each target type. A type missing from
// the map gets no due date.
var DefaultDueDays = map[domain.DocumentType]int{
	domain.DocumentTypeQuotation:     30,
	domain.DocumentTypeProforma:      15,
	domain.DocumentTypeOrder:         14,
	domain.DocumentTypeInvoice:       30,
	domain.DocumentTypePurchaseOrder: 30,
}

// JobDueDays is the due date offset of a manufacturing job created from an order.
const JobDueDays = 7

// AllowedTargets lists the types a document of sourceType can be converted into.
func AllowedTargets(sourceType domain.DocumentType) []domain.DocumentType {
	return allowedTargets[sourceType]
}

// IsSupported reports whether source -> target is a known conversion.
func IsSupported(source, target domain.DocumentType) bool {
	for _, t := range allowedTargets[source] {
		if t == target {
			return true
		}
	}
	return false
}

// Options controls the regenerated fields of a derived document.
type Options struct {
	// Number is the already allocated number of the new document.
	Number string
	// Now is the creation instant; the date and due date are derived from it.
	Now time.Time
	// DueDays overrides DefaultDueDays when not nil.
	DueDays map[domain.DocumentType]int
	// Items replaces the source items when the caller edited them during conversion.
	Items domain.LineItems
	// CreatedBy is the user performing the conversion.
	CreatedBy uuid.UUID
}

// Derive builds target from source. The result has a fresh id, number, date, due date,
// status and recomputed totals, and points back at the source. Source is not modified.
func Derive(source *domain.Document, target domain.DocumentType, opts Options) (*domain.Document, error) {
	if !IsSupported(source.DocumentType, target) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, source.DocumentType, target)
	}
	if err := CheckComplete(source); err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	items := source.Items
	if opts.Items != nil {
		items = opts.Items
	}

	shipping := source.ShippingAddress
	if source.SameAsBilling {
		shipping = source.BillingAddress
	}

	sourceID := source.ID
	sourceType := source.DocumentType
	sourceNumber := source.Number

	doc := &domain.Document{
		ID:                 uuid.New(),
		TenantID:           source.TenantID,
		DocumentType:       target,
		Number:             opts.Number,
		Date:               now,
		DueDate:            dueDate(target, now, opts.DueDays),
		CustomerID:         cloneID(source.CustomerID),
		LeadID:             cloneID(source.LeadID),
		Party:              source.Party,
		BillingAddress:     source.BillingAddress,
		ShippingAddress:    shipping,
		SameAsBilling:      source.SameAsBilling,
		PlaceOfSupply:      source.PlaceOfSupply,
		Items:              items.Clone(),
		ExtraCharges:       source.ExtraCharges.Clone(),
		Discounts:          source.Discounts.Clone(),
		Status:             lifecycle.InitialStatus(target),
		SourceDocumentID:   &sourceID,
		SourceDocumentType: &sourceType,
		SourceNumber:       &sourceNumber,
		Notes:              source.Notes,
		Terms:              source.Terms,
		CreatedBy:          opts.CreatedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := calc.Apply(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// CheckComplete rejects sources that lack a party or items.
func CheckComplete(source *domain.Document) error {
	if !source.HasParty() {
		return fmt.Errorf("%w: %s %s has no customer or lead", domain.ErrIncompleteSourceDocument, source.DocumentType, source.Number)
	}
	if len(source.Items) == 0 {
		return fmt.Errorf("%w: %s %s has no items", domain.ErrIncompleteSourceDocument, source.DocumentType, source.Number)
	}
	return nil
}

// DueDate returns now plus the target's offset, or nil when the type has none.
func DueDate(target domain.DocumentType, now time.Time, overrides map[domain.DocumentType]int) *time.Time {
	return dueDate(target, now, overrides)
}

func dueDate(target domain.DocumentType, now time.Time, overrides map[domain.DocumentType]int) *time.Time {
	days, ok := overrides[target]
	if !ok {
		days, ok = DefaultDueDays[target]
	}
	if !ok || days <= 0 {
		return nil
	}
	due := now.AddDate(0, 0, days)
	return &due
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
