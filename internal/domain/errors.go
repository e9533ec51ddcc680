package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")

	ErrValidation               = errors.New("validation failed")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrDuplicateDocumentNumber  = errors.New("document number already exists")
	ErrDocumentNumberImmutable  = errors.New("document number cannot be changed")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrSourceNotFound           = errors.New("source document not found")
	ErrIncompleteSourceDocument = errors.New("source document is missing required fields")
	ErrUnsupportedConversion    = errors.New("conversion between these document types is not supported")
	ErrConversionNotAllowed     = errors.New("quotation must be accepted before conversion")
	ErrInvalidLineItem          = errors.New("invalid line item")
	ErrStaleDocument            = errors.New("document was modified by another request")
	ErrRendererUnavailable      = errors.New("document renderer is not available")
	ErrEmailUnavailable         = errors.New("document has no recipient email")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrLeadConverted    = errors.New("lead has already been converted")
	ErrJobNotFound      = errors.New("manufacturing job not found")
)

// FieldError describes one invalid field, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field failure of a rejected request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// LineItemError pins ErrInvalidLineItem to the offending entry and field.
// Collection is "items", "extra_charges" or "discounts".
type LineItemError struct {
	Collection string
	Index      int
	Field      string
	Reason     string
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidLineItem.Error(), e.FieldPath(), e.Reason)
}

func (e *LineItemError) Unwrap() error { return ErrInvalidLineItem }

// FieldPath returns the JSON path of the offending field.
func (e *LineItemError) FieldPath() string {
	collection := e.Collection
	if collection == "" {
		collection = "items"
	}
	return fmt.Sprintf("%s[%d].%s", collection, e.Index, e.Field)
}
