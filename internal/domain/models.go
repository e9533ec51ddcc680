package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is the tenant that exclusively owns its documents, customers and leads.
type Company struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Slug           string    `db:"slug" json:"slug"`
	GSTIN          string    `db:"gstin" json:"gstin"`
	StateCode      string    `db:"state_code" json:"state_code"`
	Address        Address   `db:"address" json:"address"`
	Bank           BankInfo  `db:"bank" json:"bank"`
	DocumentPrefix string    `db:"document_prefix" json:"document_prefix"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Address is a postal address stored as JSONB.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	StateCode  string `json:"state_code,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// BankInfo holds the bank details printed on invoices.
type BankInfo struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch,omitempty"`
}

// Customer is a party documents can be issued to.
type Customer struct {
	ID              uuid.UUID `db:"id" json:"id"`
	TenantID        uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name            string    `db:"name" json:"name"`
	CompanyName     string    `db:"company_name" json:"company_name"`
	Email           string    `db:"email" json:"email"`
	Phone           string    `db:"phone" json:"phone"`
	GSTIN           string    `db:"gstin" json:"gstin"`
	BillingAddress  Address   `db:"billing_address" json:"billing_address"`
	ShippingAddress Address   `db:"shipping_address" json:"shipping_address"`
	CreatedBy       uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Snapshot returns the denormalized party fields copied onto documents.
func (c *Customer) Snapshot() PartySnapshot {
	return PartySnapshot{
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		GSTIN:       c.GSTIN,
	}
}

// Lead is a pre-sale contact that may become a Customer or generate a Quotation.
type Lead struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Name        string     `db:"name" json:"name"`
	CompanyName string     `db:"company_name" json:"company_name"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone"`
	GSTIN       string     `db:"gstin" json:"gstin"`
	Address     Address    `db:"address" json:"address"`
	Source      string     `db:"source" json:"source"`
	Status      LeadStatus `db:"status" json:"status"`
	Notes       string     `db:"notes" json:"notes"`
	CustomerID  *uuid.UUID `db:"customer_id" json:"customer_id"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Snapshot returns the denormalized party fields copied onto documents.
func (l *Lead) Snapshot() PartySnapshot {
	return PartySnapshot{
		Name:        l.Name,
		CompanyName: l.CompanyName,
		Email:       l.Email,
		Phone:       l.Phone,
		GSTIN:       l.GSTIN,
	}
}

// PartySnapshot is the copy of party details a document keeps for print fidelity.
type PartySnapshot struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	GSTIN       string `json:"gstin"`
}

// LineItem is a single priced row of a document.
type LineItem struct {
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Rate         decimal.Decimal `json:"rate"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discount_type"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
}

// LineItems is stored as a JSONB array.
type LineItems []LineItem

// Clone returns a deep copy; decimals are immutable values so a slice copy suffices.
func (items LineItems) Clone() LineItems {
	if items == nil {
		return LineItems{}
	}
	out := make(LineItems, len(items))
	copy(out, items)
	return out
}

// Charge is a document-level addition (extra charge) or subtraction (discount).
type Charge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Charges is stored as a JSONB array.
type Charges []Charge

// Clone returns an independent copy of the charges.
func (c Charges) Clone() Charges {
	if c == nil {
		return Charges{}
	}
	out := make(Charges, len(c))
	copy(out, c)
	return out
}

// DocumentTotals is derived from items and charges and never edited directly.
type DocumentTotals struct {
	Subtotal     decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxableTotal decimal.Decimal `db:"taxable_total" json:"taxable_total"`
	CGSTTotal    decimal.Decimal `db:"cgst_total" json:"cgst_total"`
	SGSTTotal    decimal.Decimal `db:"sgst_total" json:"sgst_total"`
	IGSTTotal    decimal.Decimal `db:"igst_total" json:"igst_total"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// Document is the shared shape of quotations, proformas, orders, invoices, purchase
// orders and delivery challans.
type Document struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	TenantID           uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	DocumentType       DocumentType  `db:"document_type" json:"document_type"`
	Number             string        `db:"number" json:"number"`
	Date               time.Time     `db:"date" json:"date"`
	DueDate            *time.Time    `db:"due_date" json:"due_date"`
	CustomerID         *uuid.UUID    `db:"customer_id" json:"customer_id"`
	LeadID             *uuid.UUID    `db:"lead_id" json:"lead_id"`
	Party              PartySnapshot `db:"party" json:"party"`
	BillingAddress     Address       `db:"billing_address" json:"billing_address"`
	ShippingAddress    Address       `db:"shipping_address" json:"shipping_address"`
	SameAsBilling      bool          `db:"same_as_billing" json:"same_as_billing"`
	PlaceOfSupply      string        `db:"place_of_supply" json:"place_of_supply"`
	Items              LineItems     `db:"items" json:"items"`
	ExtraCharges       Charges       `db:"extra_charges" json:"extra_charges"`
	Discounts          Charges       `db:"discounts" json:"discounts"`
	DocumentTotals     `json:"totals"`
	Status             DocumentStatus `db:"status" json:"status"`
	SourceDocumentID   *uuid.UUID     `db:"source_document_id" json:"source_document_id"`
	SourceDocumentType *DocumentType  `db:"source_document_type" json:"source_document_type"`
	SourceNumber       *string        `db:"source_number" json:"source_number"`
	Notes              string         `db:"notes" json:"notes"`
	Terms              string         `db:"terms" json:"terms"`
	CreatedBy          uuid.UUID      `db:"created_by" json:"created_by"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// HasParty reports whether the document references a customer or a lead.
func (d *Document) HasParty() bool {
	return d.CustomerID != nil || d.LeadID != nil
}

// DocumentFilter narrows List queries. Zero values are ignored.
type DocumentFilter struct {
	TenantID     uuid.UUID
	DocumentType DocumentType
	Status       DocumentStatus
	CustomerID   *uuid.UUID
	LeadID       *uuid.UUID
	Search       string
	From         *time.Time
	To           *time.Time
	// DueBefore keeps documents whose due date is before the given instant.
	DueBefore *time.Time
	Offset    int
	Limit     int
}

// ManufacturingJob tracks production of an order's items.
type ManufacturingJob struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	TenantID   uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Number     string     `db:"number" json:"number"`
	OrderID    *uuid.UUID `db:"order_id" json:"order_id"`
	CustomerID *uuid.UUID `db:"customer_id" json:"customer_id"`
	PartyName  string     `db:"party_name" json:"party_name"`
	Items      LineItems  `db:"items" json:"items"`
	Status     JobStatus  `db:"status" json:"status"`
	DueDate    *time.Time `db:"due_date" json:"due_date"`
	Notes      string     `db:"notes" json:"notes"`
	CreatedBy  uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// PrintConfig toggles the optional sections of a rendered document.
type PrintConfig struct {
	ShowHeader       bool `json:"show_header"`
	ShowLogo         bool `json:"show_logo"`
	ShowBankDetails  bool `json:"show_bank_details"`
	ShowGSTBreakdown bool `json:"show_gst_breakdown"`
	ShowItemCode     bool `json:"show_item_code"`
	ShowTerms        bool `json:"show_terms"`
	ShowSignature    bool `json:"show_signature"`
}

// DefaultPrintConfig is what a tenant gets before saving or after a reset.
func DefaultPrintConfig() PrintConfig {
	return PrintConfig{
		ShowHeader:       true,
		ShowLogo:         true,
		ShowBankDetails:  true,
		ShowGSTBreakdown: true,
		ShowItemCode:     false,
		ShowTerms:        true,
		ShowSignature:    true,
	}
}

// DocumentAuditEntry records a single document mutation.
type DocumentAuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	TenantID   uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	DocumentID uuid.UUID       `db:"document_id" json:"document_id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id"`
	Action     string          `db:"action" json:"action"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// StatusCount is one row of a per-status breakdown.
type StatusCount struct {
	DocumentType DocumentType   `db:"document_type" json:"document_type"`
	Status       DocumentStatus `db:"status" json:"status"`
	Count        int            `db:"count" json:"count"`
}

// Stats aggregates a tenant's documents for the dashboard.
type Stats struct {
	ByStatus           []StatusCount   `json:"by_status"`
	TotalQuotations    int             `json:"total_quotations"`
	TotalOrders        int             `json:"total_orders"`
	TotalInvoices      int             `json:"total_invoices"`
	InvoicedAmount     decimal.Decimal `json:"invoiced_amount"`
	ReceivedAmount     decimal.Decimal `json:"received_amount"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
	OverdueInvoices    int             `json:"overdue_invoices"`
	OpenManufacturing  int             `json:"open_manufacturing_jobs"`
	ConvertedQuotation int             `json:"converted_quotations"`
}
