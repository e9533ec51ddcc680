package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/calc"
	"salesdocs/internal/conversion"
	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
	"salesdocs/internal/numbering"
	"salesdocs/internal/port"
	"salesdocs/internal/validator"
)

const defaultNumberRetries = 3

// DocumentFields is the client-editable part of a sales document. Totals and status are
// never accepted from clients.
type DocumentFields struct {
	Number          string               `json:"number"`
	Date            *time.Time           `json:"date"`
	DueDate         *time.Time           `json:"due_date"`
	CustomerID      *uuid.UUID           `json:"customer_id"`
	LeadID          *uuid.UUID           `json:"lead_id"`
	Party           domain.PartySnapshot `json:"party"`
	BillingAddress  domain.Address       `json:"billing_address"`
	ShippingAddress domain.Address       `json:"shipping_address"`
	SameAsBilling   bool                 `json:"same_as_billing"`
	PlaceOfSupply   string               `json:"place_of_supply"`
	Items           domain.LineItems     `json:"items"`
	ExtraCharges    domain.Charges       `json:"extra_charges"`
	Discounts       domain.Charges       `json:"discounts"`
	Notes           string               `json:"notes"`
	Terms           string               `json:"terms"`
}

// CreateDocumentInput is the DTO for creating a document. An empty Fields.Number is
// generated from the tenant's prefix.
type CreateDocumentInput struct {
	TenantID     uuid.UUID
	DocumentType domain.DocumentType
	CreatedBy    uuid.UUID
	Fields       DocumentFields
}

// UpdateDocumentInput is the DTO for replacing a document. ExpectedUpdatedAt enables the
// optimistic concurrency check.
type UpdateDocumentInput struct {
	TenantID          uuid.UUID
	DocumentType      domain.DocumentType
	DocumentID        uuid.UUID
	UserID            uuid.UUID
	Fields            DocumentFields
	ExpectedUpdatedAt *time.Time
}

// UpdateStatusInput is the DTO for a status transition.
type UpdateStatusInput struct {
	TenantID     uuid.UUID
	DocumentType domain.DocumentType
	DocumentID   uuid.UUID
	UserID       uuid.UUID
	Status       domain.DocumentStatus
}

// ConvertDocumentInput is the DTO for deriving a document from another.
// Items, when set, replaces the source items on the new document.
type ConvertDocumentInput struct {
	TenantID   uuid.UUID
	SourceType domain.DocumentType
	SourceID   uuid.UUID
	TargetType domain.DocumentType
	UserID     uuid.UUID
	Items      domain.LineItems
}

// DocumentService defines the sales document contract shared by every document type.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	// Get resolves ref as a document id, falling back to the document number.
	Get(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, ref string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, int, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error)
	UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*domain.Document, error)
	Delete(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID, userID uuid.UUID) error
	Convert(ctx context.Context, input *ConvertDocumentInput) (*domain.Document, error)
	Validate(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID) (*validator.Report, error)
	ListDerived(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID) ([]domain.Document, error)
	ListAudit(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID, action domain.AuditAction, offset, limit int) ([]domain.DocumentAuditEntry, int, error)
	Render(ctx context.Context, input *RenderDocumentInput) (*RenderedDocument, error)
	Send(ctx context.Context, input *SendDocumentInput) (*domain.Document, error)
}

// DocumentServiceDeps wires the collaborators of the document service. Renderer, Storage,
// Email and PrintConfigs may be nil; the operations needing them then fail or degrade.
type DocumentServiceDeps struct {
	Documents    port.DocumentRepository
	Customers    port.CustomerRepository
	Leads        port.LeadRepository
	Companies    port.CompanyRepository
	Audit        port.DocumentAuditRepository
	Validator    *validator.Engine
	Renderer     port.DocumentRenderer
	PrintConfigs port.PrintConfigStore
	Storage      port.ObjectStorage
	Email        port.EmailSender
}

// DocumentSettings holds document policy taken from configuration.
type DocumentSettings struct {
	Location                 *time.Location
	MaxNumberRetries         int
	RequireAcceptedQuotation bool
	DueDays                  map[domain.DocumentType]int
	Bucket                   string
	PresignExpiry            int64
	// Now overrides the clock in tests.
	Now func() time.Time
}

type documentService struct {
	docRepo      port.DocumentRepository
	customerRepo port.CustomerRepository
	leadRepo     port.LeadRepository
	companyRepo  port.CompanyRepository
	auditRepo    port.DocumentAuditRepository
	validator    *validator.Engine
	renderer     port.DocumentRenderer
	printConfigs port.PrintConfigStore
	storage      port.ObjectStorage
	email        port.EmailSender
	numbers      *numberAllocator
	settings     DocumentSettings
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(deps DocumentServiceDeps, settings DocumentSettings) DocumentService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.MaxNumberRetries <= 0 {
		settings.MaxNumberRetries = defaultNumberRetries
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if deps.Validator == nil {
		deps.Validator = validator.NewEngine(validator.DefaultRegistry())
	}
	return &documentService{
		docRepo:      deps.Documents,
		customerRepo: deps.Customers,
		leadRepo:     deps.Leads,
		companyRepo:  deps.Companies,
		auditRepo:    deps.Audit,
		validator:    deps.Validator,
		renderer:     deps.Renderer,
		printConfigs: deps.PrintConfigs,
		storage:      deps.Storage,
		email:        deps.Email,
		numbers:      &numberAllocator{companies: deps.Companies, loc: settings.Location, now: settings.Now},
		settings:     settings,
	}
}

func (s *documentService) now() time.Time {
	return s.settings.Now().In(s.settings.Location)
}

// audit records a document mutation in the audit log. Failures are logged but never block business logic.
func (s *documentService) audit(ctx context.Context, tenantID, docID uuid.UUID, userID *uuid.UUID, action domain.AuditAction, changes map[string]interface{}) {
	if s.auditRepo == nil {
		return
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		payload = json.RawMessage("{}")
	}
	entry := &domain.DocumentAuditEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		DocumentID: docID,
		UserID:     userID,
		Action:     string(action),
		Changes:    payload,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("documentService.audit: failed to write audit entry for %s/%s: %v", action, docID, err)
	}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.NewValidationError("document_type", fmt.Sprintf("unknown document type %q", input.DocumentType))
	}

	now := s.now()
	doc := &domain.Document{
		ID:           uuid.New(),
		TenantID:     input.TenantID,
		DocumentType: input.DocumentType,
		Status:       lifecycle.InitialStatus(input.DocumentType),
		CreatedBy:    input.CreatedBy,
	}
	applyFields(doc, &input.Fields)
	if input.Fields.Date == nil {
		doc.Date = now
	}
	if input.Fields.DueDate == nil {
		doc.DueDate = conversion.DueDate(input.DocumentType, doc.Date, s.settings.DueDays)
	}

	if err := s.prepare(ctx, doc); err != nil {
		return nil, err
	}

	explicit := strings.TrimSpace(input.Fields.Number)
	if explicit != "" {
		doc.Number = explicit
		if err := s.ensureNumberFree(ctx, doc.TenantID, doc.DocumentType, explicit); err != nil {
			return nil, err
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return nil, err
		}
	} else if err := s.createNumbered(ctx, doc, nil); err != nil {
		return nil, err
	}

	log.Printf("documentService.Create: created %s %s (tenant %s)", doc.DocumentType, doc.Number, doc.TenantID)
	s.audit(ctx, doc.TenantID, doc.ID, &input.CreatedBy, domain.AuditDocumentCreated, map[string]interface{}{
		"document_type": doc.DocumentType, "number": doc.Number, "total_amount": doc.TotalAmount,
	})
	return s.present(doc), nil
}

// createNumbered allocates a number and inserts doc, retrying when a concurrent request
// took the same number. build, when set, rebuilds doc around the allocated number.
func (s *documentService) createNumbered(ctx context.Context, doc *domain.Document, build func(number string) (*domain.Document, error)) error {
	var lastErr error
	for attempt := 0; attempt < s.settings.MaxNumberRetries; attempt++ {
		number, err := s.nextNumber(ctx, doc.TenantID, doc.DocumentType)
		if err != nil {
			return err
		}
		target := doc
		if build != nil {
			if target, err = build(number); err != nil {
				return err
			}
		}
		target.Number = number

		err = s.docRepo.Create(ctx, target)
		if err == nil {
			if target != doc {
				*doc = *target
			}
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			return err
		}
		log.Printf("documentService.createNumbered: number %s taken, retrying (attempt %d)", number, attempt+1)
		lastErr = err
	}
	return lastErr
}

// nextNumber picks the first free sequence after the documents of docType created today.
func (s *documentService) nextNumber(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (string, error) {
	code, err := numbering.TypeCode(docType)
	if err != nil {
		return "", err
	}
	return s.numbers.allocate(ctx, tenantID, code, func(from, to time.Time) (int, error) {
		return s.docRepo.CountCreatedBetween(ctx, tenantID, docType, from, to)
	}, func(stem string) ([]string, error) {
		return s.docRepo.ListNumbersWithPrefix(ctx, tenantID, docType, stem)
	})
}

func (s *documentService) ensureNumberFree(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, number string) error {
	_, err := s.docRepo.GetByNumber(ctx, tenantID, docType, number)
	if err == nil {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDocumentNumber, number)
	}
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil
	}
	return fmt.Errorf("checking document number: %w", err)
}

// prepare resolves the party, recomputes the totals and validates the document. Totals come
// first so negative amounts surface as ErrInvalidLineItem rather than a rule failure.
func (s *documentService) prepare(ctx context.Context, doc *domain.Document) error {
	if err := s.resolveParty(ctx, doc); err != nil {
		return err
	}
	if err := calc.Apply(doc); err != nil {
		return err
	}
	return s.validator.Check(ctx, doc)
}

// resolveParty fills the party snapshot and addresses the client left empty from the
// referenced customer or lead.
func (s *documentService) resolveParty(ctx context.Context, doc *domain.Document) error {
	switch {
	case doc.CustomerID != nil && s.customerRepo != nil:
		customer, err := s.customerRepo.GetByID(ctx, doc.TenantID, *doc.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrCustomerNotFound) {
				return domain.NewValidationError("customer_id", "customer not found")
			}
			return fmt.Errorf("looking up customer: %w", err)
		}
		fillParty(&doc.Party, customer.Snapshot())
		if doc.BillingAddress.IsZero() {
			doc.BillingAddress = customer.BillingAddress
		}
		if doc.ShippingAddress.IsZero() {
			doc.ShippingAddress = customer.ShippingAddress
		}
	case doc.LeadID != nil && s.leadRepo != nil:
		lead, err := s.leadRepo.GetByID(ctx, doc.TenantID, *doc.LeadID)
		if err != nil {
			if errors.Is(err, domain.ErrLeadNotFound) {
				return domain.NewValidationError("lead_id", "lead not found")
			}
			return fmt.Errorf("looking up lead: %w", err)
		}
		fillParty(&doc.Party, lead.Snapshot())
		if doc.BillingAddress.IsZero() {
			doc.BillingAddress = lead.Address
		}
	}

	if doc.SameAsBilling {
		doc.ShippingAddress = doc.BillingAddress
	}
	if doc.PlaceOfSupply == "" {
		doc.PlaceOfSupply = doc.BillingAddress.StateCode
	}
	return nil
}

func fillParty(dst *domain.PartySnapshot, src domain.PartySnapshot) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.CompanyName == "" {
		dst.CompanyName = src.CompanyName
	}
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.GSTIN == "" {
		dst.GSTIN = src.GSTIN
	}
}

// applyFields copies the client-editable fields onto doc. Number, status and totals are
// left to the caller.
func applyFields(doc *domain.Document, f *DocumentFields) {
	if f.Date != nil {
		doc.Date = *f.Date
	}
	if f.DueDate != nil {
		due := *f.DueDate
		doc.DueDate = &due
	}
	doc.CustomerID = f.CustomerID
	doc.LeadID = f.LeadID
	doc.Party = f.Party
	doc.BillingAddress = f.BillingAddress
	doc.ShippingAddress = f.ShippingAddress
	doc.SameAsBilling = f.SameAsBilling
	doc.PlaceOfSupply = strings.TrimSpace(f.PlaceOfSupply)
	doc.Items = f.Items.Clone()
	doc.ExtraCharges = f.ExtraCharges.Clone()
	doc.Discounts = f.Discounts.Clone()
	doc.Notes = f.Notes
	doc.Terms = f.Terms
}

// present sets the read-time status of doc.
func (s *documentService) present(doc *domain.Document) *domain.Document {
	doc.Status = lifecycle.EffectiveStatus(doc, s.now())
	return doc
}

// load fetches a document and checks it has the expected type. A document of another type
// is reported as not found.
func (s *documentService) load(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if docType != "" && doc.DocumentType != docType {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) Get(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, ref string) (*domain.Document, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		doc, err := s.load(ctx, tenantID, docType, id)
		if err != nil {
			return nil, err
		}
		return s.present(doc), nil
	}
	doc, err := s.docRepo.GetByNumber(ctx, tenantID, docType, ref)
	if err != nil {
		return nil, err
	}
	return s.present(doc), nil
}

func (s *documentService) List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, int, error) {
	if filter.Status == domain.StatusOverdue {
		y, m, d := s.now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, s.settings.Location)
		filter.Status = domain.StatusPending
		filter.DocumentType = domain.DocumentTypeInvoice
		filter.DueBefore = &today
	}
	docs, total, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range docs {
		s.present(&docs[i])
	}
	return docs, total, nil
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.load(ctx, input.TenantID, input.DocumentType, input.DocumentID)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.Fields.Number)
	if number != "" && number != doc.Number {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNumberImmutable, doc.Number)
	}

	applyFields(doc, &input.Fields)
	if err := s.prepare(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.docRepo.Update(ctx, doc, input.ExpectedUpdatedAt); err != nil {
		return nil, err
	}

	s.audit(ctx, doc.TenantID, doc.ID, &input.UserID, domain.AuditDocumentUpdated, map[string]interface{}{
		"number": doc.Number, "total_amount": doc.TotalAmount, "items": len(doc.Items),
	})
	return s.present(doc), nil
}

func (s *documentService) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*domain.Document, error) {
	if input.Status == domain.StatusOverdue {
		return nil, fmt.Errorf("%w: overdue is derived from the due date", domain.ErrInvalidStatusTransition)
	}
	doc, err := s.load(ctx, input.TenantID, input.DocumentType, input.DocumentID)
	if err != nil {
		return nil, err
	}

	from := doc.Status
	if err := lifecycle.Transition(doc, input.Status); err != nil {
		return nil, err
	}
	if err := s.docRepo.UpdateStatus(ctx, doc.TenantID, doc.ID, doc.Status); err != nil {
		return nil, err
	}

	s.audit(ctx, doc.TenantID, doc.ID, &input.UserID, domain.AuditDocumentStatusChanged, map[string]interface{}{
		"from": from, "to": doc.Status,
	})
	return s.present(doc), nil
}

func (s *documentService) Delete(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID, userID uuid.UUID) error {
	doc, err := s.load(ctx, tenantID, docType, docID)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, tenantID, docID); err != nil {
		return err
	}

	if s.storage != nil && s.settings.Bucket != "" {
		key := archiveKey(doc, doc.DocumentType)
		if err := s.storage.Delete(ctx, s.settings.Bucket, key); err != nil {
			log.Printf("documentService.Delete: failed to remove archived pdf %s: %v", key, err)
		}
	}

	s.audit(ctx, tenantID, docID, &userID, domain.AuditDocumentDeleted, map[string]interface{}{
		"document_type": doc.DocumentType, "number": doc.Number,
	})
	return nil
}

func (s *documentService) Convert(ctx context.Context, input *ConvertDocumentInput) (*domain.Document, error) {
	if !conversion.IsSupported(input.SourceType, input.TargetType) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, input.SourceType, input.TargetType)
	}

	source, err := s.load(ctx, input.TenantID, input.SourceType, input.SourceID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) || errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, input.SourceID)
		}
		return nil, err
	}
	if s.settings.RequireAcceptedQuotation &&
		source.DocumentType == domain.DocumentTypeQuotation && source.Status != domain.StatusAccepted {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrConversionNotAllowed, source.Number, source.Status)
	}
	if err := conversion.CheckComplete(source); err != nil {
		return nil, err
	}

	opts := conversion.Options{
		Now:       s.now(),
		DueDays:   s.settings.DueDays,
		Items:     input.Items,
		CreatedBy: input.UserID,
	}
	derived := &domain.Document{TenantID: source.TenantID, DocumentType: input.TargetType}
	err = s.createNumbered(ctx, derived, func(number string) (*domain.Document, error) {
		opts.Number = number
		doc, err := conversion.Derive(source, input.TargetType, opts)
		if err != nil {
			return nil, err
		}
		if err := s.validator.Check(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("documentService.Convert: %s %s -> %s %s (tenant %s)",
		source.DocumentType, source.Number, derived.DocumentType, derived.Number, derived.TenantID)
	changes := map[string]interface{}{
		"source_id": source.ID, "source_type": source.DocumentType, "source_number": source.Number,
		"target_id": derived.ID, "target_type": derived.DocumentType, "target_number": derived.Number,
	}
	s.audit(ctx, derived.TenantID, derived.ID, &input.UserID, domain.AuditDocumentCreated, changes)
	s.audit(ctx, source.TenantID, source.ID, &input.UserID, domain.AuditDocumentConverted, changes)
	return s.present(derived), nil
}

func (s *documentService) Validate(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID) (*validator.Report, error) {
	doc, err := s.load(ctx, tenantID, docType, docID)
	if err != nil {
		return nil, err
	}
	report := s.validator.Run(ctx, doc)
	return &report, nil
}

func (s *documentService) ListDerived(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID) ([]domain.Document, error) {
	if _, err := s.load(ctx, tenantID, docType, docID); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListBySource(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		s.present(&docs[i])
	}
	return docs, nil
}

func (s *documentService) ListAudit(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, docID uuid.UUID, action domain.AuditAction, offset, limit int) ([]domain.DocumentAuditEntry, int, error) {
	if action != "" && !action.IsValid() {
		return nil, 0, domain.NewValidationError("action", fmt.Sprintf("unknown audit action %q", action))
	}
	if _, err := s.load(ctx, tenantID, docType, docID); err != nil {
		return nil, 0, err
	}
	if s.auditRepo == nil {
		return []domain.DocumentAuditEntry{}, 0, nil
	}
	return s.auditRepo.ListByDocument(ctx, tenantID, docID, action, offset, limit)
}
