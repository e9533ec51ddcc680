package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

// LeadInput is the DTO for creating or replacing a lead.
type LeadInput struct {
	Name        string            `json:"name" binding:"required"`
	CompanyName string            `json:"company_name"`
	Email       string            `json:"email" binding:"omitempty,email"`
	Phone       string            `json:"phone"`
	GSTIN       string            `json:"gstin"`
	Address     domain.Address    `json:"address"`
	Source      string            `json:"source"`
	Status      domain.LeadStatus `json:"status"`
	Notes       string            `json:"notes"`
}

// LeadQuotationInput is the DTO for generating a draft quotation from a lead.
type LeadQuotationInput struct {
	Items         domain.LineItems `json:"items"`
	PlaceOfSupply string           `json:"place_of_supply"`
	Notes         string           `json:"notes"`
	Terms         string           `json:"terms"`
}

// LeadService defines the lead management contract.
type LeadService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input LeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, tenantID uuid.UUID, status domain.LeadStatus, search string, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, tenantID, leadID uuid.UUID, input LeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, tenantID, leadID uuid.UUID) error
	// CreateQuotation generates a draft quotation addressed to the lead.
	CreateQuotation(ctx context.Context, tenantID, leadID, userID uuid.UUID, input LeadQuotationInput) (*domain.Document, error)
	// ConvertToCustomer creates a customer from the lead and marks the lead converted.
	ConvertToCustomer(ctx context.Context, tenantID, leadID, userID uuid.UUID) (*domain.Customer, error)
}

type leadService struct {
	repo      port.LeadRepository
	documents DocumentService
}

// NewLeadService creates a new LeadService implementation.
func NewLeadService(repo port.LeadRepository, documents DocumentService) LeadService {
	return &leadService{repo: repo, documents: documents}
}

func (s *leadService) Create(ctx context.Context, tenantID, userID uuid.UUID, input LeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{TenantID: tenantID, CreatedBy: userID, Status: domain.LeadStatusNew}
	if err := applyLeadInput(lead, &input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	return s.repo.GetByID(ctx, tenantID, leadID)
}

func (s *leadService) List(ctx context.Context, tenantID uuid.UUID, status domain.LeadStatus, search string, offset, limit int) ([]domain.Lead, int, error) {
	if status != "" && !domain.ValidLeadStatuses[status] {
		return nil, 0, domain.NewValidationError("status", fmt.Sprintf("unknown lead status %q", status))
	}
	return s.repo.List(ctx, tenantID, status, strings.TrimSpace(search), offset, limit)
}

func (s *leadService) Update(ctx context.Context, tenantID, leadID uuid.UUID, input LeadInput) (*domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	if input.Status == domain.LeadStatusConverted && lead.CustomerID == nil {
		return nil, domain.NewValidationError("status", "use convert-to-customer to convert a lead")
	}
	if err := applyLeadInput(lead, &input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, leadID)
}

func (s *leadService) CreateQuotation(ctx context.Context, tenantID, leadID, userID uuid.UUID, input LeadQuotationInput) (*domain.Document, error) {
	lead, err := s.repo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}

	fields := DocumentFields{
		LeadID:         &lead.ID,
		CustomerID:     lead.CustomerID,
		Party:          lead.Snapshot(),
		BillingAddress: lead.Address,
		SameAsBilling:  true,
		PlaceOfSupply:  input.PlaceOfSupply,
		Items:          input.Items,
		Notes:          input.Notes,
		Terms:          input.Terms,
	}
	doc, err := s.documents.Create(ctx, &CreateDocumentInput{
		TenantID:     tenantID,
		DocumentType: domain.DocumentTypeQuotation,
		CreatedBy:    userID,
		Fields:       fields,
	})
	if err != nil {
		return nil, err
	}

	if lead.Status == domain.LeadStatusNew {
		lead.Status = domain.LeadStatusContacted
		if err := s.repo.Update(ctx, lead); err != nil {
			log.Printf("leadService.CreateQuotation: failed to mark lead %s contacted: %v", lead.ID, err)
		}
	}
	return doc, nil
}

func (s *leadService) ConvertToCustomer(ctx context.Context, tenantID, leadID, userID uuid.UUID) (*domain.Customer, error) {
	lead, err := s.repo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadStatusConverted || lead.CustomerID != nil {
		return nil, domain.ErrLeadConverted
	}

	customer := &domain.Customer{
		TenantID:        tenantID,
		Name:            lead.Name,
		CompanyName:     lead.CompanyName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		GSTIN:           lead.GSTIN,
		BillingAddress:  lead.Address,
		ShippingAddress: lead.Address,
		CreatedBy:       userID,
	}
	if err := s.repo.ConvertToCustomer(ctx, lead, customer); err != nil {
		return nil, err
	}
	log.Printf("leadService.ConvertToCustomer: lead %s became customer %s (tenant %s)", lead.ID, customer.ID, tenantID)
	return customer, nil
}

func applyLeadInput(l *domain.Lead, in *LeadInput) error {
	l.Name = strings.TrimSpace(in.Name)
	l.CompanyName = strings.TrimSpace(in.CompanyName)
	l.Email = strings.TrimSpace(in.Email)
	l.Phone = strings.TrimSpace(in.Phone)
	l.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	l.Address = in.Address
	l.Source = in.Source
	l.Notes = in.Notes
	if in.Status != "" {
		if !domain.ValidLeadStatuses[in.Status] {
			return domain.NewValidationError("status", fmt.Sprintf("unknown lead status %q", in.Status))
		}
		l.Status = in.Status
	}
	return validateParty(l.Name, l.GSTIN)
}
