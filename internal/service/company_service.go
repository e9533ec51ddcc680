package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/numbering"
	"salesdocs/internal/port"
	"salesdocs/internal/validator"
)

// CreateCompanyInput is the DTO for creating a tenant company.
type CreateCompanyInput struct {
	Name           string          `json:"name" binding:"required"`
	Slug           string          `json:"slug" binding:"required"`
	GSTIN          string          `json:"gstin"`
	StateCode      string          `json:"state_code"`
	Address        domain.Address  `json:"address"`
	Bank           domain.BankInfo `json:"bank"`
	DocumentPrefix string          `json:"document_prefix"`
}

// UpdateCompanyInput is the DTO for updating a tenant company.
type UpdateCompanyInput struct {
	Name           *string          `json:"name"`
	Slug           *string          `json:"slug"`
	GSTIN          *string          `json:"gstin"`
	StateCode      *string          `json:"state_code"`
	Address        *domain.Address  `json:"address"`
	Bank           *domain.BankInfo `json:"bank"`
	DocumentPrefix *string          `json:"document_prefix"`
	IsActive       *bool            `json:"is_active"`
}

// CompanyService defines the tenant company management contract.
type CompanyService interface {
	Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyService struct {
	repo port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(repo port.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:           strings.TrimSpace(input.Name),
		Slug:           strings.ToLower(strings.TrimSpace(input.Slug)),
		GSTIN:          strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		StateCode:      input.StateCode,
		Address:        input.Address,
		Bank:           input.Bank,
		DocumentPrefix: normalizePrefix(input.DocumentPrefix),
		IsActive:       true,
	}
	if err := validateCompany(company); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, input UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		company.Slug = strings.ToLower(strings.TrimSpace(*input.Slug))
	}
	if input.GSTIN != nil {
		company.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.StateCode != nil {
		company.StateCode = *input.StateCode
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.Bank != nil {
		company.Bank = *input.Bank
	}
	if input.DocumentPrefix != nil {
		company.DocumentPrefix = normalizePrefix(*input.DocumentPrefix)
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}

	if err := validateCompany(company); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func normalizePrefix(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return numbering.DefaultPrefix
	}
	return prefix
}

func validateCompany(c *domain.Company) error {
	verr := &domain.ValidationError{}
	if c.Name == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "name", Message: "is required"})
	}
	if c.Slug == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "slug", Message: "is required"})
	}
	if c.GSTIN != "" && !validator.ValidGSTIN(c.GSTIN) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "gstin", Message: "is not a valid GSTIN"})
	}
	if strings.ContainsAny(c.DocumentPrefix, "- ") {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "document_prefix", Message: "must not contain spaces or hyphens"})
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
