package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
	"salesdocs/internal/validator"
)

// CustomerInput is the DTO for creating or replacing a customer.
type CustomerInput struct {
	Name            string         `json:"name" binding:"required"`
	CompanyName     string         `json:"company_name"`
	Email           string         `json:"email" binding:"omitempty,email"`
	Phone           string         `json:"phone"`
	GSTIN           string         `json:"gstin"`
	BillingAddress  domain.Address `json:"billing_address"`
	ShippingAddress domain.Address `json:"shipping_address"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, tenantID, customerID uuid.UUID, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{TenantID: tenantID, CreatedBy: userID}
	applyCustomerInput(customer, &input)
	if err := validateParty(customer.Name, customer.GSTIN); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, tenantID, customerID)
}

func (s *customerService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, tenantID, strings.TrimSpace(search), offset, limit)
}

func (s *customerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	applyCustomerInput(customer, &input)
	if err := validateParty(customer.Name, customer.GSTIN); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, customerID)
}

func applyCustomerInput(c *domain.Customer, in *CustomerInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.CompanyName = strings.TrimSpace(in.CompanyName)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	c.BillingAddress = in.BillingAddress
	c.ShippingAddress = in.ShippingAddress
}

func validateParty(name, gstin string) error {
	verr := &domain.ValidationError{}
	if name == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "name", Message: "is required"})
	}
	if gstin != "" && !validator.ValidGSTIN(gstin) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "gstin", Message: "is not a valid GSTIN"})
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
