package port

import (
	"context"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// CompanyRepository defines the contract for tenant company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository defines the contract for customer persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

// LeadRepository defines the contract for lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, tenantID uuid.UUID, status domain.LeadStatus, search string, offset, limit int) ([]domain.Lead, int, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, tenantID, leadID uuid.UUID) error
	// ConvertToCustomer inserts customer and marks lead converted in one transaction.
	ConvertToCustomer(ctx context.Context, lead *domain.Lead, customer *domain.Customer) error
}
