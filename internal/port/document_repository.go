package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// DocumentRepository defines the contract for sales document persistence.
// Documents of every type share one store and are always addressed with their tenant.
type DocumentRepository interface {
	// Create inserts doc. A number already used by the tenant for the same type
	// yields domain.ErrDuplicateDocumentNumber.
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	GetByNumber(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, number string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, int, error)
	// Update replaces every mutable column. When expectedUpdatedAt is set and the stored
	// row differs, it returns domain.ErrStaleDocument.
	Update(ctx context.Context, doc *domain.Document, expectedUpdatedAt *time.Time) error
	UpdateStatus(ctx context.Context, tenantID, docID uuid.UUID, status domain.DocumentStatus) error
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
	// CountCreatedBetween counts documents of docType created in [from, to).
	CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, from, to time.Time) (int, error)
	// ListNumbersWithPrefix returns the numbers of docType starting with prefix.
	ListNumbersWithPrefix(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, prefix string) ([]string, error)
	// ListBySource returns documents converted from sourceID.
	ListBySource(ctx context.Context, tenantID, sourceID uuid.UUID) ([]domain.Document, error)
}

// JobRepository defines the contract for manufacturing job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.ManufacturingJob) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ManufacturingJob, error)
	List(ctx context.Context, tenantID uuid.UUID, status domain.JobStatus, offset, limit int) ([]domain.ManufacturingJob, int, error)
	ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]domain.ManufacturingJob, error)
	Update(ctx context.Context, job *domain.ManufacturingJob) error
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
	CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error)
	ListNumbersWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error)
}
