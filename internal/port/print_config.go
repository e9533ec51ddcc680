package port

import (
	"context"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// PrintConfigStore keeps one print configuration per tenant and document type.
// Load returns domain.DefaultPrintConfig when nothing was saved.
type PrintConfigStore interface {
	Load(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error)
	Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) error
	Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) error
}
