package port

import (
	"context"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// DocumentAuditRepository persists the append-only history of document changes.
type DocumentAuditRepository interface {
	Create(ctx context.Context, entry *domain.DocumentAuditEntry) error
	// ListByDocument pages through a document's entries, newest first. An empty action
	// lists every action.
	ListByDocument(ctx context.Context, tenantID, documentID uuid.UUID, action domain.AuditAction, offset, limit int) ([]domain.DocumentAuditEntry, int, error)
}
