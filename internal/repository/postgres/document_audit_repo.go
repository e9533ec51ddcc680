package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

type documentAuditRepo struct {
	db *sqlx.DB
}

// NewDocumentAuditRepo creates a new PostgreSQL-backed DocumentAuditRepository.
func NewDocumentAuditRepo(db *sqlx.DB) port.DocumentAuditRepository {
	return &documentAuditRepo{db: db}
}

func (r *documentAuditRepo) Create(ctx context.Context, entry *domain.DocumentAuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now()
	}
	changes := entry.Changes
	if len(changes) == 0 {
		changes = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_audit_log (id, tenant_id, document_id, user_id, action, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TenantID, entry.DocumentID, entry.UserID, entry.Action, string(changes), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentAuditRepo.Create: %w", err)
	}
	return nil
}

// ListByDocument returns the newest entries first. Entries outlive their document.
func (r *documentAuditRepo) ListByDocument(ctx context.Context, tenantID, documentID uuid.UUID, action domain.AuditAction, offset, limit int) ([]domain.DocumentAuditEntry, int, error) {
	offset, limit = clampPage(offset, limit)

	where := "tenant_id = $1 AND document_id = $2"
	args := []interface{}{tenantID, documentID}
	if action != "" {
		where += " AND action = $3"
		args = append(args, action)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_audit_log WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentAuditRepo.ListByDocument count: %w", err)
	}

	query := fmt.Sprintf(`SELECT * FROM document_audit_log WHERE %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	var entries []domain.DocumentAuditEntry
	if err := r.db.SelectContext(ctx, &entries, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("documentAuditRepo.ListByDocument: %w", err)
	}
	return entries, total, nil
}
