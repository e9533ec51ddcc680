package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

// documentNumberConstraint is the unique index on (tenant_id, document_type, number).
const documentNumberConstraint = "documents_tenant_type_number"

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

// now is truncated to the precision Postgres stores, so a timestamp handed back to a
// client compares equal when it is resubmitted as expected_updated_at.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	ts := now()
	doc.CreatedAt = ts
	doc.UpdatedAt = ts

	query := `INSERT INTO documents (
		id, tenant_id, document_type, number, date, due_date,
		customer_id, lead_id, party, billing_address, shipping_address, same_as_billing,
		place_of_supply, items, extra_charges, discounts,
		subtotal, taxable_total, cgst_total, sgst_total, igst_total, total_amount,
		status, source_document_id, source_document_type, source_number,
		notes, terms, created_by, created_at, updated_at
	) VALUES (
		:id, :tenant_id, :document_type, :number, :date, :due_date,
		:customer_id, :lead_id, :party, :billing_address, :shipping_address, :same_as_billing,
		:place_of_supply, :items, :extra_charges, :discounts,
		:subtotal, :taxable_total, :cgst_total, :sgst_total, :igst_total, :total_amount,
		:status, :source_document_id, :source_document_type, :source_number,
		:notes, :terms, :created_by, :created_at, :updated_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		if isUniqueViolation(err, documentNumberConstraint) {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByNumber(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, number string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE tenant_id = $1 AND document_type = $2 AND number = $3",
		tenantID, docType, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByNumber: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, int, error) {
	conds := []string{"tenant_id = ?"}
	args := []interface{}{f.TenantID}

	if f.DocumentType != "" {
		conds = append(conds, "document_type = ?")
		args = append(args, f.DocumentType)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.CustomerID != nil {
		conds = append(conds, "customer_id = ?")
		args = append(args, *f.CustomerID)
	}
	if f.LeadID != nil {
		conds = append(conds, "lead_id = ?")
		args = append(args, *f.LeadID)
	}
	if f.Search != "" {
		conds = append(conds, "(number ILIKE ? OR party->>'name' ILIKE ? OR party->>'company_name' ILIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if f.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "date < ?")
		args = append(args, *f.To)
	}
	if f.DueBefore != nil {
		conds = append(conds, "due_date < ?")
		args = append(args, *f.DueBefore)
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM documents"+where), args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	offset, limit := clampPage(f.Offset, f.Limit)
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		r.db.Rebind("SELECT * FROM documents"+where+" ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?"),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document, expectedUpdatedAt *time.Time) error {
	doc.UpdatedAt = now()

	query, args, err := sqlx.Named(`UPDATE documents SET
		date = :date, due_date = :due_date, customer_id = :customer_id, lead_id = :lead_id,
		party = :party, billing_address = :billing_address, shipping_address = :shipping_address,
		same_as_billing = :same_as_billing, place_of_supply = :place_of_supply,
		items = :items, extra_charges = :extra_charges, discounts = :discounts,
		subtotal = :subtotal, taxable_total = :taxable_total, cgst_total = :cgst_total,
		sgst_total = :sgst_total, igst_total = :igst_total, total_amount = :total_amount,
		status = :status, notes = :notes, terms = :terms, updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id`, doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update bind: %w", err)
	}
	if expectedUpdatedAt != nil {
		query += " AND updated_at = ?"
		args = append(args, expectedUpdatedAt.UTC())
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	if expectedUpdatedAt == nil {
		return domain.ErrDocumentNotFound
	}
	if _, err := r.GetByID(ctx, doc.TenantID, doc.ID); err != nil {
		return err
	}
	return domain.ErrStaleDocument
}

func (r *documentRepo) UpdateStatus(ctx context.Context, tenantID, docID uuid.UUID, status domain.DocumentStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		status, now(), docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// Delete removes only the document itself. Documents converted from it keep their
// source_* columns, which carry no foreign key.
func (r *documentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, from, to time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM documents
		 WHERE tenant_id = $1 AND document_type = $2 AND created_at >= $3 AND created_at < $4`,
		tenantID, docType, from, to)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.CountCreatedBetween: %w", err)
	}
	return count, nil
}

func (r *documentRepo) ListNumbersWithPrefix(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.SelectContext(ctx, &numbers,
		`SELECT number FROM documents
		 WHERE tenant_id = $1 AND document_type = $2 AND starts_with(number, $3)`,
		tenantID, docType, prefix)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListNumbersWithPrefix: %w", err)
	}
	return numbers, nil
}

func (r *documentRepo) ListBySource(ctx context.Context, tenantID, sourceID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE tenant_id = $1 AND source_document_id = $2
		 ORDER BY created_at ASC`,
		tenantID, sourceID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListBySource: %w", err)
	}
	return docs, nil
}
