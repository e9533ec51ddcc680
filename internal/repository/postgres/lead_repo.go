package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

type leadRepo struct {
	db *sqlx.DB
}

// NewLeadRepo creates a new PostgreSQL-backed LeadRepository.
func NewLeadRepo(db *sqlx.DB) port.LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, l *domain.Lead) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (id, tenant_id, name, company_name, email, phone, gstin, address,
			source, status, notes, customer_id, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.TenantID, l.Name, l.CompanyName, l.Email, l.Phone, l.GSTIN, l.Address,
		l.Source, l.Status, l.Notes, l.CustomerID, l.CreatedBy, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("leadRepo.Create: %w", err)
	}
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, tenantID, leadID uuid.UUID) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.GetContext(ctx, &l,
		"SELECT * FROM leads WHERE id = $1 AND tenant_id = $2", leadID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("leadRepo.GetByID: %w", err)
	}
	return &l, nil
}

func (r *leadRepo) List(ctx context.Context, tenantID uuid.UUID, status domain.LeadStatus, search string, offset, limit int) ([]domain.Lead, int, error) {
	offset, limit = clampPage(offset, limit)
	pattern := "%" + search + "%"
	where := `WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		AND ($3 = '' OR name ILIKE $4 OR company_name ILIKE $4 OR email ILIKE $4)`

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM leads "+where,
		tenantID, string(status), search, pattern); err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List count: %w", err)
	}

	var leads []domain.Lead
	err := r.db.SelectContext(ctx, &leads,
		"SELECT * FROM leads "+where+" ORDER BY created_at DESC LIMIT $5 OFFSET $6",
		tenantID, string(status), search, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: %w", err)
	}
	return leads, total, nil
}

func (r *leadRepo) Update(ctx context.Context, l *domain.Lead) error {
	l.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE leads SET name = $1, company_name = $2, email = $3, phone = $4, gstin = $5,
			address = $6, source = $7, status = $8, notes = $9, customer_id = $10, updated_at = $11
		 WHERE id = $12 AND tenant_id = $13`,
		l.Name, l.CompanyName, l.Email, l.Phone, l.GSTIN, l.Address, l.Source, l.Status,
		l.Notes, l.CustomerID, l.UpdatedAt, l.ID, l.TenantID)
	if err != nil {
		return fmt.Errorf("leadRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *leadRepo) Delete(ctx context.Context, tenantID, leadID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM leads WHERE id = $1 AND tenant_id = $2", leadID, tenantID)
	if err != nil {
		return fmt.Errorf("leadRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *leadRepo) ConvertToCustomer(ctx context.Context, l *domain.Lead, c *domain.Customer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("leadRepo.ConvertToCustomer begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO customers (id, tenant_id, name, company_name, email, phone, gstin,
			billing_address, shipping_address, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.TenantID, c.Name, c.CompanyName, c.Email, c.Phone, c.GSTIN,
		c.BillingAddress, c.ShippingAddress, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("leadRepo.ConvertToCustomer insert customer: %w", err)
	}

	// The status guard makes a concurrent second conversion fail instead of orphaning a customer.
	result, err := tx.ExecContext(ctx,
		`UPDATE leads SET status = $1, customer_id = $2, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5 AND customer_id IS NULL AND status <> $1`,
		domain.LeadStatusConverted, c.ID, now, l.ID, l.TenantID)
	if err != nil {
		return fmt.Errorf("leadRepo.ConvertToCustomer update lead: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrLeadConverted
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leadRepo.ConvertToCustomer commit: %w", err)
	}
	l.Status = domain.LeadStatusConverted
	l.CustomerID = &c.ID
	l.UpdatedAt = now
	return nil
}
