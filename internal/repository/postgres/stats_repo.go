package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const statusCountsQuery = `SELECT document_type, status, COUNT(*) AS count
FROM documents WHERE tenant_id = $1
GROUP BY document_type, status
ORDER BY document_type, status`

const invoiceTotalsQuery = `SELECT
	COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_amount END), 0) AS invoiced,
	COALESCE(SUM(CASE WHEN status = 'paid' THEN total_amount END), 0) AS received,
	COALESCE(SUM(CASE WHEN status = 'pending' THEN total_amount END), 0) AS outstanding,
	COUNT(CASE WHEN status = 'pending' AND due_date < $2 THEN 1 END) AS overdue
FROM documents WHERE tenant_id = $1 AND document_type = 'invoice'`

type invoiceTotals struct {
	Invoiced    decimal.Decimal `db:"invoiced"`
	Received    decimal.Decimal `db:"received"`
	Outstanding decimal.Decimal `db:"outstanding"`
	Overdue     int             `db:"overdue"`
}

func (r *statsRepo) GetTenantStats(ctx context.Context, tenantID uuid.UUID, today time.Time) (*domain.Stats, error) {
	stats := domain.Stats{ByStatus: []domain.StatusCount{}}
	if err := r.db.SelectContext(ctx, &stats.ByStatus, statusCountsQuery, tenantID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTenantStats status counts: %w", err)
	}
	for _, sc := range stats.ByStatus {
		switch sc.DocumentType {
		case domain.DocumentTypeQuotation:
			stats.TotalQuotations += sc.Count
		case domain.DocumentTypeOrder:
			stats.TotalOrders += sc.Count
		case domain.DocumentTypeInvoice:
			stats.TotalInvoices += sc.Count
		}
	}

	var inv invoiceTotals
	if err := r.db.GetContext(ctx, &inv, invoiceTotalsQuery, tenantID, today); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTenantStats invoices: %w", err)
	}
	stats.InvoicedAmount = inv.Invoiced
	stats.ReceivedAmount = inv.Received
	stats.OutstandingAmount = inv.Outstanding
	stats.OverdueInvoices = inv.Overdue

	if err := r.db.GetContext(ctx, &stats.OpenManufacturing,
		`SELECT COUNT(*) FROM manufacturing_jobs
		 WHERE tenant_id = $1 AND status NOT IN ('shipped', 'cancelled')`, tenantID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTenantStats jobs: %w", err)
	}

	if err := r.db.GetContext(ctx, &stats.ConvertedQuotation,
		`SELECT COUNT(DISTINCT source_document_id) FROM documents
		 WHERE tenant_id = $1 AND source_document_type = 'quotation'`, tenantID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTenantStats conversions: %w", err)
	}

	return &stats, nil
}
