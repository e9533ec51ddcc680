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

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.ManufacturingJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	ts := now()
	job.CreatedAt = ts
	job.UpdatedAt = ts

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO manufacturing_jobs (id, tenant_id, number, order_id, customer_id, party_name,
			items, status, due_date, notes, created_by, created_at, updated_at)
		 VALUES (:id, :tenant_id, :number, :order_id, :customer_id, :party_name,
			:items, :status, :due_date, :notes, :created_by, :created_at, :updated_at)`, job)
	if err != nil {
		if isUniqueViolation(err, "manufacturing_jobs_tenant_number") {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ManufacturingJob, error) {
	var job domain.ManufacturingJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM manufacturing_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, tenantID uuid.UUID, status domain.JobStatus, offset, limit int) ([]domain.ManufacturingJob, int, error) {
	offset, limit = clampPage(offset, limit)

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM manufacturing_jobs WHERE tenant_id = $1 AND ($2 = '' OR status = $2)",
		tenantID, string(status)); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List count: %w", err)
	}

	var jobs []domain.ManufacturingJob
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM manufacturing_jobs WHERE tenant_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY due_date ASC NULLS LAST, created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]domain.ManufacturingJob, error) {
	var jobs []domain.ManufacturingJob
	err := r.db.SelectContext(ctx, &jobs,
		"SELECT * FROM manufacturing_jobs WHERE tenant_id = $1 AND order_id = $2 ORDER BY created_at ASC",
		tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListByOrder: %w", err)
	}
	return jobs, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.ManufacturingJob) error {
	job.UpdatedAt = now()
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE manufacturing_jobs SET party_name = :party_name, items = :items, status = :status,
			due_date = :due_date, notes = :notes, updated_at = :updated_at
		 WHERE id = :id AND tenant_id = :tenant_id`, job)
	if err != nil {
		return fmt.Errorf("jobRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM manufacturing_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		return fmt.Errorf("jobRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *jobRepo) CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM manufacturing_jobs WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3",
		tenantID, from, to)
	if err != nil {
		return 0, fmt.Errorf("jobRepo.CountCreatedBetween: %w", err)
	}
	return count, nil
}

func (r *jobRepo) ListNumbersWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.SelectContext(ctx, &numbers,
		"SELECT number FROM manufacturing_jobs WHERE tenant_id = $1 AND starts_with(number, $2)",
		tenantID, prefix)
	if err != nil {
		return nil, fmt.Errorf("jobRepo.ListNumbersWithPrefix: %w", err)
	}
	return numbers, nil
}
