package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/calc"
	"salesdocs/internal/conversion"
	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
	"salesdocs/internal/numbering"
	"salesdocs/internal/port"
)

// JobInput is the DTO for creating or replacing a manufacturing job.
type JobInput struct {
	OrderID    *uuid.UUID       `json:"order_id"`
	CustomerID *uuid.UUID       `json:"customer_id"`
	PartyName  string           `json:"party_name"`
	Items      domain.LineItems `json:"items"`
	DueDate    *time.Time       `json:"due_date"`
	Notes      string           `json:"notes"`
}

// JobService defines the manufacturing job contract.
type JobService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input JobInput) (*domain.ManufacturingJob, error)
	// CreateFromOrder starts a job for every item of an order, due JobDueDays from now.
	CreateFromOrder(ctx context.Context, tenantID, orderID, userID uuid.UUID, notes string) (*domain.ManufacturingJob, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ManufacturingJob, error)
	List(ctx context.Context, tenantID uuid.UUID, status domain.JobStatus, offset, limit int) ([]domain.ManufacturingJob, int, error)
	ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]domain.ManufacturingJob, error)
	Update(ctx context.Context, tenantID, jobID uuid.UUID, input JobInput) (*domain.ManufacturingJob, error)
	UpdateStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobStatus) (*domain.ManufacturingJob, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

type jobService struct {
	repo       port.JobRepository
	docRepo    port.DocumentRepository
	customers  port.CustomerRepository
	numbers    *numberAllocator
	dueDays    int
	maxRetries int
}

// NewJobService creates a new JobService implementation. dueDays <= 0 falls back to
// conversion.JobDueDays.
func NewJobService(repo port.JobRepository, docRepo port.DocumentRepository, customers port.CustomerRepository, companies port.CompanyRepository, settings DocumentSettings, dueDays int) JobService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.MaxNumberRetries <= 0 {
		settings.MaxNumberRetries = defaultNumberRetries
	}
	if dueDays <= 0 {
		dueDays = conversion.JobDueDays
	}
	return &jobService{
		repo:       repo,
		docRepo:    docRepo,
		customers:  customers,
		numbers:    &numberAllocator{companies: companies, loc: settings.Location, now: settings.Now},
		dueDays:    dueDays,
		maxRetries: settings.MaxNumberRetries,
	}
}

func (s *jobService) Create(ctx context.Context, tenantID, userID uuid.UUID, input JobInput) (*domain.ManufacturingJob, error) {
	job := &domain.ManufacturingJob{
		TenantID:   tenantID,
		OrderID:    input.OrderID,
		CustomerID: input.CustomerID,
		PartyName:  input.PartyName,
		Items:      input.Items.Clone(),
		Status:     domain.JobStatusPending,
		DueDate:    input.DueDate,
		Notes:      input.Notes,
		CreatedBy:  userID,
	}
	if job.DueDate == nil {
		job.DueDate = s.defaultDueDate()
	}
	if err := checkJobItems(job.Items); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, job); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) CreateFromOrder(ctx context.Context, tenantID, orderID, userID uuid.UUID, notes string) (*domain.ManufacturingJob, error) {
	order, err := s.docRepo.GetByID(ctx, tenantID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: order %s", domain.ErrSourceNotFound, orderID)
		}
		return nil, err
	}
	if order.DocumentType != domain.DocumentTypeOrder {
		return nil, fmt.Errorf("%w: order %s", domain.ErrSourceNotFound, orderID)
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: order %s has no items", domain.ErrIncompleteSourceDocument, order.Number)
	}

	partyName := order.Party.CompanyName
	if partyName == "" {
		partyName = order.Party.Name
	}
	id := order.ID
	job := &domain.ManufacturingJob{
		TenantID:   tenantID,
		OrderID:    &id,
		CustomerID: order.CustomerID,
		PartyName:  partyName,
		Items:      order.Items.Clone(),
		Status:     domain.JobStatusPending,
		DueDate:    s.defaultDueDate(),
		Notes:      notes,
		CreatedBy:  userID,
	}
	if err := s.insert(ctx, job); err != nil {
		return nil, err
	}
	log.Printf("jobService.CreateFromOrder: job %s for order %s (tenant %s)", job.Number, order.Number, tenantID)
	return job, nil
}

// resolveRefs checks that the linked order and customer belong to the tenant. A job
// linked to an order inherits its customer and party name when those are blank.
func (s *jobService) resolveRefs(ctx context.Context, job *domain.ManufacturingJob) error {
	if job.OrderID != nil {
		order, err := s.docRepo.GetByID(ctx, job.TenantID, *job.OrderID)
		if errors.Is(err, domain.ErrDocumentNotFound) || (err == nil && order.DocumentType != domain.DocumentTypeOrder) {
			return fmt.Errorf("%w: order %s", domain.ErrSourceNotFound, *job.OrderID)
		}
		if err != nil {
			return err
		}
		if job.CustomerID == nil {
			job.CustomerID = order.CustomerID
		}
		if job.PartyName == "" {
			job.PartyName = order.Party.CompanyName
			if job.PartyName == "" {
				job.PartyName = order.Party.Name
			}
		}
	}
	if job.CustomerID != nil {
		customer, err := s.customers.GetByID(ctx, job.TenantID, *job.CustomerID)
		if err != nil {
			return err
		}
		if job.PartyName == "" {
			job.PartyName = customer.Name
		}
	}
	return nil
}

// checkJobItems applies the document line rules to job items; quantities must also be positive.
func checkJobItems(items domain.LineItems) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	if _, err := calc.ComputeLines(items); err != nil {
		return err
	}
	for i := range items {
		if !items[i].Quantity.IsPositive() {
			return &domain.LineItemError{Index: i, Field: "quantity", Reason: "must be greater than zero"}
		}
	}
	return nil
}

func (s *jobService) defaultDueDate() *time.Time {
	due := s.numbers.now().In(s.numbers.loc).AddDate(0, 0, s.dueDays)
	return &due
}

// insert numbers and stores job, retrying when the number was taken concurrently.
func (s *jobService) insert(ctx context.Context, job *domain.ManufacturingJob) error {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		number, err := s.numbers.allocate(ctx, job.TenantID, numbering.JobTypeCode, func(from, to time.Time) (int, error) {
			return s.repo.CountCreatedBetween(ctx, job.TenantID, from, to)
		}, func(stem string) ([]string, error) {
			return s.repo.ListNumbersWithPrefix(ctx, job.TenantID, stem)
		})
		if err != nil {
			return err
		}
		job.Number = number
		err = s.repo.Create(ctx, job)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (s *jobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ManufacturingJob, error) {
	return s.repo.GetByID(ctx, tenantID, jobID)
}

func (s *jobService) List(ctx context.Context, tenantID uuid.UUID, status domain.JobStatus, offset, limit int) ([]domain.ManufacturingJob, int, error) {
	if status != "" {
		if !lifecycle.IsValidJobStatus(status) {
			return nil, 0, domain.NewValidationError("status", fmt.Sprintf("unknown job status %q", status))
		}
		status = domain.NormalizeJobStatus(string(status))
	}
	return s.repo.List(ctx, tenantID, status, offset, limit)
}

func (s *jobService) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]domain.ManufacturingJob, error) {
	return s.repo.ListByOrder(ctx, tenantID, orderID)
}

func (s *jobService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input JobInput) (*domain.ManufacturingJob, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if err := checkJobItems(input.Items); err != nil {
		return nil, err
	}
	job.PartyName = input.PartyName
	job.Items = input.Items.Clone()
	if input.DueDate != nil {
		job.DueDate = input.DueDate
	}
	job.Notes = input.Notes
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) UpdateStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobStatus) (*domain.ManufacturingJob, error) {
	if !lifecycle.IsValidJobStatus(status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown job status %q", status))
	}
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.TransitionJob(job, status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, jobID)
}
