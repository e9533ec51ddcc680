package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// MockJobService is a mock implementation of service.JobService.
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) Create(ctx context.Context, tenantID, userID uuid.UUID, input service.JobInput) (*domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) CreateFromOrder(ctx context.Context, tenantID, orderID, userID uuid.UUID, notes string) (*domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, orderID, userID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) List(ctx context.Context, tenantID uuid.UUID, status domain.JobStatus, offset, limit int) ([]domain.ManufacturingJob, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ManufacturingJob), args.Int(1), args.Error(2)
}

func (m *MockJobService) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input service.JobInput) (*domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, jobID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) UpdateStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobStatus) (*domain.ManufacturingJob, error) {
	args := m.Called(ctx, tenantID, jobID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManufacturingJob), args.Error(1)
}

func (m *MockJobService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	args := m.Called(ctx, tenantID, jobID)
	return args.Error(0)
}
