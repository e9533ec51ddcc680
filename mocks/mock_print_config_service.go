package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
)

// MockPrintConfigService is a mock implementation of service.PrintConfigService.
type MockPrintConfigService struct {
	mock.Mock
}

func (m *MockPrintConfigService) Get(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	args := m.Called(ctx, tenantID, docType)
	return args.Get(0).(domain.PrintConfig), args.Error(1)
}

func (m *MockPrintConfigService) Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) (domain.PrintConfig, error) {
	args := m.Called(ctx, tenantID, docType, cfg)
	return args.Get(0).(domain.PrintConfig), args.Error(1)
}

func (m *MockPrintConfigService) Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	args := m.Called(ctx, tenantID, docType)
	return args.Get(0).(domain.PrintConfig), args.Error(1)
}
