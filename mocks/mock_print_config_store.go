package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
)

// MockPrintConfigStore is a mock implementation of port.PrintConfigStore.
type MockPrintConfigStore struct {
	mock.Mock
}

func (m *MockPrintConfigStore) Load(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	args := m.Called(ctx, tenantID, docType)
	return args.Get(0).(domain.PrintConfig), args.Error(1)
}

func (m *MockPrintConfigStore) Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) error {
	args := m.Called(ctx, tenantID, docType, cfg)
	return args.Error(0)
}

func (m *MockPrintConfigStore) Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) error {
	args := m.Called(ctx, tenantID, docType)
	return args.Error(0)
}
