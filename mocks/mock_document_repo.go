package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) GetByNumber(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, number string) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docType, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document, expectedUpdatedAt *time.Time) error {
	args := m.Called(ctx, doc, expectedUpdatedAt)
	return args.Error(0)
}

func (m *MockDocumentRepo) UpdateStatus(ctx context.Context, tenantID, docID uuid.UUID, status domain.DocumentStatus) error {
	args := m.Called(ctx, tenantID, docID, status)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	args := m.Called(ctx, tenantID, docID)
	return args.Error(0)
}

func (m *MockDocumentRepo) CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, docType, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepo) ListNumbersWithPrefix(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, docType, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepo) ListBySource(ctx context.Context, tenantID, sourceID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, tenantID, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
