package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

// PrintConfigService manages the per tenant, per document type print toggles.
type PrintConfigService interface {
	Get(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error)
	Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) (domain.PrintConfig, error)
	Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error)
}

type printConfigService struct {
	store port.PrintConfigStore
}

// NewPrintConfigService creates a new PrintConfigService implementation.
func NewPrintConfigService(store port.PrintConfigStore) PrintConfigService {
	return &printConfigService{store: store}
}

func checkPrintType(docType domain.DocumentType) error {
	if !domain.ValidDocumentTypes[docType] {
		return domain.NewValidationError("type", fmt.Sprintf("unknown document type %q", docType))
	}
	return nil
}

func (s *printConfigService) Get(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	if err := checkPrintType(docType); err != nil {
		return domain.PrintConfig{}, err
	}
	return s.store.Load(ctx, tenantID, docType)
}

func (s *printConfigService) Save(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType, cfg domain.PrintConfig) (domain.PrintConfig, error) {
	if err := checkPrintType(docType); err != nil {
		return domain.PrintConfig{}, err
	}
	if err := s.store.Save(ctx, tenantID, docType, cfg); err != nil {
		return domain.PrintConfig{}, err
	}
	return cfg, nil
}

func (s *printConfigService) Reset(ctx context.Context, tenantID uuid.UUID, docType domain.DocumentType) (domain.PrintConfig, error) {
	if err := checkPrintType(docType); err != nil {
		return domain.PrintConfig{}, err
	}
	if err := s.store.Reset(ctx, tenantID, docType); err != nil {
		return domain.PrintConfig{}, err
	}
	return domain.DefaultPrintConfig(), nil
}
