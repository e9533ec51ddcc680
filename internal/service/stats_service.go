package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

// StatsService provides aggregate statistics.
type StatsService interface {
	GetStats(ctx context.Context, tenantID uuid.UUID) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	loc       *time.Location
}

// NewStatsService creates a new StatsService implementation. Overdue invoices are those
// due before the start of today in loc.
func NewStatsService(statsRepo port.StatsRepository, loc *time.Location) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &statsService{statsRepo: statsRepo, loc: loc}
}

func (s *statsService) GetStats(ctx context.Context, tenantID uuid.UUID) (*domain.Stats, error) {
	y, m, d := time.Now().In(s.loc).Date()
	return s.statsRepo.GetTenantStats(ctx, tenantID, time.Date(y, m, d, 0, 0, 0, 0, s.loc))
}
