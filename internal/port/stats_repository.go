package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// StatsRepository provides aggregate statistics queries. Invoices still pending with a
// due date before today count as overdue.
type StatsRepository interface {
	GetTenantStats(ctx context.Context, tenantID uuid.UUID, today time.Time) (*domain.Stats, error)
}
