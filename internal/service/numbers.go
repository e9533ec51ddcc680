package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/numbering"
	"salesdocs/internal/port"
)

// numberAllocator picks the next human-readable number for a tenant. Documents and
// manufacturing jobs share it; each supplies its own counting queries.
type numberAllocator struct {
	companies port.CompanyRepository
	loc       *time.Location
	now       func() time.Time
}

// allocate returns the first free number after the records created today. count reports
// how many were created in [from, to); taken lists the numbers already using stem.
func (a *numberAllocator) allocate(
	ctx context.Context,
	tenantID uuid.UUID,
	typeCode string,
	count func(from, to time.Time) (int, error),
	taken func(stem string) ([]string, error),
) (string, error) {
	prefix := a.prefix(ctx, tenantID)
	now := a.now().In(a.loc)
	from, to := numbering.DayBounds(now, a.loc)

	existing, err := count(from, to)
	if err != nil {
		return "", fmt.Errorf("counting today's records: %w", err)
	}
	stem := numbering.Stem(prefix, typeCode, now)
	numbers, err := taken(stem)
	if err != nil {
		return "", fmt.Errorf("listing numbers for %s: %w", stem, err)
	}
	return numbering.Format(prefix, typeCode, now, numbering.FirstFree(stem, existing, numbers)), nil
}

func (a *numberAllocator) prefix(ctx context.Context, tenantID uuid.UUID) string {
	if a.companies == nil {
		return numbering.DefaultPrefix
	}
	company, err := a.companies.GetByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("numberAllocator.prefix: company %s lookup failed, using default prefix: %v", tenantID, err)
		}
		return numbering.DefaultPrefix
	}
	if company.DocumentPrefix == "" {
		return numbering.DefaultPrefix
	}
	return company.DocumentPrefix
}
