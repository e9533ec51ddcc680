// Package lifecycle holds the status transition tables of documents and manufacturing jobs.
package lifecycle

import (
	"fmt"
	"time"

	"salesdocs/internal/domain"
)

type transitions map[domain.DocumentStatus][]domain.DocumentStatus

var documentTransitions = map[domain.DocumentType]transitions{
	domain.DocumentTypeQuotation: {
		domain.StatusDraft: {domain.StatusSent},
		domain.StatusSent:  {domain.StatusAccepted, domain.StatusRejected, domain.StatusExpired},
	},
	domain.DocumentTypeProforma: {
		domain.StatusDraft: {domain.StatusSent, domain.StatusCancelled},
		domain.StatusSent:  {domain.StatusPaid, domain.StatusCancelled},
	},
	domain.DocumentTypeOrder: {
		domain.StatusProcessing: {domain.StatusShipped, domain.StatusCancelled},
		domain.StatusShipped:    {domain.StatusDelivered},
		domain.StatusDelivered:  {domain.StatusCompleted},
	},
	domain.DocumentTypeInvoice: {
		domain.StatusPending: {domain.StatusPaid, domain.StatusCancelled},
	},
	domain.DocumentTypePurchaseOrder: {
		domain.StatusDraft:  {domain.StatusIssued, domain.StatusCancelled},
		domain.StatusIssued: {domain.StatusReceived, domain.StatusCancelled},
	},
	domain.DocumentTypeDeliveryChallan: {
		domain.StatusDraft:      {domain.StatusDispatched, domain.StatusCancelled},
		domain.StatusDispatched: {domain.StatusDelivered},
	},
}

var initialStatus = map[domain.DocumentType]domain.DocumentStatus{
	domain.DocumentTypeQuotation:       domain.StatusDraft,
	domain.DocumentTypeProforma:        domain.StatusDraft,
	domain.DocumentTypeOrder:           domain.StatusProcessing,
	domain.DocumentTypeInvoice:         domain.StatusPending,
	domain.DocumentTypePurchaseOrder:   domain.StatusDraft,
	domain.DocumentTypeDeliveryChallan: domain.StatusDraft,
}

// InitialStatus is the status a new document of docType starts in.
func InitialStatus(docType domain.DocumentType) domain.DocumentStatus {
	return initialStatus[docType]
}

// Statuses lists every status a document of docType can be stored in.
func Statuses(docType domain.DocumentType) []domain.DocumentStatus {
	table := documentTransitions[docType]
	seen := map[domain.DocumentStatus]bool{}
	var out []domain.DocumentStatus
	add := func(s domain.DocumentStatus) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(initialStatus[docType])
	for _, s := range orderedStates(docType) {
		add(s)
		for _, to := range table[s] {
			add(to)
		}
	}
	return out
}

// IsValidStatus reports whether status is storable for docType.
func IsValidStatus(docType domain.DocumentType, status domain.DocumentStatus) bool {
	for _, s := range Statuses(docType) {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(docType domain.DocumentType, status domain.DocumentStatus) bool {
	return len(documentTransitions[docType][status]) == 0
}

// CanTransition reports whether a document of docType may move from one status to another.
// Quotations may always be reset to draft.
func CanTransition(docType domain.DocumentType, from, to domain.DocumentStatus) bool {
	if docType == domain.DocumentTypeQuotation && to == domain.StatusDraft {
		return true
	}
	for _, allowed := range documentTransitions[docType][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves doc to status or returns ErrInvalidStatusTransition without touching doc.
func Transition(doc *domain.Document, to domain.DocumentStatus) error {
	if !CanTransition(doc.DocumentType, doc.Status, to) {
		return fmt.Errorf("%w: %s cannot move from %s to %s",
			domain.ErrInvalidStatusTransition, doc.DocumentType, doc.Status, to)
	}
	doc.Status = to
	return nil
}

// EffectiveStatus is the status shown to callers. A pending invoice past its due date reads
// as overdue; the stored status is unchanged.
func EffectiveStatus(doc *domain.Document, now time.Time) domain.DocumentStatus {
	if doc.DocumentType != domain.DocumentTypeInvoice || doc.Status != domain.StatusPending || doc.DueDate == nil {
		return doc.Status
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if doc.DueDate.Before(today) {
		return domain.StatusOverdue
	}
	return doc.Status
}

func orderedStates(docType domain.DocumentType) []domain.DocumentStatus {
	switch docType {
	case domain.DocumentTypeQuotation:
		return []domain.DocumentStatus{domain.StatusDraft, domain.StatusSent}
	case domain.DocumentTypeProforma:
		return []domain.DocumentStatus{domain.StatusDraft, domain.StatusSent}
	case domain.DocumentTypeOrder:
		return []domain.DocumentStatus{domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered}
	case domain.DocumentTypeInvoice:
		return []domain.DocumentStatus{domain.StatusPending}
	case domain.DocumentTypePurchaseOrder:
		return []domain.DocumentStatus{domain.StatusDraft, domain.StatusIssued}
	case domain.DocumentTypeDeliveryChallan:
		return []domain.DocumentStatus{domain.StatusDraft, domain.StatusDispatched}
	}
	return nil
}
