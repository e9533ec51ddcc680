package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
)

func TestCanTransition_Tables(t *testing.T) {
	tests := []struct {
		name    string
		docType domain.DocumentType
		from    domain.DocumentStatus
		to      domain.DocumentStatus
		allowed bool
	}{
		{"quotation draft to sent", domain.DocumentTypeQuotation, domain.StatusDraft, domain.StatusSent, true},
		{"quotation sent to accepted", domain.DocumentTypeQuotation, domain.StatusSent, domain.StatusAccepted, true},
		{"quotation sent to expired", domain.DocumentTypeQuotation, domain.StatusSent, domain.StatusExpired, true},
		{"quotation draft to accepted", domain.DocumentTypeQuotation, domain.StatusDraft, domain.StatusAccepted, false},
		{"quotation reset from rejected", domain.DocumentTypeQuotation, domain.StatusRejected, domain.StatusDraft, true},
		{"order processing to shipped", domain.DocumentTypeOrder, domain.StatusProcessing, domain.StatusShipped, true},
		{"order shipped to delivered", domain.DocumentTypeOrder, domain.StatusShipped, domain.StatusDelivered, true},
		{"order delivered to completed", domain.DocumentTypeOrder, domain.StatusDelivered, domain.StatusCompleted, true},
		{"order skips shipping", domain.DocumentTypeOrder, domain.StatusProcessing, domain.StatusDelivered, false},
		{"order cancelled after shipping", domain.DocumentTypeOrder, domain.StatusShipped, domain.StatusCancelled, false},
		{"invoice pending to paid", domain.DocumentTypeInvoice, domain.StatusPending, domain.StatusPaid, true},
		{"invoice paid to pending", domain.DocumentTypeInvoice, domain.StatusPaid, domain.StatusPending, false},
		{"invoice never set overdue", domain.DocumentTypeInvoice, domain.StatusPending, domain.StatusOverdue, false},
		{"proforma sent to paid", domain.DocumentTypeProforma, domain.StatusSent, domain.StatusPaid, true},
		{"purchase order issued to received", domain.DocumentTypePurchaseOrder, domain.StatusIssued, domain.StatusReceived, true},
		{"challan draft to delivered", domain.DocumentTypeDeliveryChallan, domain.StatusDraft, domain.StatusDelivered, false},
		{"challan dispatched to delivered", domain.DocumentTypeDeliveryChallan, domain.StatusDispatched, domain.StatusDelivered, true},
		{"order reset to draft", domain.DocumentTypeOrder, domain.StatusShipped, domain.StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, lifecycle.CanTransition(tt.docType, tt.from, tt.to))
		})
	}
}

func TestTransition_InvalidLeavesDocumentUntouched(t *testing.T) {
	doc := &domain.Document{DocumentType: domain.DocumentTypeOrder, Status: domain.StatusProcessing}

	err := lifecycle.Transition(doc, domain.StatusCompleted)

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Equal(t, domain.StatusProcessing, doc.Status)
}

func TestTransition_Valid(t *testing.T) {
	doc := &domain.Document{DocumentType: domain.DocumentTypeQuotation, Status: domain.StatusDraft}

	require.NoError(t, lifecycle.Transition(doc, domain.StatusSent))
	assert.Equal(t, domain.StatusSent, doc.Status)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, domain.StatusDraft, lifecycle.InitialStatus(domain.DocumentTypeQuotation))
	assert.Equal(t, domain.StatusProcessing, lifecycle.InitialStatus(domain.DocumentTypeOrder))
	assert.Equal(t, domain.StatusPending, lifecycle.InitialStatus(domain.DocumentTypeInvoice))
	assert.Equal(t, domain.StatusDraft, lifecycle.InitialStatus(domain.DocumentTypeDeliveryChallan))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(domain.DocumentTypeInvoice, domain.StatusPaid))
	assert.True(t, lifecycle.IsTerminal(domain.DocumentTypeOrder, domain.StatusCompleted))
	assert.False(t, lifecycle.IsTerminal(domain.DocumentTypeOrder, domain.StatusShipped))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, lifecycle.IsValidStatus(domain.DocumentTypeOrder, domain.StatusCompleted))
	assert.True(t, lifecycle.IsValidStatus(domain.DocumentTypeQuotation, domain.StatusExpired))
	assert.False(t, lifecycle.IsValidStatus(domain.DocumentTypeInvoice, domain.StatusOverdue))
	assert.False(t, lifecycle.IsValidStatus(domain.DocumentTypeQuotation, domain.StatusPaid))
}

func TestEffectiveStatus_DerivesOverdue(t *testing.T) {
	now := time.Date(2025, time.August, 10, 12, 0, 0, 0, time.UTC)
	past := time.Date(2025, time.August, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	pending := &domain.Document{DocumentType: domain.DocumentTypeInvoice, Status: domain.StatusPending, DueDate: &past}
	dueToday := &domain.Document{DocumentType: domain.DocumentTypeInvoice, Status: domain.StatusPending, DueDate: &today}
	paid := &domain.Document{DocumentType: domain.DocumentTypeInvoice, Status: domain.StatusPaid, DueDate: &past}
	quote := &domain.Document{DocumentType: domain.DocumentTypeQuotation, Status: domain.StatusSent, DueDate: &past}

	assert.Equal(t, domain.StatusOverdue, lifecycle.EffectiveStatus(pending, now))
	assert.Equal(t, domain.StatusPending, pending.Status, "stored status is not changed")
	assert.Equal(t, domain.StatusPending, lifecycle.EffectiveStatus(dueToday, now))
	assert.Equal(t, domain.StatusPaid, lifecycle.EffectiveStatus(paid, now))
	assert.Equal(t, domain.StatusSent, lifecycle.EffectiveStatus(quote, now))
}

func TestJobTransitions(t *testing.T) {
	job := &domain.ManufacturingJob{Status: domain.JobStatusPending}

	require.NoError(t, lifecycle.TransitionJob(job, "started"))
	assert.Equal(t, domain.JobStatusInProgress, job.Status)

	err := lifecycle.TransitionJob(job, domain.JobStatusPacked)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Equal(t, domain.JobStatusInProgress, job.Status)

	for _, next := range []domain.JobStatus{domain.JobStatusInAssembly, domain.JobStatusQA, domain.JobStatusPacked, domain.JobStatusShipped} {
		require.NoError(t, lifecycle.TransitionJob(job, next))
	}
	assert.ErrorIs(t, lifecycle.TransitionJob(job, domain.JobStatusCancelled), domain.ErrInvalidStatusTransition)
}

func TestJobCancellation(t *testing.T) {
	assert.True(t, lifecycle.CanTransitionJob(domain.JobStatusQA, domain.JobStatusCancelled))
	assert.False(t, lifecycle.CanTransitionJob(domain.JobStatusCancelled, domain.JobStatusPending))
	assert.True(t, lifecycle.IsValidJobStatus("in-assembly"))
	assert.False(t, lifecycle.IsValidJobStatus("archived"))
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, lifecycle.Badge{Label: "Overdue", Color: "red"}, lifecycle.BadgeFor("overdue"))
	assert.Equal(t, "In Progress", lifecycle.BadgeFor("in_progress").Label)
	assert.Equal(t, lifecycle.Badge{Label: "mystery", Color: "gray"}, lifecycle.BadgeFor("mystery"))
}
