package domain

// DocumentType discriminates the sales documents that share the Document shape.
type DocumentType string

const (
	DocumentTypeQuotation       DocumentType = "quotation"
	DocumentTypeProforma        DocumentType = "proforma"
	DocumentTypeOrder           DocumentType = "order"
	DocumentTypeInvoice         DocumentType = "invoice"
	DocumentTypePurchaseOrder   DocumentType = "purchase_order"
	DocumentTypeDeliveryChallan DocumentType = "delivery_challan"
)

// DocumentTypes lists every document type in the order they are usually created.
var DocumentTypes = []DocumentType{
	DocumentTypeQuotation,
	DocumentTypeProforma,
	DocumentTypeOrder,
	DocumentTypeInvoice,
	DocumentTypePurchaseOrder,
	DocumentTypeDeliveryChallan,
}

// ValidDocumentTypes is a lookup set for DocumentTypes.
var ValidDocumentTypes = map[DocumentType]bool{
	DocumentTypeQuotation:       true,
	DocumentTypeProforma:        true,
	DocumentTypeOrder:           true,
	DocumentTypeInvoice:         true,
	DocumentTypePurchaseOrder:   true,
	DocumentTypeDeliveryChallan: true,
}

// DocumentStatus is the lifecycle state of a document. The allowed values depend on the
// document type; see the lifecycle package.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusSent     DocumentStatus = "sent"
	StatusAccepted DocumentStatus = "accepted"
	StatusRejected DocumentStatus = "rejected"
	StatusExpired  DocumentStatus = "expired"

	StatusProcessing DocumentStatus = "processing"
	StatusShipped    DocumentStatus = "shipped"
	StatusDelivered  DocumentStatus = "delivered"
	StatusCompleted  DocumentStatus = "completed"
	StatusCancelled  DocumentStatus = "cancelled"

	StatusPending DocumentStatus = "pending"
	StatusPaid    DocumentStatus = "paid"
	// StatusOverdue is derived on read and never persisted.
	StatusOverdue DocumentStatus = "overdue"

	StatusIssued     DocumentStatus = "issued"
	StatusReceived   DocumentStatus = "received"
	StatusDispatched DocumentStatus = "dispatched"
)

// JobStatus is the lifecycle state of a manufacturing job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusInAssembly JobStatus = "in_assembly"
	JobStatusQA         JobStatus = "qa"
	JobStatusPacked     JobStatus = "packed"
	JobStatusShipped    JobStatus = "shipped"
	JobStatusCancelled  JobStatus = "cancelled"
)

// jobStatusAliases maps legacy spellings onto canonical job statuses.
var jobStatusAliases = map[string]JobStatus{
	"started":     JobStatusInProgress,
	"in-progress": JobStatusInProgress,
	"in-assembly": JobStatusInAssembly,
}

// NormalizeJobStatus resolves aliases such as "started" to their canonical status.
func NormalizeJobStatus(s string) JobStatus {
	if canonical, ok := jobStatusAliases[s]; ok {
		return canonical
	}
	return JobStatus(s)
}

// DiscountType controls how LineItem.Discount is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// LeadStatus tracks a pre-sale contact.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusConverted LeadStatus = "converted"
)

// ValidLeadStatuses is a lookup set of lead statuses.
var ValidLeadStatuses = map[LeadStatus]bool{
	LeadStatusNew:       true,
	LeadStatusContacted: true,
	LeadStatusQualified: true,
	LeadStatusLost:      true,
	LeadStatusConverted: true,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// AuditAction names a recorded document mutation.
type AuditAction string

const (
	AuditDocumentCreated       AuditAction = "document.created"
	AuditDocumentUpdated       AuditAction = "document.updated"
	AuditDocumentStatusChanged AuditAction = "document.status_changed"
	AuditDocumentConverted     AuditAction = "document.converted"
	AuditDocumentDeleted       AuditAction = "document.deleted"
	AuditDocumentSent          AuditAction = "document.sent"
)

// IsValid reports whether a is a recorded action.
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditDocumentCreated, AuditDocumentUpdated, AuditDocumentStatusChanged,
		AuditDocumentConverted, AuditDocumentDeleted, AuditDocumentSent:
		return true
	}
	return false
}
