package handler

import (
	"time"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// Request and response types used by the handlers and by swag for API documentation.

// --- Request Types ---

// DocumentRequest is the body of a document create. It is service.DocumentFields on
// the wire.
type DocumentRequest = service.DocumentFields

// UpdateDocumentRequest represents the replace document request body.
type UpdateDocumentRequest struct {
	service.DocumentFields
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at" example:"2025-07-14T10:00:00Z"`
}

// StatusRequest represents a status change request body.
type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"accepted"`
}

// ConvertRequest represents the optional body of a conversion.
type ConvertRequest struct {
	Items domain.LineItems `json:"items"`
}

// SendDocumentRequest represents the optional body of a send.
type SendDocumentRequest struct {
	ToEmail string `json:"to_email" binding:"omitempty,email" example:"accounts@customer.in"`
	ToName  string `json:"to_name" example:"Accounts Team"`
	Message string `json:"message" example:"Please find our quotation attached."`
}

// CreateJobFromOrderRequest represents the optional body of POST /orders/:id/manufacturing-job.
type CreateJobFromOrderRequest struct {
	Notes string `json:"notes" example:"Powder coat in RAL 7016"`
}

// JobStatusRequest represents a manufacturing job status change.
type JobStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"document deleted"`
}

// ValidationResultEntry is one failed rule of a validation report.
type ValidationResultEntry struct {
	RuleKey       string `json:"rule_key" example:"format.party.gstin"`
	Severity      string `json:"severity" example:"error"`
	Passed        bool   `json:"passed" example:"false"`
	FieldPath     string `json:"field_path" example:"party.gstin"`
	ExpectedValue string `json:"expected_value" example:"^\\d{2}[A-Z]{5}\\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$"`
	ActualValue   string `json:"actual_value" example:"27ABC"`
	Message       string `json:"message" example:"Format: Party GSTIN: party.gstin does not match expected format"`
}

// ValidationResponse represents the validation report of a document.
type ValidationResponse struct {
	Valid    bool                    `json:"valid" example:"false"`
	Errors   []ValidationResultEntry `json:"errors"`
	Warnings []ValidationResultEntry `json:"warnings"`
	Checked  int                     `json:"checked" example:"14"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
