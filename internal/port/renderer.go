package port

import (
	"context"

	"salesdocs/internal/calc"
	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
)

// RenderRequest is everything the rendering collaborator needs to print a document.
type RenderRequest struct {
	// Template selects the layout; it is the document type unless a print variant
	// such as a proforma invoice of a quotation is requested.
	Template    string             `json:"template"`
	Document    *domain.Document   `json:"document"`
	Lines       []calc.LineResult  `json:"lines"`
	PrintConfig domain.PrintConfig `json:"print_config"`
	Company     *domain.Company    `json:"company"`
	StatusBadge lifecycle.Badge    `json:"status_badge"`
}

// DocumentRenderer turns a finalized document into PDF bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}
