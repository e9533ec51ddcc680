package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"salesdocs/internal/calc"
	"salesdocs/internal/domain"
	"salesdocs/internal/lifecycle"
	"salesdocs/internal/port"
)

// RenderDocumentInput is the DTO for printing a document. Variant prints the document in
// the layout of another type, e.g. a quotation as a proforma invoice; empty prints it as
// its own type.
type RenderDocumentInput struct {
	TenantID     uuid.UUID
	DocumentType domain.DocumentType
	DocumentID   uuid.UUID
	Variant      domain.DocumentType
}

// RenderedDocument is a printed document. DownloadURL is set when the PDF was archived.
type RenderedDocument struct {
	Filename    string
	Content     []byte
	DownloadURL string
}

// SendDocumentInput is the DTO for emailing a document link to its party.
// ToEmail and ToName override the party snapshot.
type SendDocumentInput struct {
	TenantID     uuid.UUID
	DocumentType domain.DocumentType
	DocumentID   uuid.UUID
	UserID       uuid.UUID
	ToEmail      string
	ToName       string
	Message      string
}

// printVariants lists the layouts a document type may additionally be printed in.
var printVariants = map[domain.DocumentType][]domain.DocumentType{
	domain.DocumentTypeQuotation: {domain.DocumentTypeProforma, domain.DocumentTypeDeliveryChallan},
}

func variantAllowed(docType, variant domain.DocumentType) bool {
	if variant == "" || variant == docType {
		return true
	}
	for _, v := range printVariants[docType] {
		if v == variant {
			return true
		}
	}
	return false
}

func (s *documentService) Render(ctx context.Context, input *RenderDocumentInput) (*RenderedDocument, error) {
	if s.renderer == nil {
		return nil, domain.ErrRendererUnavailable
	}
	doc, err := s.load(ctx, input.TenantID, input.DocumentType, input.DocumentID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, doc, input.Variant)
}

func (s *documentService) render(ctx context.Context, doc *domain.Document, variant domain.DocumentType) (*RenderedDocument, error) {
	if !variantAllowed(doc.DocumentType, variant) {
		return nil, fmt.Errorf("%w: %s cannot be printed as %s", domain.ErrUnsupportedConversion, doc.DocumentType, variant)
	}
	layout := doc.DocumentType
	if variant != "" {
		layout = variant
	}
	s.present(doc)

	lines, err := calc.ComputeLines(doc.Items)
	if err != nil {
		return nil, err
	}

	printCfg := domain.DefaultPrintConfig()
	if s.printConfigs != nil {
		if printCfg, err = s.printConfigs.Load(ctx, doc.TenantID, layout); err != nil {
			log.Printf("documentService.render: print config for %s/%s unavailable, using defaults: %v", doc.TenantID, layout, err)
			printCfg = domain.DefaultPrintConfig()
		}
	}

	var company *domain.Company
	if s.companyRepo != nil {
		if company, err = s.companyRepo.GetByID(ctx, doc.TenantID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("looking up company: %w", err)
		}
	}

	pdf, err := s.renderer.Render(ctx, port.RenderRequest{
		Template:    templateName(doc.DocumentType, variant),
		Document:    doc,
		Lines:       lines,
		PrintConfig: printCfg,
		Company:     company,
		StatusBadge: lifecycle.BadgeFor(string(doc.Status)),
	})
	if err != nil {
		return nil, err
	}

	out := &RenderedDocument{Filename: pdfFilename(doc, variant), Content: pdf}
	if url, err := s.archive(ctx, doc, layout, out); err != nil {
		log.Printf("documentService.render: archiving %s failed: %v", doc.Number, err)
	} else {
		out.DownloadURL = url
	}
	return out, nil
}

// archive stores the PDF and returns a presigned link, or "" when archiving is disabled.
func (s *documentService) archive(ctx context.Context, doc *domain.Document, layout domain.DocumentType, out *RenderedDocument) (string, error) {
	if s.storage == nil || s.settings.Bucket == "" {
		return "", nil
	}
	key := archiveKey(doc, layout)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.settings.Bucket,
		Key:         key,
		Body:        bytes.NewReader(out.Content),
		ContentType: "application/pdf",
		Size:        int64(len(out.Content)),
		Filename:    out.Filename,
	}); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	url, err := s.storage.GetPresignedURL(ctx, s.settings.Bucket, key, s.settings.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return url, nil
}

func archiveKey(doc *domain.Document, layout domain.DocumentType) string {
	return fmt.Sprintf("tenants/%s/documents/%s/%s.pdf", doc.TenantID, doc.ID, layout)
}

func templateName(docType, variant domain.DocumentType) string {
	switch {
	case variant == "" || variant == docType:
		return string(docType)
	case variant == domain.DocumentTypeProforma:
		return "proforma_invoice"
	default:
		return string(variant)
	}
}

func pdfFilename(doc *domain.Document, variant domain.DocumentType) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, doc.Number)
	if name == "" {
		name = doc.ID.String()
	}
	if variant != "" && variant != doc.DocumentType {
		name += "-" + strings.ReplaceAll(templateName(doc.DocumentType, variant), "_", "-")
	}
	return name + ".pdf"
}

func (s *documentService) Send(ctx context.Context, input *SendDocumentInput) (*domain.Document, error) {
	doc, err := s.load(ctx, input.TenantID, input.DocumentType, input.DocumentID)
	if err != nil {
		return nil, err
	}

	from := doc.Status
	status := from

	to := strings.TrimSpace(input.ToEmail)
	if to == "" {
		to = doc.Party.Email
	}
	if to == "" || s.email == nil {
		return nil, domain.ErrEmailUnavailable
	}
	name := input.ToName
	if name == "" {
		name = doc.Party.Name
	}

	// The email only carries a link when the PDF can be archived; without a renderer it goes out bare.
	var downloadURL string
	if s.renderer != nil && s.storage != nil && s.settings.Bucket != "" {
		rendered, err := s.render(ctx, doc, "")
		switch {
		case errors.Is(err, domain.ErrRendererUnavailable):
			log.Printf("documentService.Send: renderer unavailable, sending %s without a link", doc.Number)
		case err != nil:
			return nil, err
		default:
			downloadURL = rendered.DownloadURL
		}
	}

	companyName := ""
	if s.companyRepo != nil {
		if company, err := s.companyRepo.GetByID(ctx, doc.TenantID); err == nil {
			companyName = company.Name
		}
	}

	if err := s.email.SendDocumentEmail(ctx, port.DocumentEmail{
		ToEmail:      to,
		ToName:       name,
		CompanyName:  companyName,
		DocumentType: string(doc.DocumentType),
		Number:       doc.Number,
		TotalAmount:  doc.TotalAmount.StringFixed(2),
		DownloadURL:  downloadURL,
		Message:      input.Message,
	}); err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", doc.DocumentType, doc.Number, err)
	}

	// Drafts become sent once emailed.
	if from == domain.StatusDraft && lifecycle.CanTransition(doc.DocumentType, from, domain.StatusSent) {
		if err := s.docRepo.UpdateStatus(ctx, doc.TenantID, doc.ID, domain.StatusSent); err != nil {
			return nil, err
		}
		status = domain.StatusSent
	}
	doc.Status = status

	s.audit(ctx, doc.TenantID, doc.ID, &input.UserID, domain.AuditDocumentSent, map[string]interface{}{
		"to": to, "status_from": from, "status_to": status,
	})
	return s.present(doc), nil
}
