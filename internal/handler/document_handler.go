package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// DocumentHandler serves one document type. The router mounts one instance per type, so
// quotations, invoices and the rest share every endpoint below.
type DocumentHandler struct {
	docType         domain.DocumentType
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler for docType.
func NewDocumentHandler(docType domain.DocumentType, documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docType: docType, documentService: documentService}
}

// DocumentType returns the type this handler serves.
func (h *DocumentHandler) DocumentType() domain.DocumentType {
	return h.docType
}

// Create handles POST /api/v1/{documents}
// @Summary Create a document
// @Description Create a document of the collection's type. An empty number is generated from the company prefix; totals are always recomputed.
// @Tags documents
// @Accept json
// @Produce json
// @Param documents path string true "Document collection" Enums(quotations, proformas, orders, invoices, purchase-orders, delivery-challans)
// @Param request body DocumentRequest true "Document fields"
// @Success 201 {object} Response{data=domain.Document} "Document created"
// @Failure 400 {object} ErrorResponseBody "Validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Number already exists"
// @Security BearerAuth
// @Router /{documents} [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.DocumentFields
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), &service.CreateDocumentInput{
		TenantID:     tenantID,
		DocumentType: h.docType,
		CreatedBy:    userID,
		Fields:       req,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/{documents}
// @Summary List documents
// @Description List documents of the collection's type, newest first. status=overdue lists pending invoices past their due date.
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param status query string false "Filter by status"
// @Param customer_id query string false "Filter by customer ID"
// @Param lead_id query string false "Filter by lead ID"
// @Param search query string false "Match number or party name"
// @Param from query string false "Documents dated on or after (YYYY-MM-DD)"
// @Param to query string false "Documents dated on or before (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /{documents} [get]
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	filter := domain.DocumentFilter{
		TenantID:     tenantID,
		DocumentType: h.docType,
		Status:       domain.DocumentStatus(c.Query("status")),
		Search:       strings.TrimSpace(c.Query("search")),
		Offset:       offset,
		Limit:        limit,
	}

	for _, q := range []struct {
		name string
		dst  **uuid.UUID
	}{{"customer_id", &filter.CustomerID}, {"lead_id", &filter.LeadID}} {
		if raw := c.Query(q.name); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+q.name)
				return
			}
			*q.dst = &id
		}
	}
	for _, q := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		if raw := c.Query(q.name); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", q.name+" must be YYYY-MM-DD")
				return
			}
			*q.dst = &t
		}
	}

	docs, total, err := h.documentService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/{documents}/:id
// @Summary Get a document
// @Description Get a document by ID or by number
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID) or number"
// @Success 200 {object} Response{data=domain.Document} "Document details"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), tenantID, h.docType, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Update handles PUT /api/v1/{documents}/:id
// @Summary Replace a document
// @Description Replace every editable field. The number cannot change. Send expected_updated_at to reject concurrent edits.
// @Tags documents
// @Accept json
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Param request body UpdateDocumentRequest true "Document fields"
// @Success 200 {object} Response{data=domain.Document} "Document updated"
// @Failure 400 {object} ErrorResponseBody "Validation failed or number changed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document was modified concurrently"
// @Security BearerAuth
// @Router /{documents}/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), &service.UpdateDocumentInput{
		TenantID:          tenantID,
		DocumentType:      h.docType,
		DocumentID:        docID,
		UserID:            userID,
		Fields:            req.DocumentFields,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// UpdateStatus handles PATCH /api/v1/{documents}/:id/status
// @Summary Change document status
// @Description Move the document along its status machine. overdue cannot be set; it is derived from the due date.
// @Tags documents
// @Accept json
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Param request body StatusRequest true "Target status"
// @Success 200 {object} Response{data=domain.Document} "Status changed"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Transition not allowed"
// @Security BearerAuth
// @Router /{documents}/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Request.Context(), &service.UpdateStatusInput{
		TenantID:     tenantID,
		DocumentType: h.docType,
		DocumentID:   docID,
		UserID:       userID,
		Status:       domain.DocumentStatus(req.Status),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/{documents}/:id
// @Summary Delete a document
// @Description Delete a document. Documents converted from it keep their copied data.
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, h.docType, docID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Validation handles GET /api/v1/{documents}/:id/validation
// @Summary Validate a stored document
// @Description Run every validation rule against the document and report errors and warnings by field path
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=ValidationResponse} "Validation report"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id}/validation [get]
func (h *DocumentHandler) Validation(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	report, err := h.documentService.Validate(c.Request.Context(), tenantID, h.docType, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Derived handles GET /api/v1/{documents}/:id/derived
// @Summary List derived documents
// @Description List documents converted from this one
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Document} "Derived documents"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id}/derived [get]
func (h *DocumentHandler) Derived(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	docs, err := h.documentService.ListDerived(c.Request.Context(), tenantID, h.docType, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, docs)
}

// Audit handles GET /api/v1/{documents}/:id/audit
// @Summary Get document audit trail
// @Description List the recorded changes of a document, newest first
// @Tags documents
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Param action query string false "Only entries of this action, e.g. document.status_changed"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DocumentAuditEntry,meta=PagMeta} "Audit entries"
// @Failure 400 {object} ErrorResponseBody "Unknown action"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id}/audit [get]
func (h *DocumentHandler) Audit(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	action := domain.AuditAction(c.Query("action"))
	entries, total, err := h.documentService.ListAudit(c.Request.Context(), tenantID, h.docType, docID, action, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DownloadPDF handles GET /api/v1/{documents}/:id/download-pdf
// @Summary Download document PDF
// @Description Render the document through the PDF renderer. When archiving is enabled the response carries the presigned archive link in X-Download-URL.
// @Tags documents
// @Produce application/pdf
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 503 {object} ErrorResponseBody "Renderer unavailable"
// @Security BearerAuth
// @Router /{documents}/{id}/download-pdf [get]
func (h *DocumentHandler) DownloadPDF(c *gin.Context) {
	h.renderPDF(c, "")
}

// PrintAs returns a handler printing the document in the layout of variant, e.g. a
// quotation as a proforma invoice.
// @Summary Print a quotation variant
// @Description Render a quotation as a proforma invoice or a delivery challan without creating a new document
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 503 {object} ErrorResponseBody "Renderer unavailable"
// @Security BearerAuth
// @Router /quotations/{id}/proforma-invoice [get]
// @Router /quotations/{id}/delivery-challan [get]
func (h *DocumentHandler) PrintAs(variant domain.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderPDF(c, variant)
	}
}

func (h *DocumentHandler) renderPDF(c *gin.Context, variant domain.DocumentType) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	out, err := h.documentService.Render(c.Request.Context(), &service.RenderDocumentInput{
		TenantID:     tenantID,
		DocumentType: h.docType,
		DocumentID:   docID,
		Variant:      variant,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.DownloadURL != "" {
		c.Header("X-Download-URL", out.DownloadURL)
	}
	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out.Content)
}

// Send handles POST /api/v1/{documents}/:id/send
// @Summary Email a document
// @Description Email the document link to the party, or to to_email when given. Drafts become sent.
// @Tags documents
// @Accept json
// @Produce json
// @Param documents path string true "Document collection"
// @Param id path string true "Document ID (UUID)"
// @Param request body SendDocumentRequest false "Recipient override and message"
// @Success 200 {object} Response{data=domain.Document} "Document sent"
// @Failure 400 {object} ErrorResponseBody "No recipient email"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{documents}/{id}/send [post]
func (h *DocumentHandler) Send(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseID(c, "id", "document")
	if !ok {
		return
	}

	var req SendDocumentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	doc, err := h.documentService.Send(c.Request.Context(), &service.SendDocumentInput{
		TenantID:     tenantID,
		DocumentType: h.docType,
		DocumentID:   docID,
		UserID:       userID,
		ToEmail:      req.ToEmail,
		ToName:       req.ToName,
		Message:      req.Message,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// ConvertTo returns a handler deriving a document of target from the addressed one.
// @Summary Convert a document
// @Description Create a new document of the target type from this one. The new document gets its own number, date and recomputed totals, and references the source.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Source document ID (UUID)"
// @Param request body ConvertRequest false "Optional replacement items"
// @Success 201 {object} Response{data=domain.Document} "Document created"
// @Failure 400 {object} ErrorResponseBody "Unsupported conversion or validation failed"
// @Failure 404 {object} ErrorResponseBody "Source not found"
// @Failure 409 {object} ErrorResponseBody "Quotation not accepted"
// @Failure 422 {object} ErrorResponseBody "Source missing party or items"
// @Security BearerAuth
// @Router /quotations/{id}/convert-to-invoice [post]
// @Router /quotations/{id}/convert-to-proforma [post]
// @Router /quotations/{id}/convert-to-order [post]
// @Router /quotations/{id}/convert-to-delivery-challan [post]
// @Router /orders/{id}/convert-to-invoice [post]
func (h *DocumentHandler) ConvertTo(target domain.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, userID, _, ok := extractAuthContext(c)
		if !ok {
			return
		}
		sourceID, ok := parseID(c, "id", "document")
		if !ok {
			return
		}

		var req ConvertRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
				return
			}
		}

		doc, err := h.documentService.Convert(c.Request.Context(), &service.ConvertDocumentInput{
			TenantID:   tenantID,
			SourceType: h.docType,
			SourceID:   sourceID,
			TargetType: target,
			UserID:     userID,
			Items:      req.Items,
		})
		if err != nil {
			HandleError(c, err)
			return
		}

		RespondCreated(c, doc)
	}
}
