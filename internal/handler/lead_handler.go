package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// LeadHandler handles lead endpoints.
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create handles POST /api/v1/leads
// @Summary Create a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param request body service.LeadInput true "Lead details"
// @Success 201 {object} Response{data=domain.Lead} "Lead created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, lead)
}

// List handles GET /api/v1/leads
// @Summary List leads
// @Tags leads
// @Produce json
// @Param status query string false "Filter by status (new, contacted, qualified, lost, converted)"
// @Param search query string false "Match name, company name or email"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Lead,meta=PagMeta} "List of leads"
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	leads, total, err := h.leadService.List(c.Request.Context(), tenantID,
		domain.LeadStatus(c.Query("status")), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, leads, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/leads/:id
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} Response{data=domain.Lead} "Lead details"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	leadID, ok := parseID(c, "id", "lead")
	if !ok {
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), tenantID, leadID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Update handles PUT /api/v1/leads/:id
// @Summary Update a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param request body service.LeadInput true "Lead details"
// @Success 200 {object} Response{data=domain.Lead} "Lead updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	leadID, ok := parseID(c, "id", "lead")
	if !ok {
		return
	}

	var input service.LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), tenantID, leadID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, lead)
}

// Delete handles DELETE /api/v1/leads/:id
// @Summary Delete a lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Lead deleted"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	leadID, ok := parseID(c, "id", "lead")
	if !ok {
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), tenantID, leadID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "lead deleted"})
}

// CreateQuotation handles POST /api/v1/leads/:id/quotation
// @Summary Draft a quotation for a lead
// @Description Creates a draft quotation addressed to the lead with the next free quotation number.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param request body service.LeadQuotationInput false "Quotation items and notes"
// @Success 201 {object} Response{data=domain.Document} "Quotation created"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Security BearerAuth
// @Router /leads/{id}/quotation [post]
func (h *LeadHandler) CreateQuotation(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	leadID, ok := parseID(c, "id", "lead")
	if !ok {
		return
	}

	var input service.LeadQuotationInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	doc, err := h.leadService.CreateQuotation(c.Request.Context(), tenantID, leadID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// ConvertToCustomer handles POST /api/v1/leads/:id/convert-to-customer
// @Summary Convert a lead into a customer
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 201 {object} Response{data=domain.Customer} "Customer created"
// @Failure 404 {object} ErrorResponseBody "Lead not found"
// @Failure 409 {object} ErrorResponseBody "Lead already converted"
// @Security BearerAuth
// @Router /leads/{id}/convert-to-customer [post]
func (h *LeadHandler) ConvertToCustomer(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	leadID, ok := parseID(c, "id", "lead")
	if !ok {
		return
	}

	customer, err := h.leadService.ConvertToCustomer(c.Request.Context(), tenantID, leadID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, customer)
}
