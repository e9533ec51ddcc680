package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// JobHandler handles manufacturing job endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateFromOrder handles POST /api/v1/orders/:id/manufacturing-job
// @Summary Start manufacturing for an order
// @Description Create a manufacturing job carrying the order's items, due in seven days
// @Tags manufacturing-jobs
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body CreateJobFromOrderRequest false "Job notes"
// @Success 201 {object} Response{data=domain.ManufacturingJob} "Job created"
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 422 {object} ErrorResponseBody "Order has no items"
// @Security BearerAuth
// @Router /orders/{id}/manufacturing-job [post]
func (h *JobHandler) CreateFromOrder(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req CreateJobFromOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	job, err := h.jobService.CreateFromOrder(c.Request.Context(), tenantID, orderID, userID, req.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, job)
}

// Create handles POST /api/v1/manufacturing-jobs
// @Summary Create a manufacturing job
// @Tags manufacturing-jobs
// @Accept json
// @Produce json
// @Param request body service.JobInput true "Job details"
// @Success 201 {object} Response{data=domain.ManufacturingJob} "Job created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /manufacturing-jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, job)
}

// List handles GET /api/v1/manufacturing-jobs
// @Summary List manufacturing jobs
// @Tags manufacturing-jobs
// @Produce json
// @Param status query string false "Filter by status"
// @Param order_id query string false "List the jobs of one order"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ManufacturingJob,meta=PagMeta} "List of jobs"
// @Security BearerAuth
// @Router /manufacturing-jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if raw := c.Query("order_id"); raw != "" {
		orderID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
			return
		}
		jobs, err := h.jobService.ListByOrder(c.Request.Context(), tenantID, orderID)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, jobs, PagMeta{Total: len(jobs), Offset: 0, Limit: len(jobs)})
		return
	}

	offset, limit := parsePagination(c)
	jobs, total, err := h.jobService.List(c.Request.Context(), tenantID, domain.JobStatus(c.Query("status")), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/manufacturing-jobs/:id
// @Summary Get a manufacturing job
// @Tags manufacturing-jobs
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} Response{data=domain.ManufacturingJob} "Job details"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /manufacturing-jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "id", "job")
	if !ok {
		return
	}

	job, err := h.jobService.GetByID(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// Update handles PUT /api/v1/manufacturing-jobs/:id
// @Summary Update a manufacturing job
// @Tags manufacturing-jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Param request body service.JobInput true "Job details"
// @Success 200 {object} Response{data=domain.ManufacturingJob} "Job updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /manufacturing-jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "id", "job")
	if !ok {
		return
	}

	var input service.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), tenantID, jobID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// UpdateStatus handles PATCH /api/v1/manufacturing-jobs/:id/status
// @Summary Move a manufacturing job to its next stage
// @Description Jobs advance one stage at a time (pending, in_progress, in_assembly, qa, packed, shipped) or are cancelled. "started" is accepted for in_progress.
// @Tags manufacturing-jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Param request body JobStatusRequest true "Target status"
// @Success 200 {object} Response{data=domain.ManufacturingJob} "Status changed"
// @Failure 400 {object} ErrorResponseBody "Unknown status"
// @Failure 409 {object} ErrorResponseBody "Transition not allowed"
// @Security BearerAuth
// @Router /manufacturing-jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "id", "job")
	if !ok {
		return
	}

	var req JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	job, err := h.jobService.UpdateStatus(c.Request.Context(), tenantID, jobID, domain.JobStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// Delete handles DELETE /api/v1/manufacturing-jobs/:id
// @Summary Delete a manufacturing job
// @Tags manufacturing-jobs
// @Produce json
// @Param id path string true "Job ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Job deleted"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /manufacturing-jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseID(c, "id", "job")
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), tenantID, jobID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "manufacturing job deleted"})
}
