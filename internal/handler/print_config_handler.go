package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdocs/internal/domain"
	"salesdocs/internal/service"
)

// PrintConfigHandler handles per-document-type print settings.
type PrintConfigHandler struct {
	printConfigService service.PrintConfigService
}

// NewPrintConfigHandler creates a new PrintConfigHandler.
func NewPrintConfigHandler(printConfigService service.PrintConfigService) *PrintConfigHandler {
	return &PrintConfigHandler{printConfigService: printConfigService}
}

// Get handles GET /api/v1/print-configs/:type
// @Summary Get print settings for a document type
// @Tags print-configs
// @Produce json
// @Param type path string true "Document type" Enums(quotation, proforma, order, invoice, purchase_order, delivery_challan)
// @Success 200 {object} Response{data=domain.PrintConfig} "Print settings"
// @Failure 400 {object} ErrorResponseBody "Unknown document type"
// @Security BearerAuth
// @Router /print-configs/{type} [get]
func (h *PrintConfigHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	cfg, err := h.printConfigService.Get(c.Request.Context(), tenantID, domain.DocumentType(c.Param("type")))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cfg)
}

// Save handles PUT /api/v1/print-configs/:type
// @Summary Save print settings for a document type
// @Tags print-configs
// @Accept json
// @Produce json
// @Param type path string true "Document type"
// @Param request body domain.PrintConfig true "Print settings"
// @Success 200 {object} Response{data=domain.PrintConfig} "Saved settings"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /print-configs/{type} [put]
func (h *PrintConfigHandler) Save(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var cfg domain.PrintConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	saved, err := h.printConfigService.Save(c.Request.Context(), tenantID, domain.DocumentType(c.Param("type")), cfg)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, saved)
}

// Reset handles DELETE /api/v1/print-configs/:type
// @Summary Reset print settings to defaults
// @Tags print-configs
// @Produce json
// @Param type path string true "Document type"
// @Success 200 {object} Response{data=domain.PrintConfig} "Default settings"
// @Security BearerAuth
// @Router /print-configs/{type} [delete]
func (h *PrintConfigHandler) Reset(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	cfg, err := h.printConfigService.Reset(c.Request.Context(), tenantID, domain.DocumentType(c.Param("type")))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cfg)
}
