package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salesdocs/internal/conversion"
	"salesdocs/internal/domain"
	"salesdocs/internal/handler"
	"salesdocs/internal/middleware"
	"salesdocs/internal/service"
)

// collectionPaths maps each document type to its route segment under /api/v1.
var collectionPaths = map[domain.DocumentType]string{
	domain.DocumentTypeQuotation:       "/quotations",
	domain.DocumentTypeProforma:        "/proformas",
	domain.DocumentTypeOrder:           "/orders",
	domain.DocumentTypeInvoice:         "/invoices",
	domain.DocumentTypePurchaseOrder:   "/purchase-orders",
	domain.DocumentTypeDeliveryChallan: "/delivery-challans",
}

// quotationPrints are the alternative layouts a quotation can be printed in.
var quotationPrints = map[string]domain.DocumentType{
	"/proforma-invoice": domain.DocumentTypeProforma,
	"/delivery-challan": domain.DocumentTypeDeliveryChallan,
}

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Documents    []*handler.DocumentHandler
	Jobs         *handler.JobHandler
	Customers    *handler.CustomerHandler
	Leads        *handler.LeadHandler
	PrintConfigs *handler.PrintConfigHandler
	Companies    *handler.CompanyHandler
	Stats        *handler.StatsHandler
	Health       *handler.HealthHandler
}

// Options carries the optional global middleware.
type Options struct {
	CORS          gin.HandlerFunc
	RateLimit     gin.HandlerFunc
	TenantLookup  middleware.CompanyLookup
	EnableSwagger bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if opts.CORS != nil {
		r.Use(opts.CORS)
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	if opts.RateLimit != nil {
		v1.Use(opts.RateLimit)
	}

	// Protected routes - require valid JWT and an active tenant
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard(opts.TenantLookup))

	for _, dh := range h.Documents {
		path, ok := collectionPaths[dh.DocumentType()]
		if !ok {
			continue
		}
		docs := protected.Group(path)
		docs.POST("", dh.Create)
		docs.GET("", dh.List)
		docs.GET("/:id", dh.Get)
		docs.PUT("/:id", dh.Update)
		docs.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), dh.Delete)
		docs.PATCH("/:id/status", dh.UpdateStatus)
		docs.GET("/:id/validation", dh.Validation)
		docs.GET("/:id/derived", dh.Derived)
		docs.GET("/:id/audit", dh.Audit)
		docs.GET("/:id/download-pdf", dh.DownloadPDF)
		docs.POST("/:id/send", dh.Send)

		for _, target := range conversion.AllowedTargets(dh.DocumentType()) {
			docs.POST("/:id/convert-to-"+strings.ReplaceAll(string(target), "_", "-"), dh.ConvertTo(target))
		}

		switch dh.DocumentType() {
		case domain.DocumentTypeQuotation:
			for suffix, variant := range quotationPrints {
				docs.GET("/:id"+suffix, dh.PrintAs(variant))
			}
		case domain.DocumentTypeOrder:
			docs.POST("/:id/manufacturing-job", h.Jobs.CreateFromOrder)
		}
	}

	jobs := protected.Group("/manufacturing-jobs")
	jobs.POST("", h.Jobs.Create)
	jobs.GET("", h.Jobs.List)
	jobs.GET("/:id", h.Jobs.GetByID)
	jobs.PUT("/:id", h.Jobs.Update)
	jobs.PATCH("/:id/status", h.Jobs.UpdateStatus)
	jobs.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Jobs.Delete)

	customers := protected.Group("/customers")
	customers.POST("", h.Customers.Create)
	customers.GET("", h.Customers.List)
	customers.GET("/:id", h.Customers.GetByID)
	customers.PUT("/:id", h.Customers.Update)
	customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Customers.Delete)

	leads := protected.Group("/leads")
	leads.POST("", h.Leads.Create)
	leads.GET("", h.Leads.List)
	leads.GET("/:id", h.Leads.GetByID)
	leads.PUT("/:id", h.Leads.Update)
	leads.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Leads.Delete)
	leads.POST("/:id/quotation", h.Leads.CreateQuotation)
	leads.POST("/:id/convert-to-customer", h.Leads.ConvertToCustomer)

	printConfigs := protected.Group("/print-configs")
	printConfigs.GET("/:type", h.PrintConfigs.Get)
	printConfigs.PUT("/:type", middleware.RequireRole(domain.RoleAdmin), h.PrintConfigs.Save)
	printConfigs.DELETE("/:type", middleware.RequireRole(domain.RoleAdmin), h.PrintConfigs.Reset)

	protected.GET("/stats", h.Stats.GetStats)

	// Admin routes - company management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/companies", h.Companies.Create)
	admin.GET("/companies", h.Companies.List)
	admin.GET("/companies/:id", h.Companies.GetByID)
	admin.PUT("/companies/:id", h.Companies.Update)
	admin.DELETE("/companies/:id", h.Companies.Delete)

	return r
}
