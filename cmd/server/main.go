// @title Sales Documents API
// @version 1.0
// @description Multi-tenant GST quotations, proformas, orders, invoices, purchase orders and delivery challans.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "salesdocs/docs"
	"salesdocs/internal/config"
	"salesdocs/internal/conversion"
	"salesdocs/internal/domain"
	"salesdocs/internal/email/noop"
	"salesdocs/internal/email/ses"
	"salesdocs/internal/handler"
	"salesdocs/internal/middleware"
	"salesdocs/internal/port"
	"salesdocs/internal/renderer"
	"salesdocs/internal/repository/postgres"
	"salesdocs/internal/repository/redisstore"
	"salesdocs/internal/router"
	"salesdocs/internal/service"
	s3storage "salesdocs/internal/storage/s3"
	"salesdocs/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	leadRepo := postgres.NewLeadRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	auditRepo := postgres.NewDocumentAuditRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	readiness := map[string]handler.ReadinessCheck{}

	// Print configurations live in Redis when configured
	printConfigs := redisstore.NewMemoryPrintConfigStore()
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		printConfigs = redisstore.NewPrintConfigStore(rdb, cfg.Redis.KeyPrefix)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Println("redis not configured, print configurations are kept in memory")
	}

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.S3.Bucket != "" {
		archive, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("s3 bucket not configured, rendered PDFs are not archived")
	}

	sender, err := newEmailSender(ctx, cfg.Email)
	if err != nil {
		return err
	}

	settings := service.DocumentSettings{
		Location:                 cfg.Numbering.Location,
		MaxNumberRetries:         cfg.Numbering.MaxRetries,
		RequireAcceptedQuotation: cfg.Documents.RequireAcceptedQuotation,
		DueDays:                  dueDays(cfg.Documents),
		Bucket:                   cfg.S3.Bucket,
		PresignExpiry:            cfg.S3.PresignExpiry,
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	docSvc := service.NewDocumentService(service.DocumentServiceDeps{
		Documents:    docRepo,
		Customers:    customerRepo,
		Leads:        leadRepo,
		Companies:    companyRepo,
		Audit:        auditRepo,
		Validator:    validator.NewEngine(validator.DefaultRegistry()),
		Renderer:     renderer.New(&cfg.Renderer),
		PrintConfigs: printConfigs,
		Storage:      archive,
		Email:        sender,
	}, settings)
	jobSvc := service.NewJobService(jobRepo, docRepo, customerRepo, companyRepo, settings, cfg.Documents.JobDueDays)
	customerSvc := service.NewCustomerService(customerRepo)
	leadSvc := service.NewLeadService(leadRepo, docSvc)
	companySvc := service.NewCompanyService(companyRepo)
	printConfigSvc := service.NewPrintConfigService(printConfigs)
	statsSvc := service.NewStatsService(statsRepo, cfg.Numbering.Location)

	// Initialize handlers
	docTypes := []domain.DocumentType{
		domain.DocumentTypeQuotation,
		domain.DocumentTypeProforma,
		domain.DocumentTypeOrder,
		domain.DocumentTypeInvoice,
		domain.DocumentTypePurchaseOrder,
		domain.DocumentTypeDeliveryChallan,
	}
	handlers := router.Handlers{
		Jobs:         handler.NewJobHandler(jobSvc),
		Customers:    handler.NewCustomerHandler(customerSvc),
		Leads:        handler.NewLeadHandler(leadSvc),
		PrintConfigs: handler.NewPrintConfigHandler(printConfigSvc),
		Companies:    handler.NewCompanyHandler(companySvc),
		Stats:        handler.NewStatsHandler(statsSvc),
		Health:       handler.NewHealthHandler(db, readiness),
	}
	for _, t := range docTypes {
		handlers.Documents = append(handlers.Documents, handler.NewDocumentHandler(t, docSvc))
	}

	opts := router.Options{
		CORS:          middleware.CORS(cfg.CORS),
		TenantLookup:  companyRepo,
		EnableSwagger: cfg.Server.Environment != "production",
	}
	if cfg.RateLimit.Enabled {
		opts.RateLimit, err = middleware.RateLimit(cfg.RateLimit)
		if err != nil {
			return err
		}
	}

	// Setup router
	r := router.Setup(authSvc, handlers, opts)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	default:
		log.Printf("email provider %q, documents are logged instead of sent", cfg.Provider)
		return noop.NewNoopSender(), nil
	}
}

// dueDays overlays the configured quotation and invoice validity on the defaults.
func dueDays(cfg config.DocumentsConfig) map[domain.DocumentType]int {
	days := make(map[domain.DocumentType]int, len(conversion.DefaultDueDays))
	for t, d := range conversion.DefaultDueDays {
		days[t] = d
	}
	if cfg.QuotationDueDays > 0 {
		days[domain.DocumentTypeQuotation] = cfg.QuotationDueDays
	}
	if cfg.InvoiceDueDays > 0 {
		days[domain.DocumentTypeInvoice] = cfg.InvoiceDueDays
	}
	return days
}
