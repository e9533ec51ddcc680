package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
	"salesdocs/internal/handler"
	"salesdocs/internal/router"
	"salesdocs/internal/service"
	"salesdocs/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	engine    *gin.Engine
	auth      *mocks.MockAuthService
	companies *mocks.MockCompanyRepo
	docs      *mocks.MockDocumentService
}

func newFixture() *fixture {
	f := &fixture{
		auth:      new(mocks.MockAuthService),
		companies: new(mocks.MockCompanyRepo),
		docs:      new(mocks.MockDocumentService),
	}
	h := router.Handlers{
		Jobs:         handler.NewJobHandler(new(mocks.MockJobService)),
		Customers:    handler.NewCustomerHandler(new(mocks.MockCustomerService)),
		Leads:        handler.NewLeadHandler(new(mocks.MockLeadService)),
		PrintConfigs: handler.NewPrintConfigHandler(new(mocks.MockPrintConfigService)),
		Companies:    handler.NewCompanyHandler(new(mocks.MockCompanyService)),
		Stats:        handler.NewStatsHandler(new(mocks.MockStatsService)),
		Health:       handler.NewHealthHandler(nil, nil),
	}
	for _, t := range []domain.DocumentType{
		domain.DocumentTypeQuotation, domain.DocumentTypeProforma, domain.DocumentTypeOrder,
		domain.DocumentTypeInvoice, domain.DocumentTypePurchaseOrder, domain.DocumentTypeDeliveryChallan,
	} {
		h.Documents = append(h.Documents, handler.NewDocumentHandler(t, f.docs))
	}
	f.engine = router.Setup(f.auth, h, router.Options{TenantLookup: f.companies})
	return f
}

func (f *fixture) login(tenantID uuid.UUID, role domain.UserRole, active bool) {
	f.auth.On("ValidateToken", "token").Return(&service.Claims{TenantID: tenantID, UserID: uuid.New(), Role: role}, nil)
	f.companies.On("GetByID", mock.Anything, tenantID).Return(&domain.Company{ID: tenantID, IsActive: active}, nil)
}

func TestSetup_RegistersRoutes(t *testing.T) {
	f := newFixture()

	registered := map[string]bool{}
	for _, r := range f.engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"POST /api/v1/quotations",
		"GET /api/v1/purchase-orders/:id",
		"PATCH /api/v1/delivery-challans/:id/status",
		"GET /api/v1/invoices/:id/download-pdf",
		"POST /api/v1/invoices/:id/send",
		"GET /api/v1/orders/:id/derived",
		"GET /api/v1/proformas/:id/audit",
		"GET /api/v1/invoices/:id/validation",
		"POST /api/v1/quotations/:id/convert-to-proforma",
		"POST /api/v1/quotations/:id/convert-to-invoice",
		"POST /api/v1/quotations/:id/convert-to-order",
		"POST /api/v1/quotations/:id/convert-to-delivery-challan",
		"POST /api/v1/orders/:id/convert-to-invoice",
		"GET /api/v1/quotations/:id/proforma-invoice",
		"GET /api/v1/quotations/:id/delivery-challan",
		"POST /api/v1/orders/:id/manufacturing-job",
		"PATCH /api/v1/manufacturing-jobs/:id/status",
		"POST /api/v1/leads/:id/quotation",
		"POST /api/v1/leads/:id/convert-to-customer",
		"PUT /api/v1/print-configs/:type",
		"GET /api/v1/stats",
		"POST /api/v1/admin/companies",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	assert.False(t, registered["POST /api/v1/invoices/:id/convert-to-order"])
	assert.False(t, registered["GET /swagger/*any"])
}

func TestSetup_DocumentRouteThroughMiddleware(t *testing.T) {
	f := newFixture()
	tenantID := uuid.New()
	f.login(tenantID, domain.RoleMember, true)
	f.docs.On("Get", mock.Anything, tenantID, domain.DocumentTypePurchaseOrder, "AC-PO25-25-07-001").
		Return(&domain.Document{Number: "AC-PO25-25-07-001"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/purchase-orders/AC-PO25-25-07-001", http.NoBody)
	req.Header.Set("Authorization", "Bearer token")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	f.docs.AssertExpectations(t)
}

func TestSetup_InactiveTenantBlocked(t *testing.T) {
	f := newFixture()
	f.login(uuid.New(), domain.RoleMember, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", http.NoBody)
	req.Header.Set("Authorization", "Bearer token")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.docs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSetup_DeleteRequiresAdmin(t *testing.T) {
	f := newFixture()
	f.login(uuid.New(), domain.RoleMember, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/invoices/"+uuid.New().String(), http.NoBody)
	req.Header.Set("Authorization", "Bearer token")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetup_Unauthenticated(t *testing.T) {
	f := newFixture()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotations", http.NoBody)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
