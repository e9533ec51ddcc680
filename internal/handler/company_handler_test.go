package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"salesdocs/internal/domain"
	"salesdocs/internal/handler"
	"salesdocs/internal/service"
	"salesdocs/mocks"
)

func TestCompanyHandler_Create(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateCompanyInput) bool {
		return in.Name == "Acme Fabricators" && in.Slug == "acme" && in.DocumentPrefix == "AC"
	})).Return(&domain.Company{ID: uuid.New(), Name: "Acme Fabricators", DocumentPrefix: "AC"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/api/v1/admin/companies", map[string]string{
		"name": "Acme Fabricators", "slug": "acme", "document_prefix": "AC",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCompanyHandler_Create_DuplicateSlug(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateTenantSlug)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/api/v1/admin/companies", map[string]string{"name": "Acme", "slug": "acme"})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SLUG", decodeResponse(t, w).Error.Code)
}

func TestCompanyHandler_Update(t *testing.T) {
	mockSvc := new(mocks.MockCompanyService)
	h := handler.NewCompanyHandler(mockSvc)
	id := uuid.New()

	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateCompanyInput) bool {
		return in.IsActive != nil && !*in.IsActive && in.Name == nil
	})).Return(&domain.Company{ID: id, IsActive: false}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPut, "/", map[string]bool{"is_active": false})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestPrintConfigHandler(t *testing.T) {
	mockSvc := new(mocks.MockPrintConfigService)
	h := handler.NewPrintConfigHandler(mockSvc)
	tenantID := uuid.New()

	custom := domain.DefaultPrintConfig()
	custom.ShowLogo = false
	mockSvc.On("Save", mock.Anything, tenantID, domain.DocumentTypeInvoice, mock.MatchedBy(func(cfg domain.PrintConfig) bool {
		return !cfg.ShowLogo
	})).Return(custom, nil)
	mockSvc.On("Get", mock.Anything, tenantID, domain.DocumentType("receipt")).
		Return(domain.PrintConfig{}, domain.NewValidationError("type", `unknown document type "receipt"`))

	t.Run("save", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newRequest(t, http.MethodPut, "/", custom)
		c.Params = gin.Params{{Key: "type", Value: "invoice"}}
		setAuthContext(c, tenantID, uuid.New(), "admin")

		h.Save(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newRequest(t, http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "type", Value: "receipt"}}
		setAuthContext(c, tenantID, uuid.New(), "member")

		h.Get(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatsHandler_GetStats(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)
	tenantID := uuid.New()

	mockSvc.On("GetStats", mock.Anything, tenantID).Return(&domain.Stats{
		TotalInvoices:     3,
		InvoicedAmount:    decimal.NewFromInt(7080),
		OutstandingAmount: decimal.NewFromInt(2360),
		OverdueInvoices:   1,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/stats", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["overdue_invoices"])
	assert.Equal(t, "7080", data["invoiced_amount"])
}

func TestStatsHandler_InternalError(t *testing.T) {
	mockSvc := new(mocks.MockStatsService)
	h := handler.NewStatsHandler(mockSvc)
	mockSvc.On("GetStats", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/stats", nil)
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.GetStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		h := handler.NewHealthHandler(nil, map[string]handler.ReadinessCheck{
			"redis": func(context.Context) error { return nil },
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newRequest(t, http.MethodGet, "/readyz", nil)

		h.Readiness(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing dependency", func(t *testing.T) {
		h := handler.NewHealthHandler(nil, map[string]handler.ReadinessCheck{
			"redis": func(context.Context) error { return errors.New("dial tcp: refused") },
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = newRequest(t, http.MethodGet, "/readyz", nil)

		h.Readiness(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "redis not reachable")
	})
}
