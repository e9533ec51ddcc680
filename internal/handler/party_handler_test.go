package handler_test

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
	"salesdocs/internal/service"
	"salesdocs/mocks"
)

func TestCustomerHandler_Create(t *testing.T) {
	mockSvc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(mockSvc)
	tenantID, userID := uuid.New(), uuid.New()

	mockSvc.On("Create", mock.Anything, tenantID, userID, mock.MatchedBy(func(in service.CustomerInput) bool {
		return in.Name == "Asha Traders" && in.GSTIN == "27AAPFU0939F1ZV"
	})).Return(&domain.Customer{ID: uuid.New(), Name: "Asha Traders"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/api/v1/customers", map[string]string{
		"name": "Asha Traders", "gstin": "27AAPFU0939F1ZV",
	})
	setAuthContext(c, tenantID, userID, "member")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_Create_MissingName(t *testing.T) {
	mockSvc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/api/v1/customers", map[string]string{"email": "a@b.in"})
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerHandler_List_Search(t *testing.T) {
	mockSvc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(mockSvc)
	tenantID := uuid.New()

	mockSvc.On("List", mock.Anything, tenantID, "asha", 0, 20).Return([]domain.Customer{{Name: "Asha Traders"}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/customers?search=asha", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(mockSvc)
	customerID := uuid.New()

	mockSvc.On("GetByID", mock.Anything, mock.Anything, customerID).Return(nil, domain.ErrCustomerNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestLeadHandler_CreateQuotation(t *testing.T) {
	mockSvc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(mockSvc)
	tenantID, userID, leadID := uuid.New(), uuid.New(), uuid.New()

	mockSvc.On("CreateQuotation", mock.Anything, tenantID, leadID, userID, mock.MatchedBy(func(in service.LeadQuotationInput) bool {
		return in.Notes == "Site visit Monday" && len(in.Items) == 1
	})).Return(&domain.Document{Number: "RX-VQ25-25-07-001", LeadID: &leadID}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/", map[string]interface{}{
		"notes": "Site visit Monday",
		"items": []map[string]interface{}{{"description": "Mezzanine floor", "quantity": 1, "rate": 250000}},
	})
	c.Params = gin.Params{{Key: "id", Value: leadID.String()}}
	setAuthContext(c, tenantID, userID, "member")

	h.CreateQuotation(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLeadHandler_ConvertToCustomer(t *testing.T) {
	tests := []struct {
		name   string
		ret    *domain.Customer
		err    error
		status int
	}{
		{name: "converted", ret: &domain.Customer{ID: uuid.New(), Name: "Ravi"}, status: http.StatusCreated},
		{name: "already converted", err: domain.ErrLeadConverted, status: http.StatusConflict},
		{name: "missing lead", err: domain.ErrLeadNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockLeadService)
			h := handler.NewLeadHandler(mockSvc)
			leadID := uuid.New()

			if tt.ret != nil {
				mockSvc.On("ConvertToCustomer", mock.Anything, mock.Anything, leadID, mock.Anything).Return(tt.ret, nil)
			} else {
				mockSvc.On("ConvertToCustomer", mock.Anything, mock.Anything, leadID, mock.Anything).Return(nil, tt.err)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = newRequest(t, http.MethodPost, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: leadID.String()}}
			setAuthContext(c, uuid.New(), uuid.New(), "member")

			h.ConvertToCustomer(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestLeadHandler_List_StatusFilter(t *testing.T) {
	mockSvc := new(mocks.MockLeadService)
	h := handler.NewLeadHandler(mockSvc)
	tenantID := uuid.New()

	mockSvc.On("List", mock.Anything, tenantID, domain.LeadStatusQualified, "", 0, 20).Return([]domain.Lead{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/leads?status=qualified", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
