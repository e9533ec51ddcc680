package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/domain"
	"salesdocs/internal/handler"
	"salesdocs/mocks"
)

func newJobHandler() (*handler.JobHandler, *mocks.MockJobService) {
	mockSvc := new(mocks.MockJobService)
	return handler.NewJobHandler(mockSvc), mockSvc
}

func TestJobHandler_CreateFromOrder(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID, userID, orderID := uuid.New(), uuid.New(), uuid.New()

	job := &domain.ManufacturingJob{ID: uuid.New(), Number: "RX-MJ25-25-07-001", OrderID: &orderID, Status: domain.JobStatusPending}
	mockSvc.On("CreateFromOrder", mock.Anything, tenantID, orderID, userID, "Powder coat").Return(job, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/", map[string]string{"notes": "Powder coat"})
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, tenantID, userID, "member")

	h.CreateFromOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "RX-MJ25-25-07-001", data["number"])
	mockSvc.AssertExpectations(t)
}

func TestJobHandler_CreateFromOrder_NoBody(t *testing.T) {
	h, mockSvc := newJobHandler()
	orderID := uuid.New()

	mockSvc.On("CreateFromOrder", mock.Anything, mock.Anything, orderID, mock.Anything, "").
		Return(nil, domain.ErrIncompleteSourceDocument)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodPost, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.CreateFromOrder(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestJobHandler_List_ByOrder(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID, orderID := uuid.New(), uuid.New()

	mockSvc.On("ListByOrder", mock.Anything, tenantID, orderID).
		Return([]domain.ManufacturingJob{{Number: "RX-MJ25-25-07-001"}, {Number: "RX-MJ25-25-07-002"}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/manufacturing-jobs?order_id="+orderID.String(), nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobHandler_List_ByStatus(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID := uuid.New()

	mockSvc.On("List", mock.Anything, tenantID, domain.JobStatusQA, 0, 20).
		Return([]domain.ManufacturingJob{{Number: "RX-MJ25-25-07-003"}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodGet, "/api/v1/manufacturing-jobs?status=qa", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestJobHandler_UpdateStatus_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "skips a stage", err: domain.ErrInvalidStatusTransition, status: http.StatusConflict},
		{name: "unknown status", err: domain.NewValidationError("status", "unknown job status"), status: http.StatusBadRequest},
		{name: "missing job", err: domain.ErrJobNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newJobHandler()
			jobID := uuid.New()
			mockSvc.On("UpdateStatus", mock.Anything, mock.Anything, jobID, domain.JobStatusPacked).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = newRequest(t, http.MethodPatch, "/", map[string]string{"status": "packed"})
			c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
			setAuthContext(c, uuid.New(), uuid.New(), "member")

			h.UpdateStatus(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestJobHandler_Delete(t *testing.T) {
	h, mockSvc := newJobHandler()
	tenantID, jobID := uuid.New(), uuid.New()
	mockSvc.On("Delete", mock.Anything, tenantID, jobID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newRequest(t, http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
