package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/config"
	"salesdocs/internal/domain"
	"salesdocs/internal/service"
	"salesdocs/mocks"
)

func TestCompanyService_Create_DefaultsPrefix(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	company, err := svc.Create(context.Background(), service.CreateCompanyInput{Name: "Acme", Slug: " ACME "})

	require.NoError(t, err)
	assert.Equal(t, "RX", company.DocumentPrefix)
	assert.Equal(t, "acme", company.Slug)
	assert.True(t, company.IsActive)
}

func TestCompanyService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.CreateCompanyInput
		field string
	}{
		{name: "missing name", input: service.CreateCompanyInput{Slug: "acme"}, field: "name"},
		{name: "bad gstin", input: service.CreateCompanyInput{Name: "Acme", Slug: "acme", GSTIN: "123"}, field: "gstin"},
		{name: "hyphen in prefix", input: service.CreateCompanyInput{Name: "Acme", Slug: "acme", DocumentPrefix: "A-C"}, field: "document_prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCompanyRepo)
			svc := service.NewCompanyService(repo)

			_, err := svc.Create(context.Background(), tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCompanyService_Update_Prefix(t *testing.T) {
	repo := new(mocks.MockCompanyRepo)
	svc := service.NewCompanyService(repo)
	company := &domain.Company{ID: uuid.New(), Name: "Acme", Slug: "acme", DocumentPrefix: "RX", IsActive: true}
	repo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	repo.On("Update", mock.Anything, company).Return(nil)
	prefix := "ac"
	inactive := false

	updated, err := svc.Update(context.Background(), company.ID, service.UpdateCompanyInput{DocumentPrefix: &prefix, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, "AC", updated.DocumentPrefix)
	assert.False(t, updated.IsActive)
}

func TestPrintConfigService(t *testing.T) {
	store := new(mocks.MockPrintConfigStore)
	svc := service.NewPrintConfigService(store)
	tenantID := uuid.New()
	custom := domain.DefaultPrintConfig()
	custom.ShowLogo = false

	store.On("Save", mock.Anything, tenantID, domain.DocumentTypeInvoice, custom).Return(nil)
	store.On("Reset", mock.Anything, tenantID, domain.DocumentTypeInvoice).Return(nil)

	saved, err := svc.Save(context.Background(), tenantID, domain.DocumentTypeInvoice, custom)
	require.NoError(t, err)
	assert.False(t, saved.ShowLogo)

	reset, err := svc.Reset(context.Background(), tenantID, domain.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrintConfig(), reset)

	_, err = svc.Get(context.Background(), tenantID, "receipt")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func signToken(t *testing.T, secret string, claims *service.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_ValidateToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "auth.example"}
	svc := service.NewAuthService(cfg)
	tenantID, userID := uuid.New(), uuid.New()
	valid := func() *service.Claims {
		return &service.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "auth.example",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TenantID: tenantID,
			UserID:   userID,
			Email:    "owner@example.com",
		}
	}

	t.Run("valid token defaults role", func(t *testing.T) {
		claims, err := svc.ValidateToken(signToken(t, "test-secret", valid()))
		require.NoError(t, err)
		assert.Equal(t, tenantID, claims.TenantID)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, domain.RoleMember, claims.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.ValidateToken(signToken(t, "other", valid()))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		c := valid()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := svc.ValidateToken(signToken(t, "test-secret", c))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := valid()
		c.Issuer = "someone-else"
		_, err := svc.ValidateToken(signToken(t, "test-secret", c))
		assert.Error(t, err)
	})

	t.Run("missing tenant", func(t *testing.T) {
		c := valid()
		c.TenantID = uuid.Nil
		_, err := svc.ValidateToken(signToken(t, "test-secret", c))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
