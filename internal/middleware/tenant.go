package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesdocs/internal/domain"
)

// CompanyLookup resolves the company a token's tenant ID belongs to.
type CompanyLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
}

// TenantGuard returns middleware that ensures tenant context is present and that
// the tenant's company exists and is active. It relies on AuthMiddleware having
// already set the tenant_id. A nil lookup only checks presence.
func TenantGuard(companies CompanyLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := GetTenantID(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		if companies == nil {
			c.Next()
			return
		}

		company, err := companies.GetByID(c.Request.Context(), tenantID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			abort(c, http.StatusForbidden, "FORBIDDEN", "unknown tenant")
			return
		case err != nil:
			log.Printf("[%s] middleware.TenantGuard: looking up tenant %s: %v", GetRequestID(c), tenantID, err)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
			return
		case !company.IsActive:
			abort(c, http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive")
			return
		}
		c.Next()
	}
}
