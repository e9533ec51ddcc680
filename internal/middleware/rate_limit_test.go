package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/config"
	"salesdocs/internal/middleware"
)

func TestRateLimit(t *testing.T) {
	limit, err := middleware.RateLimit(config.RateLimitConfig{Enabled: true, Rate: "2-M"})
	require.NoError(t, err)

	calls := 0
	r := gin.New()
	r.Use(limit)
	r.GET("/test", func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Contains(t, w.Body.String(), "RATE_LIMITED")
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 2, calls)
}

func TestRateLimit_BadRate(t *testing.T) {
	_, err := middleware.RateLimit(config.RateLimitConfig{Rate: "lots"})
	assert.Error(t, err)
}
