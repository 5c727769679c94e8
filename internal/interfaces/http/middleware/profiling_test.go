package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPaths, "/health")
	assert.Contains(t, cfg.SkipPaths, "/ready")
	assert.Contains(t, cfg.SkipPathPrefixes, "/swagger")
}

// labelsSeen serves path through the profiling middleware and returns the
// pprof labels visible to the handler
func labelsSeen(t *testing.T, cfg ProfilingConfig, route, path string) map[string]string {
	t.Helper()

	seen := map[string]string{}
	r := gin.New()
	r.Use(ProfilingWithConfig(cfg))
	r.POST(route, func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			seen[key] = value
			return true
		})
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	return seen
}

func TestProfilingMiddleware_Labels(t *testing.T) {
	seen := labelsSeen(t, DefaultProfilingConfig(), "/api/v1/transaction/:direction", "/api/v1/transaction/outbound")

	assert.Equal(t, http.MethodPost, seen[telemetry.ProfilingLabelMethod])
	assert.Equal(t, "/api/v1/transaction/:direction", seen[telemetry.ProfilingLabelRoute])
	assert.Equal(t, "transaction", seen[telemetry.ProfilingLabelController])
	assert.Equal(t, "outbound", seen[telemetry.ProfilingLabelDirection])
}

func TestProfilingMiddleware_UnknownDirectionNotLabelled(t *testing.T) {
	seen := labelsSeen(t, DefaultProfilingConfig(), "/api/v1/transaction/:direction", "/api/v1/transaction/sideways")

	assert.NotContains(t, seen, telemetry.ProfilingLabelDirection)
	assert.Equal(t, "transaction", seen[telemetry.ProfilingLabelController])
}

func TestProfilingMiddleware_Disabled(t *testing.T) {
	seen := labelsSeen(t, ProfilingConfig{Enabled: false}, "/api/v1/items", "/api/v1/items")
	assert.Empty(t, seen)
}

func TestProfilingMiddleware_SkipPaths(t *testing.T) {
	cfg := DefaultProfilingConfig()

	assert.Empty(t, labelsSeen(t, cfg, "/health", "/health"))
	assert.Empty(t, labelsSeen(t, cfg, "/swagger/*any", "/swagger/index.html"))
	assert.NotEmpty(t, labelsSeen(t, cfg, "/api/v1/items", "/api/v1/items"))
}

func TestProfilingMiddleware_ContextPreserved(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("custom_key", "custom_value")
		c.Next()
	})
	r.Use(Profiling())
	r.GET("/api/v1/items", func(c *gin.Context) {
		assert.Equal(t, "custom_value", c.GetString("custom_key"))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestExtractControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/items", "items"},
		{"/api/v1/items/:id/stock", "items"},
		{"/api/v1/installments/:direction/:transactionId", "installments"},
		{"/api/v2/cash-balance", "cash-balance"},
		{"/health", "health"},
		{"/api/v1/:id", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, extractControllerFromRoute(tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vx"))
	assert.False(t, isVersionSegment("items"))
}
