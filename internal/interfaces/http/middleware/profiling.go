package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig leaves probes and the API docs unlabelled.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health", "/ready", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// Profiling returns profiling middleware with default configuration.
func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig tags every request goroutine with Pyroscope labels so
// CPU and allocation profiles can be split per endpoint:
//   - controller: first resource segment (e.g. "transaction")
//   - route: route pattern (e.g. "/api/v1/transaction/:direction")
//   - method: HTTP method
//   - direction: inbound or outbound, on ledger routes
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || hasAnyPrefix(path, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// profilingLabels only uses route patterns and fixed values so the label
// cardinality stays bounded.
func profilingLabels(c *gin.Context) map[string]string {
	labels := make(map[string]string, 4)
	if c.Request.Method != "" {
		labels[telemetry.ProfilingLabelMethod] = c.Request.Method
	}

	route := c.FullPath()
	if route != "" {
		labels[telemetry.ProfilingLabelRoute] = route
	}
	if controller := extractControllerFromRoute(route); controller != "" {
		labels[telemetry.ProfilingLabelController] = controller
	}

	switch direction := c.Param("direction"); direction {
	case "inbound", "outbound":
		labels[telemetry.ProfilingLabelDirection] = direction
	}
	return labels
}

// extractControllerFromRoute returns the first literal segment after the
// optional /api/vN prefix: "/api/v1/items/:id" -> "items".
func extractControllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		switch {
		case part == "" || part == "api" || isVersionSegment(part):
			continue
		case strings.HasPrefix(part, ":") || strings.HasPrefix(part, "{"):
			continue
		default:
			return part
		}
	}
	return ""
}

// isVersionSegment reports whether segment looks like v1, v2, V10...
func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
