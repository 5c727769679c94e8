package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetricByName(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func newMetricsRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("http.server"), true))
	router.GET("/api/v1/items/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/api/v1/transaction/:direction", func(c *gin.Context) {
		c.Set(ErrorCodeKey, "EMPTY_DETAILS")
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty"})
	})
	return router, reader
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func counterPoints(t *testing.T, rm metricdata.ResourceMetrics, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	m := findMetricByName(rm, name)
	require.NotNil(t, m, "%s metric not found", name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum data for %s", name)
	return sum.DataPoints
}

func attrValue(set attribute.Set, key string) string {
	v, ok := set.Value(attribute.Key(key))
	if !ok {
		return ""
	}
	return v.Emit()
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "").Code)
}

func TestHTTPMetrics_NilMeterProvider(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{Enabled: true}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "").Code)
}

func TestHTTPMetricsWithMeter_Disabled(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("http.server"), false))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	serve(router, http.MethodGet, "/test", "")

	assert.Nil(t, findMetricByName(collectMetrics(t, reader), "http_server_request_total"))
}

func TestHTTPMetricsWithMeter_RequestCounter(t *testing.T) {
	router, reader := newMetricsRouter(t)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/items/"+string(rune('a'+i)), "").Code)
	}

	points := counterPoints(t, collectMetrics(t, reader), "http_server_request_total")
	require.Len(t, points, 1, "route pattern keeps item ids out of the labels")
	assert.Equal(t, int64(3), points[0].Value)
	assert.Equal(t, "/api/v1/items/:id", attrValue(points[0].Attributes, "http.route"))
	assert.Equal(t, "200", attrValue(points[0].Attributes, "http.status_code"))
	assert.Empty(t, attrValue(points[0].Attributes, "code"))
}

func TestHTTPMetricsWithMeter_ErrorCode(t *testing.T) {
	router, reader := newMetricsRouter(t)

	serve(router, http.MethodPost, "/api/v1/transaction/outbound", `{"details":[]}`)

	points := counterPoints(t, collectMetrics(t, reader), "http_server_request_total")
	require.Len(t, points, 1)
	assert.Equal(t, "400", attrValue(points[0].Attributes, "http.status_code"))
	assert.Equal(t, "EMPTY_DETAILS", attrValue(points[0].Attributes, "code"))
}

func TestHTTPMetricsWithMeter_UnmatchedRoute(t *testing.T) {
	router, reader := newMetricsRouter(t)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nope/123", "").Code)

	points := counterPoints(t, collectMetrics(t, reader), "http_server_request_total")
	require.Len(t, points, 1)
	assert.Equal(t, "unknown", attrValue(points[0].Attributes, "http.route"))
}

func TestHTTPMetricsWithMeter_DurationAndSizes(t *testing.T) {
	router, reader := newMetricsRouter(t)

	serve(router, http.MethodPost, "/api/v1/transaction/inbound", `{"details":[{"item_id":"x"}]}`)
	serve(router, http.MethodGet, "/api/v1/items/1", "")

	rm := collectMetrics(t, reader)

	for _, name := range []string{
		"http_server_request_duration_seconds",
		"http_server_request_size_bytes",
		"http_server_response_size_bytes",
	} {
		m := findMetricByName(rm, name)
		require.NotNil(t, m, "%s metric not found", name)
		hist, ok := m.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "expected Histogram data for %s", name)
		require.NotEmpty(t, hist.DataPoints)
		for _, dp := range hist.DataPoints {
			assert.Empty(t, attrValue(dp.Attributes, "http.status_code"), "%s has no status label", name)
		}
	}

	// Only the POST carried a body
	hist := findMetricByName(rm, "http_server_request_size_bytes").Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, "POST", attrValue(hist.DataPoints[0].Attributes, "http.method"))
}

func TestHTTPMetricsWithMeter_ActiveRequests(t *testing.T) {
	router, reader := newMetricsRouter(t)

	serve(router, http.MethodGet, "/api/v1/items/1", "")

	points := counterPoints(t, collectMetrics(t, reader), "http_server_active_requests")
	require.NotEmpty(t, points)
	assert.Equal(t, int64(0), points[0].Value)
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		201: "2xx",
		304: "3xx",
		409: "4xx",
		422: "4xx",
		503: "5xx",
		100: "other",
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPMetricsStatusGroup(code), "status %d", code)
	}
}
