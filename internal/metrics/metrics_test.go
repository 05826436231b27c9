package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveHTTP(http.MethodGet, "/api/v1/logs/{id}", http.StatusOK)
	m.ObserveHTTP(http.MethodGet, "/api/v1/logs/{id}", http.StatusOK)
	m.ObserveHTTP(http.MethodGet, "/api/v1/logs/{id}", http.StatusNotFound)
	m.ObserveUpstream(domain.SourceUSDA, UpstreamOK, 120*time.Millisecond)
	m.ObserveUpstream(domain.SourceUSDA, UpstreamTimeout, 5*time.Second)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/logs/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/logs/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("usda_fooddata", UpstreamOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("usda_fooddata", UpstreamTimeout)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.upstreamDuration, "external_api_duration_seconds"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP(http.MethodGet, "/live", http.StatusOK)
		m.ObserveUpstream(domain.SourceOpenFoodFacts, UpstreamError, time.Second)
		m.CacheHit()
		m.CacheMiss()
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.CacheHit()
	m.ObserveUpstream(domain.SourceOpenFoodFacts, UpstreamNotFound, 10*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, "cache_hits_total 1")
	assert.Contains(t, text, `external_api_requests_total{source="open_food_facts",status="not_found"} 1`)
	assert.Contains(t, text, "external_api_duration_seconds_bucket")
	assert.True(t, strings.Contains(text, "go_goroutines"), "runtime collector registered")
}
