package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/nutrition-backend/pkg/ctxutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func tenantRequest(tenant string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/daily", nil)
	return req.WithContext(ctxutil.WithTenantID(req.Context(), tenant))
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(10, time.Minute)(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, tenantRequest("alice"))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(5, time.Minute)(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, tenantRequest("alice"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest("alice"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_TenantsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2, time.Minute)(okHandler())

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), tenantRequest("alice"))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest("bob"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_FallsBackToClientIP(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(1, time.Minute)(okHandler())

	send := func(addr string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/live", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1:9999"), "port does not change the key")
	assert.Equal(t, http.StatusOK, send("2.2.2.2:5678"))
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	// 10 per second
	handler := rl.Limit(10, time.Second)(okHandler())

	for i := 0; i < 10; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), tenantRequest("carol"))
	}

	time.Sleep(150 * time.Millisecond)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, tenantRequest("carol"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
