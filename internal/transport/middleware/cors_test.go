package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/nutrition-backend/internal/config"
)

func corsConfig(origins string, credentials bool) config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowedHeaders:   "X-API-Key,Content-Type",
		AllowCredentials: credentials,
		MaxAge:           86400,
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(corsConfig("https://app.example.com", true))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler should not be called for preflight")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/logs", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	hdr := rec.Header()
	assert.Equal(t, "https://app.example.com", hdr.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,PATCH,DELETE,OPTIONS", hdr.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "X-API-Key,Content-Type", hdr.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", hdr.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", hdr.Get("Access-Control-Max-Age"))
}

func TestCORS_BareOptionsReachesHandler(t *testing.T) {
	called := false
	h := CORS(corsConfig("*", false))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/goals", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name        string
		origins     string
		credentials bool
		origin      string
		wantAllow   string
		wantCreds   string
	}{
		{"listed origin", "https://app.example.com, https://admin.example.com", true, "https://admin.example.com", "https://admin.example.com", "true"},
		{"unlisted origin", "https://app.example.com", true, "https://evil.example.com", "", ""},
		{"wildcard without credentials", "*", false, "https://any.example.com", "*", ""},
		{"wildcard with credentials echoes", "*", true, "https://any.example.com", "https://any.example.com", "true"},
		{"no origin header", "*", false, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(corsConfig(tt.origins, tt.credentials))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/daily", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			if tt.wantAllow != "" {
				assert.Equal(t, "X-Request-Id, Retry-After", rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}
