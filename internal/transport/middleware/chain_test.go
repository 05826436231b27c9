package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tracing(name string, trace *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, name+">")
			next.ServeHTTP(w, r)
			*trace = append(*trace, "<"+name)
		})
	}
}

func serve(h http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs/daily", nil))
	return rec
}

func TestChain_Order(t *testing.T) {
	var trace []string
	final := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		trace = append(trace, "handler")
		w.WriteHeader(http.StatusNoContent)
	})

	rec := serve(Chain(tracing("auth", &trace), tracing("limit", &trace))(final))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"auth>", "limit>", "handler", "<limit", "<auth"}, trace)
}

func TestChain_Empty(t *testing.T) {
	called := false
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rec := serve(Chain()(final))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWhen(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    []string
	}{
		{"enabled", true, []string{"auth>", "limit>", "<limit", "<auth"}},
		{"disabled", false, []string{"auth>", "<auth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trace []string
			h := Chain(
				tracing("auth", &trace),
				When(tt.enabled, tracing("limit", &trace)),
			)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

			serve(h)
			assert.Equal(t, tt.want, trace)
		})
	}
}
