package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/pkg/ctxutil"
)

// APIKeyHeader carries the caller's key.
const APIKeyHeader = "X-API-Key"

type tenantResolver interface {
	ResolveTenant(ctx context.Context, apiKey string) (string, error)
}

// Auth rejects requests without a known API key and stores the key's tenant
// in the request context.
func Auth(resolver tenantResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" {
				http.Error(w, "missing api key", http.StatusUnauthorized)
				return
			}
			tenantID, err := resolver.ResolveTenant(r.Context(), key)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			noteTenant(r.Context(), tenantID)
			ctx := ctxutil.WithTenantID(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticKeys resolves tenants from a fixed api key → tenant map.
type StaticKeys map[string]string

var errUnknownKey = errors.New("unknown api key")

// ResolveTenant compares the key against every configured key in constant time.
func (k StaticKeys) ResolveTenant(_ context.Context, apiKey string) (string, error) {
	var tenant string
	for known, t := range k {
		if subtle.ConstantTimeCompare([]byte(known), []byte(apiKey)) == 1 {
			tenant = t
		}
	}
	if tenant == "" {
		return "", errors.Join(errUnknownKey, domain.ErrUnauthorized)
	}
	return tenant, nil
}
