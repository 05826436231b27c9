// Package provider defines the contract every product data source implements
// and the registry that maps source tags to implementations.
package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 20

	DefaultFetchTimeout  = 10 * time.Second
	DefaultSearchTimeout = 15 * time.Second
)

// Fetcher resolves a single product by its provider-scoped ID.
//
// Implementations return *domain.ProductNotFoundError when the provider has no
// record and *domain.ExternalError when the call could not complete.
type Fetcher interface {
	FetchByID(ctx context.Context, id string) (domain.Product, error)
}

// Searcher performs a best-effort text search. Malformed rows are skipped.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// Normalizer is a source that supports both operations.
type Normalizer interface {
	Fetcher
	Searcher
}

// HTTPDoer is the transport external providers are built on.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClampSearchLimit returns DefaultSearchLimit for non-positive limits and for
// limits above MaxSearchLimit.
func ClampSearchLimit(limit int) int {
	if limit <= 0 || limit > MaxSearchLimit {
		return DefaultSearchLimit
	}
	return limit
}
