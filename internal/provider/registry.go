package provider

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

var (
	ErrSourceNotRegistered   = errors.New("source not registered")
	ErrOperationNotSupported = errors.New("operation not supported by source")
)

// Registry maps source tags to their implementations. It is assembled once
// and never mutated, so it is safe for concurrent use without locking.
type Registry struct {
	fetchers map[domain.Source]Fetcher
}

// NewRegistry copies the given map; later changes to it are not observed.
// Nil entries are ignored.
func NewRegistry(fetchers map[domain.Source]Fetcher) *Registry {
	m := make(map[domain.Source]Fetcher, len(fetchers))
	for src, f := range fetchers {
		if f != nil {
			m[src] = f
		}
	}
	return &Registry{fetchers: m}
}

// Fetcher returns the implementation registered for src.
func (r *Registry) Fetcher(src domain.Source) (Fetcher, error) {
	f, ok := r.fetchers[src]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotRegistered, src)
	}
	return f, nil
}

// Searcher returns the implementation for src if it also supports search.
func (r *Registry) Searcher(src domain.Source) (Searcher, error) {
	f, err := r.Fetcher(src)
	if err != nil {
		return nil, err
	}
	s, ok := f.(Searcher)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not support search", ErrOperationNotSupported, src)
	}
	return s, nil
}

// Sources lists registered sources in a stable order.
func (r *Registry) Sources() []domain.Source {
	return slices.Sorted(maps.Keys(r.fetchers))
}
