package logbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// ResolveProduct returns the product from the cache or, on a miss, from its
// source, populating the cache. Concurrent misses for the same key share one
// upstream call.
func (s *Service) ResolveProduct(ctx context.Context, src domain.Source, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if p, ok := s.cache.Get(src, id); ok {
		s.cacheRec.CacheHit()
		return p, nil
	}
	s.cacheRec.CacheMiss()

	fetcher, err := s.registry.Fetcher(src)
	if err != nil {
		return domain.Product{}, domain.NewValidationError("source", fmt.Sprintf("source %q is not available", src))
	}

	// The shared call must not be cancelled by whichever caller started it;
	// providers bound it with their own timeouts.
	detached := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(string(src)+"/"+id, func() (any, error) {
		if p, ok := s.cache.Get(src, id); ok {
			return p, nil
		}
		p, err := fetcher.FetchByID(detached, id)
		if err != nil {
			return nil, err
		}
		s.cache.Set(src, id, p)
		return p, nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("resolve product: %w", err)
	}
	if shared {
		s.log.DebugContext(ctx, "shared product resolution",
			slog.String("source", string(src)),
			slog.String("product_id", id),
		)
	}
	return v.(domain.Product).Clone(), nil
}
