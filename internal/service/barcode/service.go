// Package barcode resolves product identifiers across sources in a configured order.
package barcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

type sourceRegistry interface {
	Fetcher(src domain.Source) (provider.Fetcher, error)
}

// Service looks products up across sources, first match wins.
type Service struct {
	log      *slog.Logger
	registry sourceRegistry
	order    []string
}

// NewService creates a resolver. order holds raw source tags as configured;
// tags that are unknown or unregistered are skipped at lookup time.
func NewService(logger *slog.Logger, registry sourceRegistry, order []string) *Service {
	cleaned := make([]string, 0, len(order))
	for _, tag := range order {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return &Service{
		log:      logger.With("service", "barcode"),
		registry: registry,
		order:    cleaned,
	}
}

// Lookup tries every configured source in order.
//
// A not-found answer moves on to the next source. Any other error aborts the
// lookup immediately, so an outage is never mistaken for a missing product.
// When every source misses, a *domain.SourcesExhaustedError is returned.
func (s *Service) Lookup(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, domain.NewValidationError("barcode", "required")
	}

	tried := make([]domain.Source, 0, len(s.order))
	for _, tag := range s.order {
		src, ok := domain.ParseSource(tag)
		if !ok {
			s.log.WarnContext(ctx, "unknown source in lookup order, skipping", slog.String("source", tag))
			continue
		}

		fetcher, err := s.registry.Fetcher(src)
		if err != nil {
			s.log.WarnContext(ctx, "source not registered, skipping",
				slog.String("source", tag),
				slog.String("error", err.Error()),
			)
			continue
		}

		tried = append(tried, src)
		product, err := fetcher.FetchByID(ctx, id)
		if err == nil {
			s.log.DebugContext(ctx, "product resolved",
				slog.String("id", id),
				slog.String("source", string(src)),
			)
			return product, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}

		s.log.ErrorContext(ctx, "source lookup failed",
			slog.String("id", id),
			slog.String("source", string(src)),
			slog.String("error", err.Error()),
		)
		return domain.Product{}, fmt.Errorf("lookup %s in %s: %w", id, src, err)
	}

	return domain.Product{}, &domain.SourcesExhaustedError{ProductID: id, Tried: tried}
}
