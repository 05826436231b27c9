// Package manual exposes user-created products as a product source.
package manual

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

type productStore interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

// Provider serves products from a local store. Lookups never leave the process.
type Provider struct {
	store productStore
	log   *slog.Logger
}

func NewProvider(store productStore, logger *slog.Logger) *Provider {
	return &Provider{
		store: store,
		log:   logger.With("adapter", "manual"),
	}
}

func (p *Provider) FetchByID(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	product, err := p.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, &domain.ProductNotFoundError{ProductID: id, Source: domain.SourceManual}
		}
		return domain.Product{}, domain.NewExternalError(domain.SourceManual, "store lookup failed", err)
	}
	return product, nil
}

func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	products, err := p.store.Search(ctx, query, provider.ClampSearchLimit(limit))
	if err != nil {
		return nil, domain.NewExternalError(domain.SourceManual, "store search failed", err)
	}
	p.log.DebugContext(ctx, "manual search", slog.String("query", query), slog.Int("products", len(products)))
	return products, nil
}
