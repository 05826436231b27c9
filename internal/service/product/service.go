// Package product handles manual product creation and per-source search.
package product

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

type productStore interface {
	Save(ctx context.Context, p domain.Product) error
}

type sourceRegistry interface {
	Searcher(src domain.Source) (provider.Searcher, error)
}

// Service provides product operations that are not tied to a tenant.
type Service struct {
	log      *slog.Logger
	store    productStore
	registry sourceRegistry
	newID    func() string
}

// NewService creates a new product service.
func NewService(logger *slog.Logger, store productStore, registry sourceRegistry) *Service {
	return &Service{
		log:      logger.With("service", "product"),
		store:    store,
		registry: registry,
		newID:    newUUID,
	}
}
