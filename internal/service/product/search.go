package product

import (
	"context"
	"errors"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

// Search runs a text search against one source. Sources that are not
// registered or cannot search are reported as validation errors on "source".
func (s *Service) Search(ctx context.Context, in SearchInput) ([]domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	searcher, err := s.registry.Searcher(in.Source)
	if err != nil {
		if errors.Is(err, provider.ErrSourceNotRegistered) || errors.Is(err, provider.ErrOperationNotSupported) {
			return nil, domain.NewValidationError("source", err.Error())
		}
		return nil, err
	}

	products, err := searcher.Search(ctx, in.Query, provider.ClampSearchLimit(in.Limit))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
