// Package memory implements process-local stores. They back the manual
// product source in every deployment and all persistence in the "memory"
// storage driver.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// ProductStore keeps manually created products. Products are global, not
// tenant-scoped, like the external sources and the product cache.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// NewProductStore creates an empty store.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]domain.Product)}
}

// Save inserts or replaces a product.
func (s *ProductStore) Save(_ context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p.Clone()
	return nil
}

// GetByID returns the product or domain.ErrNotFound.
func (s *ProductStore) GetByID(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("manual product %s: %w", id, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// Search matches query against name and brand, in insertion order.
func (s *ProductStore) Search(_ context.Context, query string, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Product
	for _, id := range s.order {
		if len(result) == limit {
			break
		}
		p := s.products[id]
		brand := ""
		if p.Brand != nil {
			brand = *p.Brand
		}
		if domain.MatchesQuery(query, p.Name, brand) {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}
