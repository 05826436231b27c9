package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// TemplateStore keeps meal templates partitioned by tenant.
type TemplateStore struct {
	mu      sync.RWMutex
	tenants map[string]map[uuid.UUID]domain.MealTemplate
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{tenants: make(map[string]map[uuid.UUID]domain.MealTemplate)}
}

func (s *TemplateStore) Save(_ context.Context, t domain.MealTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.tenants[t.TenantID]
	if !ok {
		bucket = make(map[uuid.UUID]domain.MealTemplate)
		s.tenants[t.TenantID] = bucket
	}
	t.Items = slices.Clone(t.Items)
	bucket[t.ID] = t
	return nil
}

// FindByID returns the tenant's template or domain.ErrNotFound.
func (s *TemplateStore) FindByID(_ context.Context, tenantID string, id uuid.UUID) (domain.MealTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID][id]
	if !ok {
		return domain.MealTemplate{}, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	t.Items = slices.Clone(t.Items)
	return t, nil
}

// FindAll returns the tenant's templates, oldest first.
func (s *TemplateStore) FindAll(_ context.Context, tenantID string) ([]domain.MealTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.MealTemplate, 0, len(s.tenants[tenantID]))
	for _, t := range s.tenants[tenantID] {
		t.Items = slices.Clone(t.Items)
		result = append(result, t)
	}
	slices.SortFunc(result, func(a, b domain.MealTemplate) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result, nil
}

// Delete removes the template and reports whether it existed.
func (s *TemplateStore) Delete(_ context.Context, tenantID string, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenantID][id]; !ok {
		return false, nil
	}
	delete(s.tenants[tenantID], id)
	return true, nil
}
