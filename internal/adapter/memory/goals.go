package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// GoalsStore keeps one DailyGoals value per tenant.
type GoalsStore struct {
	mu    sync.RWMutex
	goals map[string]domain.DailyGoals
}

func NewGoalsStore() *GoalsStore {
	return &GoalsStore{goals: make(map[string]domain.DailyGoals)}
}

// Get returns the tenant's goals or domain.ErrNotFound.
func (s *GoalsStore) Get(_ context.Context, tenantID string) (domain.DailyGoals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[tenantID]
	if !ok {
		return domain.DailyGoals{}, fmt.Errorf("goals for %s: %w", tenantID, domain.ErrNotFound)
	}
	return g, nil
}

// Save replaces the tenant's goals.
func (s *GoalsStore) Save(_ context.Context, tenantID string, g domain.DailyGoals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals[tenantID] = g
	return nil
}
