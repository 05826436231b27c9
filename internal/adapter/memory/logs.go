package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// LogStore keeps log entries partitioned by tenant.
type LogStore struct {
	mu      sync.RWMutex
	tenants map[string]map[uuid.UUID]domain.LogEntry
}

// NewLogStore creates an empty store.
func NewLogStore() *LogStore {
	return &LogStore{tenants: make(map[string]map[uuid.UUID]domain.LogEntry)}
}

// Save stores a new entry.
func (s *LogStore) Save(_ context.Context, e domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.tenants[e.TenantID]
	if !ok {
		bucket = make(map[uuid.UUID]domain.LogEntry)
		s.tenants[e.TenantID] = bucket
	}
	bucket[e.ID] = cloneEntry(e)
	return nil
}

// FindByID returns the tenant's entry or domain.ErrNotFound.
func (s *LogStore) FindByID(_ context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tenants[tenantID][id]
	if !ok {
		return domain.LogEntry{}, fmt.Errorf("log entry %s: %w", id, domain.ErrNotFound)
	}
	return cloneEntry(e), nil
}

// FindByDate returns the tenant's entries for date ordered by consumption time.
func (s *LogStore) FindByDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error) {
	return s.FindByDateRange(ctx, tenantID, date, date)
}

// FindByDateRange returns entries with start <= log date <= end.
func (s *LogStore) FindByDateRange(_ context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.LogEntry
	for _, e := range s.tenants[tenantID] {
		if e.LogDate.Before(start) || e.LogDate.After(end) {
			continue
		}
		result = append(result, cloneEntry(e))
	}
	slices.SortFunc(result, compareEntries)
	return result, nil
}

// Delete removes the entry and reports whether it existed.
func (s *LogStore) Delete(_ context.Context, tenantID string, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.tenants[tenantID]
	if _, ok := bucket[id]; !ok {
		return false, nil
	}
	delete(bucket, id)
	return true, nil
}

// Update replaces an existing entry of the same tenant.
func (s *LogStore) Update(_ context.Context, e domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.tenants[e.TenantID]
	if _, ok := bucket[e.ID]; !ok {
		return fmt.Errorf("log entry %s: %w", e.ID, domain.ErrNotFound)
	}
	bucket[e.ID] = cloneEntry(e)
	return nil
}

func cloneEntry(e domain.LogEntry) domain.LogEntry {
	e.Product = e.Product.Clone()
	if e.Note != nil {
		n := *e.Note
		e.Note = &n
	}
	return e
}

func compareEntries(a, b domain.LogEntry) int {
	if c := a.LogDate.Compare(b.LogDate); c != 0 {
		return c
	}
	if c := a.ConsumedAt.Compare(b.ConsumedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}
