// Package logbook records consumption entries and aggregates them into daily
// nutrition and hydration summaries.
package logbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

// logRepo is the persistence contract. Every method is tenant-scoped; an
// entry is never visible to or mutable by another tenant.
type logRepo interface {
	Save(ctx context.Context, entry domain.LogEntry) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error)
	FindByDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error)
	FindByDateRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)
	Update(ctx context.Context, entry domain.LogEntry) error
}

type productCache interface {
	Get(source domain.Source, id string) (domain.Product, bool)
	Set(source domain.Source, id string, p domain.Product)
}

type sourceRegistry interface {
	Fetcher(src domain.Source) (provider.Fetcher, error)
}

type notifier interface {
	Send(ctx context.Context, title, message string) error
}

type cacheRecorder interface {
	CacheHit()
	CacheMiss()
}

type nopCacheRecorder struct{}

func (nopCacheRecorder) CacheHit()  {}
func (nopCacheRecorder) CacheMiss() {}

// Service is the log aggregation engine.
type Service struct {
	log      *slog.Logger
	logs     logRepo
	cache    productCache
	registry sourceRegistry
	notifier notifier
	cacheRec cacheRecorder

	loc   *time.Location
	now   func() time.Time
	group singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the reference time zone used to pick "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier enables notifications after an entry is created.
func WithNotifier(n notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithCacheMetrics counts product cache hits and misses.
func WithCacheMetrics(r cacheRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.cacheRec = r
		}
	}
}

// NewService creates a new logbook service.
func NewService(
	logger *slog.Logger,
	logs logRepo,
	cache productCache,
	registry sourceRegistry,
	opts ...Option,
) *Service {
	s := &Service{
		log:      logger.With("service", "logbook"),
		logs:     logs,
		cache:    cache,
		registry: registry,
		cacheRec: nopCacheRecorder{},
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current date in the reference time zone.
func (s *Service) Today() time.Time {
	return domain.Today(s.now(), s.loc)
}
