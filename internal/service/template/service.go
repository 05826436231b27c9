// Package template manages meal templates and logs them as a batch of entries.
package template

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/service/logbook"
)

// resolveConcurrency bounds parallel product lookups while logging a template.
const resolveConcurrency = 4

type templateRepo interface {
	Save(ctx context.Context, t domain.MealTemplate) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (domain.MealTemplate, error)
	FindAll(ctx context.Context, tenantID string) ([]domain.MealTemplate, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type entryLogger interface {
	ResolveProduct(ctx context.Context, src domain.Source, id string) (domain.Product, error)
	CreateEntry(ctx context.Context, tenantID string, in logbook.CreateEntryInput) (domain.LogEntry, error)
}

// Service provides meal template operations.
type Service struct {
	log       *slog.Logger
	templates templateRepo
	entries   entryLogger
	tx        txManager
	now       func() time.Time
}

// NewService creates a new template service.
func NewService(logger *slog.Logger, templates templateRepo, entries entryLogger, tx txManager) *Service {
	return &Service{
		log:       logger.With("service", "template"),
		templates: templates,
		entries:   entries,
		tx:        tx,
		now:       time.Now,
	}
}
