package template

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/service/logbook"
)

// LogTemplate creates one log entry per template item for the given date
// (nil = today). Products are resolved up front, so a lookup failure aborts
// the whole batch before any entry is written. The writes share one transaction.
func (s *Service) LogTemplate(ctx context.Context, tenantID string, id uuid.UUID, date *time.Time) ([]domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return nil, err
	}
	t, err := s.templates.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.warmProducts(ctx, t.Items); err != nil {
		return nil, err
	}

	var entries []domain.LogEntry
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries = make([]domain.LogEntry, 0, len(t.Items))
		for _, item := range t.Items {
			e, err := s.entries.CreateEntry(ctx, tenantID, logbook.CreateEntryInput{
				Source:    item.Source,
				ProductID: item.ProductID,
				QuantityG: item.QuantityG,
				LogDate:   date,
				Note:      item.Note,
			})
			if err != nil {
				return fmt.Errorf("log template item %s/%s: %w", item.Source, item.ProductID, err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "template logged",
		slog.String("tenant_id", tenantID),
		slog.String("template_id", id.String()),
		slog.Int("entries", len(entries)),
	)
	return entries, nil
}

// warmProducts resolves every distinct product of the template in parallel.
func (s *Service) warmProducts(ctx context.Context, items []domain.TemplateItem) error {
	type key struct {
		src domain.Source
		id  string
	}
	seen := make(map[key]struct{}, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for _, item := range items {
		k := key{item.Source, item.ProductID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		g.Go(func() error {
			_, err := s.entries.ResolveProduct(gctx, k.src, k.id)
			return err
		})
	}
	return g.Wait()
}
