package logbook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

const notifyTimeout = 15 * time.Second

// CreateEntry resolves the product, embeds a snapshot of it and persists the entry.
func (s *Service) CreateEntry(ctx context.Context, tenantID string, in CreateEntryInput) (domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return domain.LogEntry{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.LogEntry{}, err
	}

	product, err := s.ResolveProduct(ctx, in.Source, in.ProductID)
	if err != nil {
		return domain.LogEntry{}, err
	}

	logDate := s.Today()
	if in.LogDate != nil {
		logDate = domain.DateOf(*in.LogDate)
	}

	var note *string
	if in.Note != nil {
		note = domain.OptionalString(*in.Note)
	}

	entry := domain.LogEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		LogDate:    logDate,
		Product:    product,
		QuantityG:  in.QuantityG,
		ConsumedAt: s.now().UTC(),
		Note:       note,
	}

	if err := s.logs.Save(ctx, entry); err != nil {
		return domain.LogEntry{}, fmt.Errorf("save log entry: %w", err)
	}

	s.log.InfoContext(ctx, "log entry created",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entry.ID.String()),
		slog.String("source", string(product.Source)),
		slog.String("product_id", product.ID),
	)

	s.notifyCreated(ctx, entry)
	return entry, nil
}

// GetEntriesForDate returns the tenant's entries for one day.
func (s *Service) GetEntriesForDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return nil, err
	}
	return s.logs.FindByDate(ctx, tenantID, domain.DateOf(date))
}

// EntriesInRange returns the tenant's entries for every day in [start, end].
func (s *Service) EntriesInRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return nil, err
	}
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.logs.FindByDateRange(ctx, tenantID, r.Start, r.End)
}

// GetEntry returns one entry or an error wrapping domain.ErrNotFound.
func (s *Service) GetEntry(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return domain.LogEntry{}, err
	}
	return s.logs.FindByID(ctx, tenantID, id)
}

// UpdateEntry changes quantity and/or note. The embedded product is never touched.
func (s *Service) UpdateEntry(ctx context.Context, tenantID string, id uuid.UUID, upd domain.LogEntryUpdate) (domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return domain.LogEntry{}, err
	}
	if err := upd.Validate(); err != nil {
		return domain.LogEntry{}, err
	}

	entry, err := s.logs.FindByID(ctx, tenantID, id)
	if err != nil {
		return domain.LogEntry{}, err
	}

	updated := upd.Apply(entry)
	if err := s.logs.Update(ctx, updated); err != nil {
		return domain.LogEntry{}, fmt.Errorf("update log entry: %w", err)
	}
	return updated, nil
}

// DeleteEntry removes an entry and reports whether it existed.
func (s *Service) DeleteEntry(ctx context.Context, tenantID string, id uuid.UUID) (bool, error) {
	if err := validateTenant(tenantID); err != nil {
		return false, err
	}
	deleted, err := s.logs.Delete(ctx, tenantID, id)
	if err != nil {
		return false, fmt.Errorf("delete log entry: %w", err)
	}
	if deleted {
		s.log.InfoContext(ctx, "log entry deleted",
			slog.String("tenant_id", tenantID),
			slog.String("entry_id", id.String()),
		)
	}
	return deleted, nil
}

// notifyCreated sends a notification in a detached goroutine. Failures and
// panics are logged and never reach the caller.
func (s *Service) notifyCreated(ctx context.Context, e domain.LogEntry) {
	if s.notifier == nil {
		return
	}

	title := "Food logged"
	message := fmt.Sprintf("%s: %s g (%s kcal)",
		e.Product.Name,
		e.QuantityG.String(),
		e.ScaledMacros().CaloriesKcal.StringFixed(2),
	)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.log.ErrorContext(ctx, "notification panicked", slog.Any("panic", r))
			}
		}()
		if err := s.notifier.Send(ctx, title, message); err != nil {
			s.log.WarnContext(ctx, "notification failed",
				slog.String("entry_id", e.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}
