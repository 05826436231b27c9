// Package export renders log entries as CSV.
package export

import (
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// Header is the fixed column set of the CSV export.
var Header = []string{
	"date",
	"time",
	"product_name",
	"brand",
	"source",
	"quantity_g",
	"calories_kcal",
	"protein_g",
	"carbohydrates_g",
	"fat_g",
	"fiber_g",
	"sugar_g",
	"is_liquid",
	"volume_ml",
	"note",
}

type entrySource interface {
	EntriesInRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error)
}

// Service streams a tenant's log as CSV.
type Service struct {
	log     *slog.Logger
	entries entrySource
}

// NewService creates a new export service.
func NewService(logger *slog.Logger, entries entrySource) *Service {
	return &Service{
		log:     logger.With("service", "export"),
		entries: entries,
	}
}

// WriteCSV loads the entries of [start, end] and writes them to w ordered by
// log date, then consumption time. Nothing is written if loading fails.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, tenantID string, start, end time.Time) (int, error) {
	entries, err := s.entries.EntriesInRange(ctx, tenantID, start, end)
	if err != nil {
		return 0, err
	}

	slices.SortStableFunc(entries, func(a, b domain.LogEntry) int {
		if c := a.LogDate.Compare(b.LogDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ConsumedAt.UnixNano(), b.ConsumedAt.UnixNano())
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(Row(e)); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}

	s.log.DebugContext(ctx, "csv exported",
		slog.String("tenant_id", tenantID),
		slog.Int("rows", len(entries)),
	)
	return len(entries), nil
}

// Row renders one entry in Header order. Absent optional values are empty.
func Row(e domain.LogEntry) []string {
	m := e.ScaledMacros()

	brand := ""
	if e.Product.Brand != nil {
		brand = *e.Product.Brand
	}
	note := ""
	if e.Note != nil {
		note = *e.Note
	}
	liquid := "false"
	if e.Product.IsLiquid {
		liquid = "true"
	}

	return []string{
		domain.FormatDate(e.LogDate),
		e.ConsumedAt.UTC().Format(time.TimeOnly),
		e.Product.Name,
		brand,
		string(e.Product.Source),
		e.QuantityG.String(),
		m.CaloriesKcal.StringFixed(2),
		m.ProteinG.StringFixed(2),
		m.CarbohydratesG.StringFixed(2),
		m.FatG.StringFixed(2),
		optional(m.FiberG, 2),
		optional(m.SugarG, 2),
		liquid,
		optional(e.ConsumedVolumeML(), 1),
		note,
	}
}

func optional(v decimal.NullDecimal, places int32) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(places)
}
