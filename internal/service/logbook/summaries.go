package logbook

import (
	"context"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// SummarizeNutrition totals the scaled macronutrients of one day.
func (s *Service) SummarizeNutrition(ctx context.Context, tenantID string, date time.Time) (domain.DailyNutritionSummary, error) {
	entries, err := s.GetEntriesForDate(ctx, tenantID, date)
	if err != nil {
		return domain.DailyNutritionSummary{}, err
	}
	return domain.SummarizeNutrition(date, entries), nil
}

// SummarizeHydration totals the liquid volume of one day.
func (s *Service) SummarizeHydration(ctx context.Context, tenantID string, date time.Time) (domain.DailyHydrationSummary, error) {
	entries, err := s.GetEntriesForDate(ctx, tenantID, date)
	if err != nil {
		return domain.DailyHydrationSummary{}, err
	}
	return domain.SummarizeHydration(date, entries), nil
}

// NutritionRange returns one summary per calendar day in [start, end],
// including days without entries.
func (s *Service) NutritionRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.DailyNutritionSummary, error) {
	days, byDay, err := s.entriesByDay(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	result := make([]domain.DailyNutritionSummary, 0, len(days))
	for _, d := range days {
		result = append(result, domain.SummarizeNutrition(d, byDay[domain.FormatDate(d)]))
	}
	return result, nil
}

// HydrationRange returns one hydration summary per calendar day in [start, end].
func (s *Service) HydrationRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.DailyHydrationSummary, error) {
	days, byDay, err := s.entriesByDay(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}
	result := make([]domain.DailyHydrationSummary, 0, len(days))
	for _, d := range days {
		result = append(result, domain.SummarizeHydration(d, byDay[domain.FormatDate(d)]))
	}
	return result, nil
}

// entriesByDay loads the range with a single query and buckets it by log date.
func (s *Service) entriesByDay(ctx context.Context, tenantID string, start, end time.Time) ([]time.Time, map[string][]domain.LogEntry, error) {
	if err := validateTenant(tenantID); err != nil {
		return nil, nil, err
	}
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.logs.FindByDateRange(ctx, tenantID, r.Start, r.End)
	if err != nil {
		return nil, nil, err
	}

	byDay := make(map[string][]domain.LogEntry)
	for _, e := range entries {
		k := domain.FormatDate(e.LogDate)
		byDay[k] = append(byDay[k], e)
	}
	return r.Days(), byDay, nil
}
