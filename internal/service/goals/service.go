// Package goals manages per-tenant daily targets and reports progress
// against the logged totals of a day.
package goals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type goalsRepo interface {
	Get(ctx context.Context, tenantID string) (domain.DailyGoals, error)
	Save(ctx context.Context, tenantID string, g domain.DailyGoals) error
}

type summarizer interface {
	SummarizeNutrition(ctx context.Context, tenantID string, date time.Time) (domain.DailyNutritionSummary, error)
	SummarizeHydration(ctx context.Context, tenantID string, date time.Time) (domain.DailyHydrationSummary, error)
}

// Service provides goal operations.
type Service struct {
	log  *slog.Logger
	repo goalsRepo
	sums summarizer
}

// NewService creates a new goals service.
func NewService(logger *slog.Logger, repo goalsRepo, sums summarizer) *Service {
	return &Service{
		log:  logger.With("service", "goals"),
		repo: repo,
		sums: sums,
	}
}

// Get returns the tenant's goals. A tenant without goals gets an empty set.
func (s *Service) Get(ctx context.Context, tenantID string) (domain.DailyGoals, error) {
	if tenantID == "" {
		return domain.DailyGoals{}, domain.NewValidationError("tenant_id", "required")
	}
	g, err := s.repo.Get(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DailyGoals{}, nil
	}
	if err != nil {
		return domain.DailyGoals{}, fmt.Errorf("get goals: %w", err)
	}
	return g, nil
}

// Replace overwrites all goals; absent fields clear the target.
func (s *Service) Replace(ctx context.Context, tenantID string, g domain.DailyGoals) (domain.DailyGoals, error) {
	if tenantID == "" {
		return domain.DailyGoals{}, domain.NewValidationError("tenant_id", "required")
	}
	if err := g.Validate(); err != nil {
		return domain.DailyGoals{}, err
	}
	if err := s.repo.Save(ctx, tenantID, g); err != nil {
		return domain.DailyGoals{}, fmt.Errorf("save goals: %w", err)
	}
	s.log.InfoContext(ctx, "goals updated", slog.String("tenant_id", tenantID))
	return g, nil
}

// Patch overlays the present fields of patch onto the stored goals.
func (s *Service) Patch(ctx context.Context, tenantID string, patch domain.DailyGoals) (domain.DailyGoals, error) {
	if err := patch.Validate(); err != nil {
		return domain.DailyGoals{}, err
	}
	current, err := s.Get(ctx, tenantID)
	if err != nil {
		return domain.DailyGoals{}, err
	}
	return s.Replace(ctx, tenantID, current.Merge(patch))
}

// Progress compares the day's totals with every goal that has a target.
func (s *Service) Progress(ctx context.Context, tenantID string, date time.Time) (domain.DailyGoalsProgress, error) {
	g, err := s.Get(ctx, tenantID)
	if err != nil {
		return domain.DailyGoalsProgress{}, err
	}
	nutrition, err := s.sums.SummarizeNutrition(ctx, tenantID, date)
	if err != nil {
		return domain.DailyGoalsProgress{}, err
	}
	hydration, err := s.sums.SummarizeHydration(ctx, tenantID, date)
	if err != nil {
		return domain.DailyGoalsProgress{}, err
	}

	return domain.DailyGoalsProgress{
		Date:          domain.DateOf(date),
		Calories:      progress(g.CaloriesKcal, nutrition.Totals.CaloriesKcal),
		Protein:       progress(g.ProteinG, nutrition.Totals.ProteinG),
		Carbohydrates: progress(g.CarbohydratesG, nutrition.Totals.CarbohydratesG),
		Fat:           progress(g.FatG, nutrition.Totals.FatG),
		Water:         progress(g.WaterML, hydration.TotalVolumeML),
	}, nil
}

func progress(target decimal.NullDecimal, actual decimal.Decimal) *domain.GoalProgress {
	if !target.Valid {
		return nil
	}
	p := domain.NewGoalProgress(target.Decimal, actual)
	return &p
}
