// Package goals implements the daily goals store on PostgreSQL.
package goals

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/nutrition-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

const (
	table  = "daily_goals"
	entity = "daily_goals"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides goals persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new goals repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the tenant's goals or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, tenantID string) (domain.DailyGoals, error) {
	query, args, err := psql.Select(
		"calories_kcal::text",
		"protein_g::text",
		"carbohydrates_g::text",
		"fat_g::text",
		"water_ml::text",
	).From(table).Where(sq.Eq{"tenant_id": tenantID}).ToSql()
	if err != nil {
		return domain.DailyGoals{}, fmt.Errorf("build query: %w", err)
	}

	var calories, protein, carbs, fat, water *string
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&calories, &protein, &carbs, &fat, &water)
	if err != nil {
		return domain.DailyGoals{}, postgres.MapError(err, entity, tenantID)
	}

	var g domain.DailyGoals
	for _, f := range []struct {
		raw *string
		dst *decimal.NullDecimal
	}{
		{calories, &g.CaloriesKcal},
		{protein, &g.ProteinG},
		{carbs, &g.CarbohydratesG},
		{fat, &g.FatG},
		{water, &g.WaterML},
	} {
		if f.raw == nil {
			continue
		}
		d, err := decimal.NewFromString(*f.raw)
		if err != nil {
			return domain.DailyGoals{}, fmt.Errorf("parse goal value: %w", err)
		}
		*f.dst = decimal.NewNullDecimal(d)
	}
	return g, nil
}

// Save upserts the tenant's goals.
func (r *Repo) Save(ctx context.Context, tenantID string, g domain.DailyGoals) error {
	query, args, err := psql.Insert(table).
		Columns("tenant_id", "calories_kcal", "protein_g", "carbohydrates_g", "fat_g", "water_ml", "updated_at").
		Values(tenantID, numeric(g.CaloriesKcal), numeric(g.ProteinG), numeric(g.CarbohydratesG),
			numeric(g.FatG), numeric(g.WaterML), sq.Expr("now()")).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			calories_kcal = EXCLUDED.calories_kcal,
			protein_g = EXCLUDED.protein_g,
			carbohydrates_g = EXCLUDED.carbohydrates_g,
			fat_g = EXCLUDED.fat_g,
			water_ml = EXCLUDED.water_ml,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, tenantID)
	}
	return nil
}

// numeric renders an optional decimal as a text parameter cast to numeric.
func numeric(v decimal.NullDecimal) sq.Sqlizer {
	if !v.Valid {
		return sq.Expr("NULL")
	}
	return sq.Expr("?::numeric", v.Decimal.String())
}
