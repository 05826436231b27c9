package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// goalsRow stores targets as decimal text; NULL means no target.
type goalsRow struct {
	TenantID       string `gorm:"primaryKey"`
	CaloriesKcal   *string
	ProteinG       *string
	CarbohydratesG *string
	FatG           *string
	WaterML        *string `gorm:"column:water_ml"`
	UpdatedAt      time.Time
}

func (goalsRow) TableName() string { return "daily_goals" }

// GoalsStore persists daily goals in SQLite.
type GoalsStore struct {
	db *gorm.DB
}

// NewGoalsStore creates a GoalsStore on an opened database.
func NewGoalsStore(db *gorm.DB) *GoalsStore {
	return &GoalsStore{db: db}
}

// Get returns the tenant's goals or domain.ErrNotFound.
func (s *GoalsStore) Get(ctx context.Context, tenantID string) (domain.DailyGoals, error) {
	var row goalsRow
	err := conn(ctx, s.db).Where("tenant_id = ?", tenantID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailyGoals{}, fmt.Errorf("goals for %s: %w", tenantID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.DailyGoals{}, fmt.Errorf("find goals: %w", err)
	}

	var g domain.DailyGoals
	for _, f := range []struct {
		raw *string
		dst *decimal.NullDecimal
	}{
		{row.CaloriesKcal, &g.CaloriesKcal},
		{row.ProteinG, &g.ProteinG},
		{row.CarbohydratesG, &g.CarbohydratesG},
		{row.FatG, &g.FatG},
		{row.WaterML, &g.WaterML},
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
func (s *GoalsStore) Save(ctx context.Context, tenantID string, g domain.DailyGoals) error {
	row := goalsRow{
		TenantID:       tenantID,
		CaloriesKcal:   text(g.CaloriesKcal),
		ProteinG:       text(g.ProteinG),
		CarbohydratesG: text(g.CarbohydratesG),
		FatG:           text(g.FatG),
		WaterML:        text(g.WaterML),
		UpdatedAt:      time.Now().UTC(),
	}
	err := conn(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

func text(v decimal.NullDecimal) *string {
	if !v.Valid {
		return nil
	}
	s := v.Decimal.String()
	return &s
}
