package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyGoals are optional per-tenant daily targets.
type DailyGoals struct {
	CaloriesKcal   decimal.NullDecimal
	ProteinG       decimal.NullDecimal
	CarbohydratesG decimal.NullDecimal
	FatG           decimal.NullDecimal
	WaterML        decimal.NullDecimal
}

// Validate rejects negative targets.
func (g DailyGoals) Validate() error {
	fields := []struct {
		name string
		v    decimal.NullDecimal
	}{
		{"calories_kcal", g.CaloriesKcal},
		{"protein_g", g.ProteinG},
		{"carbohydrates_g", g.CarbohydratesG},
		{"fat_g", g.FatG},
		{"water_ml", g.WaterML},
	}
	var errs []FieldError
	for _, f := range fields {
		if isNegative(f.v) {
			errs = append(errs, FieldError{Field: f.name, Message: "must be >= 0"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Merge overlays the present fields of patch onto g.
func (g DailyGoals) Merge(patch DailyGoals) DailyGoals {
	pick := func(cur, next decimal.NullDecimal) decimal.NullDecimal {
		if next.Valid {
			return next
		}
		return cur
	}
	return DailyGoals{
		CaloriesKcal:   pick(g.CaloriesKcal, patch.CaloriesKcal),
		ProteinG:       pick(g.ProteinG, patch.ProteinG),
		CarbohydratesG: pick(g.CarbohydratesG, patch.CarbohydratesG),
		FatG:           pick(g.FatG, patch.FatG),
		WaterML:        pick(g.WaterML, patch.WaterML),
	}
}

// GoalProgress compares an actual value against its target.
type GoalProgress struct {
	Target          decimal.Decimal
	Actual          decimal.Decimal
	Remaining       decimal.Decimal
	PercentAchieved decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewGoalProgress computes remaining (never negative) and the achieved
// percentage rounded to one decimal place. A zero target counts as 100%.
func NewGoalProgress(target, actual decimal.Decimal) GoalProgress {
	remaining := target.Sub(actual)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	percent := hundred
	if !target.IsZero() {
		percent = actual.Mul(hundred).Div(target).Round(1)
	}
	return GoalProgress{
		Target:          target,
		Actual:          actual,
		Remaining:       remaining,
		PercentAchieved: percent,
	}
}

// DailyGoalsProgress holds progress for every goal that has a target.
type DailyGoalsProgress struct {
	Date          time.Time
	Calories      *GoalProgress
	Protein       *GoalProgress
	Carbohydrates *GoalProgress
	Fat           *GoalProgress
	Water         *GoalProgress
}
