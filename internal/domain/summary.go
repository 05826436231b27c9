package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NutritionTotals are summed scaled macronutrients. Unlike Macronutrients,
// fiber and sugar are always present: entries without the field contribute 0.
type NutritionTotals struct {
	CaloriesKcal   decimal.Decimal
	ProteinG       decimal.Decimal
	CarbohydratesG decimal.Decimal
	FatG           decimal.Decimal
	FiberG         decimal.Decimal
	SugarG         decimal.Decimal
}

// Add accumulates one entry's scaled macros into the totals.
func (t NutritionTotals) Add(m Macronutrients) NutritionTotals {
	t.CaloriesKcal = t.CaloriesKcal.Add(m.CaloriesKcal)
	t.ProteinG = t.ProteinG.Add(m.ProteinG)
	t.CarbohydratesG = t.CarbohydratesG.Add(m.CarbohydratesG)
	t.FatG = t.FatG.Add(m.FatG)
	if m.FiberG.Valid {
		t.FiberG = t.FiberG.Add(m.FiberG.Decimal)
	}
	if m.SugarG.Valid {
		t.SugarG = t.SugarG.Add(m.SugarG.Decimal)
	}
	return t
}

// DailyNutritionSummary is the nutrition total for one tenant and date.
type DailyNutritionSummary struct {
	Date       time.Time
	EntryCount int
	Totals     NutritionTotals
}

// DailyHydrationSummary is the liquid volume consumed on one date.
type DailyHydrationSummary struct {
	Date                time.Time
	TotalVolumeML       decimal.Decimal
	ContributingEntries int
}

// SummarizeNutrition folds entries into a nutrition summary for date.
// Entries are assumed to already belong to that date.
func SummarizeNutrition(date time.Time, entries []LogEntry) DailyNutritionSummary {
	s := DailyNutritionSummary{Date: DateOf(date), EntryCount: len(entries)}
	for _, e := range entries {
		s.Totals = s.Totals.Add(e.ScaledMacros())
	}
	return s
}

// SummarizeHydration sums consumed volume over the liquid entries.
func SummarizeHydration(date time.Time, entries []LogEntry) DailyHydrationSummary {
	s := DailyHydrationSummary{Date: DateOf(date)}
	for _, e := range entries {
		v := e.ConsumedVolumeML()
		if !v.Valid {
			continue
		}
		s.TotalVolumeML = s.TotalVolumeML.Add(v.Decimal)
		s.ContributingEntries++
	}
	return s
}
