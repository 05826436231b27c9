package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func liquidProduct() Product {
	p := validProduct()
	p.ID = "5449000000996"
	p.Name = "Cola"
	p.Macros = Macronutrients{CaloriesKcal: d("42"), CarbohydratesG: d("10.6"), SugarG: Dec(d("10.6"))}
	p.IsLiquid = true
	p.VolumeMLPer100g = Dec(LiquidVolumePer100g)
	return p
}

func entryOf(p Product, qty string) LogEntry {
	return LogEntry{
		ID:         uuid.New(),
		TenantID:   "tenant-a",
		LogDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Product:    p,
		QuantityG:  d(qty),
		ConsumedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLogEntry_ScaledMacros(t *testing.T) {
	t.Parallel()

	e := entryOf(liquidProduct(), "250")
	if got := e.ScaledMacros().CaloriesKcal.StringFixed(2); got != "105.00" {
		t.Errorf("calories = %s, want 105.00", got)
	}
}

func TestLogEntry_ConsumedVolumeML(t *testing.T) {
	t.Parallel()

	e := entryOf(liquidProduct(), "250")
	v := e.ConsumedVolumeML()
	if !v.Valid || v.Decimal.StringFixed(1) != "250.0" {
		t.Errorf("volume = %+v, want 250.0", v)
	}

	solid := entryOf(validProduct(), "250")
	if solid.ConsumedVolumeML().Valid {
		t.Error("non-liquid entries have no volume")
	}
}

func TestLogEntry_ConsumedVolumeML_Rounding(t *testing.T) {
	t.Parallel()

	e := entryOf(liquidProduct(), "33.35")
	// 33.35 * 100 / 100 = 33.35 -> 33.4
	if got := e.ConsumedVolumeML().Decimal.StringFixed(1); got != "33.4" {
		t.Errorf("volume = %s, want 33.4", got)
	}
}

func TestLogEntryUpdate_Apply(t *testing.T) {
	t.Parallel()

	e := entryOf(liquidProduct(), "250")
	qty := d("330")
	note := "  after run "

	updated := LogEntryUpdate{QuantityG: &qty, Note: &note}.Apply(e)

	if !updated.QuantityG.Equal(qty) {
		t.Errorf("quantity = %s", updated.QuantityG)
	}
	if updated.Note == nil || *updated.Note != "after run" {
		t.Errorf("note = %v", updated.Note)
	}
	if updated.Product.Name != e.Product.Name || !e.QuantityG.Equal(d("250")) {
		t.Error("apply must not touch the product or the original entry")
	}

	empty := ""
	cleared := LogEntryUpdate{Note: &empty}.Apply(updated)
	if cleared.Note != nil {
		t.Errorf("blank note should clear, got %q", *cleared.Note)
	}
}

func TestValidateQuantityAndNote(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("n", MaxNoteLength+1)
	tests := []struct {
		name    string
		qty     decimal.Decimal
		note    *string
		wantErr bool
	}{
		{"ok", d("0.5"), nil, false},
		{"zero quantity", decimal.Zero, nil, true},
		{"negative quantity", d("-10"), nil, true},
		{"note too long", d("10"), &long, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateQuantityAndNote(tt.qty, tt.note)
			if tt.wantErr != errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarizeNutrition(t *testing.T) {
	t.Parallel()

	withFiber := validProduct()
	withFiber.Macros.FiberG = Dec(d("4"))

	entries := []LogEntry{
		entryOf(withFiber, "50"),
		entryOf(validProduct(), "100"),
	}
	s := SummarizeNutrition(entries[0].LogDate, entries)

	if s.EntryCount != 2 {
		t.Errorf("EntryCount = %d", s.EntryCount)
	}
	// 539*0.5 + 539 = 808.50
	if got := s.Totals.CaloriesKcal.StringFixed(2); got != "808.50" {
		t.Errorf("calories = %s", got)
	}
	if got := s.Totals.FiberG.StringFixed(2); got != "2.00" {
		t.Errorf("fiber = %s, want 2.00", got)
	}
	if !s.Totals.SugarG.IsZero() {
		t.Errorf("sugar = %s, want 0", s.Totals.SugarG)
	}
}

func TestSummarizeHydration(t *testing.T) {
	t.Parallel()

	entries := []LogEntry{
		entryOf(liquidProduct(), "250"),
		entryOf(validProduct(), "30"),
		entryOf(liquidProduct(), "330"),
	}
	s := SummarizeHydration(entries[0].LogDate, entries)

	if s.ContributingEntries != 2 {
		t.Errorf("ContributingEntries = %d, want 2", s.ContributingEntries)
	}
	if got := s.TotalVolumeML.StringFixed(1); got != "580.0" {
		t.Errorf("TotalVolumeML = %s, want 580.0", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	n := SummarizeNutrition(day, nil)
	h := SummarizeHydration(day, nil)

	if n.EntryCount != 0 || !n.Totals.CaloriesKcal.IsZero() || !n.Date.Equal(DateOf(day)) {
		t.Errorf("unexpected nutrition summary %+v", n)
	}
	if h.ContributingEntries != 0 || !h.TotalVolumeML.IsZero() {
		t.Errorf("unexpected hydration summary %+v", h)
	}
}
