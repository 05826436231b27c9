package domain

import (
	"github.com/shopspring/decimal"
)

// Scaled macronutrients are rounded to this many decimal places.
const scaledPlaces = 2

// Macronutrients holds energy and macro values per 100 g (or 100 ml for liquids).
// Fiber and sugar are optional: an invalid NullDecimal means "no data", which
// is distinct from zero.
type Macronutrients struct {
	CaloriesKcal   decimal.Decimal
	ProteinG       decimal.Decimal
	CarbohydratesG decimal.Decimal
	FatG           decimal.Decimal
	FiberG         decimal.NullDecimal
	SugarG         decimal.NullDecimal
}

// Micronutrients holds optional mineral and vitamin values per 100 g.
// Vitamin D is in micrograms, everything else in milligrams.
type Micronutrients struct {
	SodiumMg    decimal.NullDecimal
	PotassiumMg decimal.NullDecimal
	CalciumMg   decimal.NullDecimal
	IronMg      decimal.NullDecimal
	VitaminCMg  decimal.NullDecimal
	VitaminDUg  decimal.NullDecimal
}

// Scale converts per-100 g values into the absolute amounts contained in
// quantityG grams. Every field is rounded half-up to two decimal places;
// absent optional fields stay absent, zero optional fields stay zero.
func (m Macronutrients) Scale(quantityG decimal.Decimal) Macronutrients {
	return Macronutrients{
		CaloriesKcal:   scaleValue(m.CaloriesKcal, quantityG),
		ProteinG:       scaleValue(m.ProteinG, quantityG),
		CarbohydratesG: scaleValue(m.CarbohydratesG, quantityG),
		FatG:           scaleValue(m.FatG, quantityG),
		FiberG:         scaleOptional(m.FiberG, quantityG),
		SugarG:         scaleOptional(m.SugarG, quantityG),
	}
}

// IsEmpty reports whether no micronutrient value is present.
func (m Micronutrients) IsEmpty() bool {
	for _, v := range m.values() {
		if v.Valid {
			return false
		}
	}
	return true
}

func (m Macronutrients) validate(prefix string) []FieldError {
	var errs []FieldError
	required := []struct {
		name string
		v    decimal.Decimal
	}{
		{"calories_kcal", m.CaloriesKcal},
		{"protein_g", m.ProteinG},
		{"carbohydrates_g", m.CarbohydratesG},
		{"fat_g", m.FatG},
	}
	for _, f := range required {
		if f.v.IsNegative() {
			errs = append(errs, FieldError{Field: prefix + f.name, Message: "must be >= 0"})
		}
	}
	if isNegative(m.FiberG) {
		errs = append(errs, FieldError{Field: prefix + "fiber_g", Message: "must be >= 0"})
	}
	if isNegative(m.SugarG) {
		errs = append(errs, FieldError{Field: prefix + "sugar_g", Message: "must be >= 0"})
	}
	return errs
}

func (m Micronutrients) validate(prefix string) []FieldError {
	names := []string{"sodium_mg", "potassium_mg", "calcium_mg", "iron_mg", "vitamin_c_mg", "vitamin_d_ug"}
	var errs []FieldError
	for i, v := range m.values() {
		if isNegative(v) {
			errs = append(errs, FieldError{Field: prefix + names[i], Message: "must be >= 0"})
		}
	}
	return errs
}

func (m Micronutrients) values() []decimal.NullDecimal {
	return []decimal.NullDecimal{m.SodiumMg, m.PotassiumMg, m.CalciumMg, m.IronMg, m.VitaminCMg, m.VitaminDUg}
}

// scaleValue computes v * q / 100. Shift(-2) is an exact division by 100.
func scaleValue(v, quantityG decimal.Decimal) decimal.Decimal {
	return v.Mul(quantityG).Shift(-2).Round(scaledPlaces)
}

func scaleOptional(v decimal.NullDecimal, quantityG decimal.Decimal) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(scaleValue(v.Decimal, quantityG))
}

func isNegative(v decimal.NullDecimal) bool {
	return v.Valid && v.Decimal.IsNegative()
}

// Dec is shorthand for an optional decimal value.
func Dec(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
