package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// MaxNameLength is the maximum product name length in runes.
	MaxNameLength = 512

	// UnknownProductName is used when a provider returns a record without a name.
	UnknownProductName = "Unknown Product"
)

// LiquidVolumePer100g is the volume assigned to every detected liquid.
// Providers do not report density, so 100 g is assumed to be 100 ml.
var LiquidVolumePer100g = decimal.NewFromInt(100)

// Product is the provider-agnostic, normalized product representation.
// All nutrient values are per 100 g, or per 100 ml when IsLiquid is set.
// ID is scoped to Source and is not unique across sources.
type Product struct {
	ID              string
	Source          Source
	Name            string
	Brand           *string
	Barcode         *string
	Macros          Macronutrients
	Micros          *Micronutrients
	IsLiquid        bool
	VolumeMLPer100g decimal.NullDecimal
}

// NewProduct validates p and returns it. Every normalizer builds products
// through this constructor so invariants hold from construction onward.
func NewProduct(p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate checks the product invariants.
func (p Product) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, FieldError{Field: "id", Message: "required"})
	}
	if !p.Source.IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "unknown source"})
	}
	n := utf8.RuneCountInString(p.Name)
	if n == 0 {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if n > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 512 characters"})
	}

	errs = append(errs, p.Macros.validate("macronutrients.")...)
	if p.Micros != nil {
		errs = append(errs, p.Micros.validate("micronutrients.")...)
	}

	if isNegative(p.VolumeMLPer100g) {
		errs = append(errs, FieldError{Field: "volume_ml_per_100g", Message: "must be >= 0"})
	}
	if p.IsLiquid && !p.VolumeMLPer100g.Valid {
		errs = append(errs, FieldError{Field: "volume_ml_per_100g", Message: "required when product is liquid"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Clone returns a deep copy so that a snapshot shares no pointers with p.
func (p Product) Clone() Product {
	c := p
	c.Brand = cloneString(p.Brand)
	c.Barcode = cloneString(p.Barcode)
	if p.Micros != nil {
		m := *p.Micros
		c.Micros = &m
	}
	return c
}

// TruncateName trims whitespace and cuts name to MaxNameLength runes.
func TruncateName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	return string([]rune(name)[:MaxNameLength])
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// OptionalString returns nil for blank strings.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
