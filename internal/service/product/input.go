package product

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// ManualProductInput describes a product entered by hand. Nutrient values
// are per 100 g (or per 100 ml for liquids).
type ManualProductInput struct {
	Name            string
	Brand           *string
	Barcode         *string
	Macros          domain.Macronutrients
	Micros          *domain.Micronutrients
	IsLiquid        bool
	VolumeMLPer100g decimal.NullDecimal
}

// SearchInput selects a source and a free-text query.
type SearchInput struct {
	Source domain.Source
	Query  string
	Limit  int
}

func (i SearchInput) Validate() error {
	var errs []domain.FieldError
	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "unknown source"})
	}
	if strings.TrimSpace(i.Query) == "" {
		errs = append(errs, domain.FieldError{Field: "q", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func newUUID() string { return uuid.NewString() }
