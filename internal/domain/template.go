package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxTemplateNameLength = 128
	MaxTemplateItems      = 50
)

// MealTemplate is a named, reusable list of products a tenant logs together.
type MealTemplate struct {
	ID        uuid.UUID
	TenantID  string
	Name      string
	Items     []TemplateItem
	CreatedAt time.Time
}

// TemplateItem references a product by source and provider-scoped ID.
type TemplateItem struct {
	Source    Source
	ProductID string
	QuantityG decimal.Decimal
	Note      *string
}

// Validate checks template name and items.
func (t MealTemplate) Validate() error {
	var errs []FieldError

	n := utf8.RuneCountInString(strings.TrimSpace(t.Name))
	if n == 0 {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if n > MaxTemplateNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 128 characters"})
	}

	switch {
	case len(t.Items) == 0:
		errs = append(errs, FieldError{Field: "items", Message: "at least one item is required"})
	case len(t.Items) > MaxTemplateItems:
		errs = append(errs, FieldError{Field: "items", Message: "too many items"})
	}

	for _, item := range t.Items {
		if !item.Source.IsValid() {
			errs = append(errs, FieldError{Field: "items.source", Message: "unknown source"})
		}
		if strings.TrimSpace(item.ProductID) == "" {
			errs = append(errs, FieldError{Field: "items.product_id", Message: "required"})
		}
		if fe := validateQuantity(item.QuantityG); fe != nil {
			errs = append(errs, FieldError{Field: "items." + fe.Field, Message: fe.Message})
		}
		if fe := validateNote(item.Note); fe != nil {
			errs = append(errs, FieldError{Field: "items." + fe.Field, Message: fe.Message})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
