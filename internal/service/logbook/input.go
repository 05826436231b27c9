package logbook

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// CreateEntryInput holds the parameters for logging a product.
type CreateEntryInput struct {
	Source    domain.Source
	ProductID string
	QuantityG decimal.Decimal
	LogDate   *time.Time // nil = today in the reference time zone
	Note      *string
}

// Validate checks all fields and collects all errors.
func (i CreateEntryInput) Validate() error {
	var errs []domain.FieldError

	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "unknown source"})
	}
	if strings.TrimSpace(i.ProductID) == "" {
		errs = append(errs, domain.FieldError{Field: "product_id", Message: "required"})
	}
	if err := domain.ValidateQuantityAndNote(i.QuantityG, i.Note); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTenant(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return domain.NewValidationError("tenant_id", "required")
	}
	return nil
}
