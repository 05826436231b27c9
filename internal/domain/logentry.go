package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxNoteLength is the maximum note length in runes.
const MaxNoteLength = 1024

// Consumed volume is rounded to this many decimal places.
const volumePlaces = 1

// LogEntry is a single consumption record. Product is a snapshot taken when
// the entry was created; updates only ever touch QuantityG and Note.
type LogEntry struct {
	ID         uuid.UUID
	TenantID   string
	LogDate    time.Time
	Product    Product
	QuantityG  decimal.Decimal
	ConsumedAt time.Time
	Note       *string
}

// ScaledMacros returns the macronutrients actually consumed.
func (e LogEntry) ScaledMacros() Macronutrients {
	return e.Product.Macros.Scale(e.QuantityG)
}

// ConsumedVolumeML returns quantity * volume/100 rounded to one decimal place.
// It is absent for non-liquid products.
func (e LogEntry) ConsumedVolumeML() decimal.NullDecimal {
	if !e.Product.IsLiquid || !e.Product.VolumeMLPer100g.Valid {
		return decimal.NullDecimal{}
	}
	v := e.QuantityG.Mul(e.Product.VolumeMLPer100g.Decimal).Shift(-2).Round(volumePlaces)
	return decimal.NewNullDecimal(v)
}

// LogEntryUpdate carries the mutable fields of an entry. Nil fields are left as is.
type LogEntryUpdate struct {
	QuantityG *decimal.Decimal
	Note      *string
}

// Apply returns a copy of e with the update applied.
func (u LogEntryUpdate) Apply(e LogEntry) LogEntry {
	if u.QuantityG != nil {
		e.QuantityG = *u.QuantityG
	}
	if u.Note != nil {
		e.Note = OptionalString(*u.Note)
	}
	return e
}

// Validate checks the quantity and note of an update.
func (u LogEntryUpdate) Validate() error {
	var errs []FieldError
	if u.QuantityG != nil {
		if fe := validateQuantity(*u.QuantityG); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if u.Note != nil {
		if fe := validateNote(u.Note); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ValidateQuantityAndNote checks the user-supplied fields of a new entry.
func ValidateQuantityAndNote(quantityG decimal.Decimal, note *string) error {
	var errs []FieldError
	if fe := validateQuantity(quantityG); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateNote(note); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func validateQuantity(q decimal.Decimal) *FieldError {
	if !q.IsPositive() {
		return &FieldError{Field: "quantity_g", Message: "must be > 0"}
	}
	return nil
}

func validateNote(note *string) *FieldError {
	if note != nil && utf8.RuneCountInString(*note) > MaxNoteLength {
		return &FieldError{Field: "note", Message: "must be at most 1024 characters"}
	}
	return nil
}
