package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("quantity_g", "must be > 0")

	if got := err.Error(); got != "validation: quantity_g: must be > 0" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "name", Message: "required"},
		{Field: "volume_ml_per_100g", Message: "required when product is liquid"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrValidation, ErrExternal, ErrUnauthorized}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestProductNotFoundError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", &ProductNotFoundError{ProductID: "123", Source: SourceUSDA})

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
	var exhausted *SourcesExhaustedError
	if errors.As(err, &exhausted) {
		t.Fatal("single provider miss must not look like exhaustion")
	}
}

func TestSourcesExhaustedError(t *testing.T) {
	t.Parallel()

	err := &SourcesExhaustedError{ProductID: "5449000000996", Tried: []Source{SourceOpenFoodFacts, SourceUSDA}}

	want := `product "5449000000996" not found in any configured source (tried: open_food_facts, usda_fooddata)`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
}

func TestExternalError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := fmt.Errorf("lookup: %w", NewExternalError(SourceOpenFoodFacts, "request failed", cause))

	if !errors.Is(err, ErrExternal) {
		t.Fatal("expected ErrExternal")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	var ext *ExternalError
	if !errors.As(err, &ext) || ext.Source != SourceOpenFoodFacts {
		t.Fatalf("errors.As failed or wrong source: %+v", ext)
	}
}
