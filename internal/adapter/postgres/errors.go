package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

// SQLSTATE codes that indicate bad input rather than a storage failure.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
	codeInvalidTextForm     = "22P02"
	codeStringDataTruncated = "22001"
)

// MapError converts pgx errors into domain errors, prefixed with the entity
// and id. Context cancellation passes through unmapped.
func MapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s %s: already exists: %w", entity, id, domain.ErrValidation)
		case codeCheckViolation, codeStringDataTruncated:
			return fmt.Errorf("%s %s: %s: %w", entity, id, pgErr.ConstraintName+pgErr.ColumnName, domain.ErrValidation)
		case codeNumericOutOfRange, codeInvalidTextForm:
			return fmt.Errorf("%s %s: invalid number: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
