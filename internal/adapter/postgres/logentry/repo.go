// Package logentry implements the consumption log store on PostgreSQL.
// The product snapshot is kept as JSONB next to the entry.
package logentry

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/nutrition-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/snapshot"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

const (
	table  = "log_entries"
	entity = "log_entry"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// columns are selected in scanEntry order. Numerics travel as text so no
// precision is lost on the way to decimal.Decimal.
var columns = []string{
	"id",
	"tenant_id",
	"log_date",
	"product",
	"quantity_g::text",
	"consumed_at",
	"note",
}

// Repo provides log entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new log entry repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByID returns the tenant's entry or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	e, err := scanEntry(row)
	if err != nil {
		return domain.LogEntry{}, postgres.MapError(err, entity, id.String())
	}
	return e, nil
}

// FindByDate returns the tenant's entries for one day in consumption order.
func (r *Repo) FindByDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error) {
	return r.list(ctx, sq.Eq{"tenant_id": tenantID, "log_date": domain.DateOf(date)})
}

// FindByDateRange returns the tenant's entries with start <= log_date <= end.
func (r *Repo) FindByDateRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error) {
	return r.list(ctx, sq.And{
		sq.Eq{"tenant_id": tenantID},
		sq.GtOrEq{"log_date": domain.DateOf(start)},
		sq.LtOrEq{"log_date": domain.DateOf(end)},
	})
}

func (r *Repo) list(ctx context.Context, where sq.Sqlizer) ([]domain.LogEntry, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy("log_date", "consumed_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log_entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log_entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list log_entries: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save inserts a new entry.
func (r *Repo) Save(ctx context.Context, e domain.LogEntry) error {
	product, err := snapshot.EncodeProduct(e.Product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	query, args, err := psql.Insert(table).
		Columns("id", "tenant_id", "log_date", "product", "quantity_g", "consumed_at", "note").
		Values(e.ID, e.TenantID, e.LogDate, product, sq.Expr("?::numeric", e.QuantityG.String()), e.ConsumedAt, e.Note).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, e.ID.String())
	}
	return nil
}

// Update writes quantity and note. Other columns are immutable.
func (r *Repo) Update(ctx context.Context, e domain.LogEntry) error {
	query, args, err := psql.Update(table).
		Set("quantity_g", sq.Expr("?::numeric", e.QuantityG.String())).
		Set("note", e.Note).
		Where(sq.Eq{"id": e.ID, "tenant_id": e.TenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, e.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, e.ID.String())
	}
	return nil
}

// Delete removes the tenant's entry and reports whether a row was deleted.
func (r *Repo) Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, entity, id.String())
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.LogEntry, error) {
	var (
		e        domain.LogEntry
		product  []byte
		quantity string
	)
	if err := row.Scan(&e.ID, &e.TenantID, &e.LogDate, &product, &quantity, &e.ConsumedAt, &e.Note); err != nil {
		return domain.LogEntry{}, err
	}

	p, err := snapshot.DecodeProduct(product)
	if err != nil {
		return domain.LogEntry{}, err
	}
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("parse quantity_g: %w", err)
	}

	e.Product = p
	e.QuantityG = q
	e.LogDate = domain.DateOf(e.LogDate)
	e.ConsumedAt = e.ConsumedAt.UTC()
	return e, nil
}
