package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewTenant returns a tenant ID no other test uses.
func NewTenant() string {
	return "tenant-" + uniqueSuffix()
}

// SeedEntry inserts a minimal log entry for tenantID on date and returns its ID.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, tenantID string, date time.Time) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO log_entries (id, tenant_id, log_date, product, quantity_g, consumed_at)
		 VALUES ($1, $2, $3, $4, 100, now())`,
		id, tenantID, date,
		[]byte(`{"id":"seed-`+uniqueSuffix()+`","source":"manual","name":"Seeded","macronutrients":{"calories_kcal":"100","protein_g":"0","carbohydrates_g":"0","fat_g":"0"},"is_liquid":false}`),
	)
	if err != nil {
		t.Fatalf("SeedEntry: %v", err)
	}
	return id
}
