package goals

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

func newMock(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func strPtr(s string) *string { return &s }

func TestRepo_Get(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	var none *string
	mock.ExpectQuery(`SELECT calories_kcal::text, (.+) FROM daily_goals WHERE tenant_id = \$1`).
		WithArgs("tenant").
		WillReturnRows(pgxmock.NewRows([]string{"calories_kcal", "protein_g", "carbohydrates_g", "fat_g", "water_ml"}).
			AddRow(strPtr("2000"), strPtr("120.5"), none, none, strPtr("2500")))

	g, err := repo.Get(context.Background(), "tenant")
	require.NoError(t, err)
	assert.Equal(t, "2000", g.CaloriesKcal.Decimal.String())
	assert.Equal(t, "120.5", g.ProteinG.Decimal.String())
	assert.False(t, g.CarbohydratesG.Valid)
	assert.False(t, g.FatG.Valid)
	assert.True(t, g.WaterML.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM daily_goals`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Save(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO daily_goals \(tenant_id,calories_kcal,protein_g,carbohydrates_g,fat_g,water_ml,updated_at\) VALUES \(\$1,\$2::numeric,NULL,NULL,NULL,\$3::numeric,now\(\)\) ON CONFLICT \(tenant_id\) DO UPDATE`).
		WithArgs("tenant", "2000", "2500").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Save(context.Background(), "tenant", domain.DailyGoals{
		CaloriesKcal: domain.Dec(decimal.NewFromInt(2000)),
		WaterML:      domain.Dec(decimal.NewFromInt(2500)),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
