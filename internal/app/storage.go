package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/memory"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/postgres"
	pggoals "github.com/heartmarshall/nutrition-backend/internal/adapter/postgres/goals"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/postgres/logentry"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/nutrition-backend/internal/config"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type logStore interface {
	Save(ctx context.Context, e domain.LogEntry) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error)
	FindByDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error)
	FindByDateRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.LogEntry, error)
	Update(ctx context.Context, e domain.LogEntry) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)
}

type goalsStore interface {
	Get(ctx context.Context, tenantID string) (domain.DailyGoals, error)
	Save(ctx context.Context, tenantID string, g domain.DailyGoals) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage bundles the persistence selected by STORAGE_DRIVER. Manual
// products and meal templates always live in memory.
type storage struct {
	driver string
	logs   logStore
	goals  goalsStore
	tx     txManager
	ping   func(ctx context.Context) error
	close  func()
}

// Ping implements the health handler's storage check.
func (s *storage) Ping(ctx context.Context) error { return s.ping(ctx) }

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return &storage{
			driver: config.StorageMemory,
			logs:   memory.NewLogStore(),
			goals:  memory.NewGoalsStore(),
			tx:     memory.NewTxManager(),
			ping:   func(context.Context) error { return nil },
			close:  func() {},
		}, nil

	case config.StoragePostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &storage{
			driver: config.StoragePostgres,
			logs:   logentry.New(pool),
			goals:  pggoals.New(pool),
			tx:     postgres.NewTxManager(pool),
			ping:   pool.Ping,
			close:  pool.Close,
		}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		return &storage{
			driver: config.StorageSQLite,
			logs:   sqlite.NewLogStore(db),
			goals:  sqlite.NewGoalsStore(db),
			tx:     sqlite.NewTxManager(db),
			ping:   sqlDB.PingContext,
			close: func() {
				if err := sqlite.Close(db); err != nil {
					logger.Warn("close sqlite", slog.String("error", err.Error()))
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
