// Command migrate applies the PostgreSQL schema migrations and exits. Use it
// when DATABASE_AUTO_MIGRATE is off and schema changes are rolled out
// separately from the server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nutrition-backend/internal/app"
	"github.com/heartmarshall/nutrition-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Storage.Driver != config.StoragePostgres {
		logger.Error("migrations only apply to the postgres driver",
			slog.String("driver", cfg.Storage.Driver),
		)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
