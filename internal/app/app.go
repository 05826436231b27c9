package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/adapter/memory"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/manual"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/openfoodfacts"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/upstream"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/provider/usda"
	"github.com/heartmarshall/nutrition-backend/internal/adapter/webhook"
	"github.com/heartmarshall/nutrition-backend/internal/config"
	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/metrics"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
	"github.com/heartmarshall/nutrition-backend/internal/service/barcode"
	"github.com/heartmarshall/nutrition-backend/internal/service/export"
	"github.com/heartmarshall/nutrition-backend/internal/service/goals"
	"github.com/heartmarshall/nutrition-backend/internal/service/logbook"
	"github.com/heartmarshall/nutrition-backend/internal/service/product"
	"github.com/heartmarshall/nutrition-backend/internal/service/productcache"
	"github.com/heartmarshall/nutrition-backend/internal/service/template"
	"github.com/heartmarshall/nutrition-backend/internal/transport/middleware"
	"github.com/heartmarshall/nutrition-backend/internal/transport/rest"
)

const rateLimitCleanup = time.Minute

// Run is the application entry point. It loads configuration, opens the
// selected storage, wires providers and services, and serves HTTP until ctx
// is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("timezone", cfg.Time.Timezone),
	)

	if unknown := config.UnknownSources(cfg.Providers.Order); len(unknown) > 0 {
		logger.Warn("lookup order names unknown sources", slog.Any("sources", unknown))
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	handler, stop := buildHandler(cfg, store, logger)
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// buildHandler wires providers, services and the router. The returned func
// releases background workers.
func buildHandler(cfg *config.Config, store *storage, logger *slog.Logger) (http.Handler, func()) {
	client := &http.Client{}
	pcfg := cfg.Providers
	m := metrics.New()

	products := memory.NewProductStore()
	registry := provider.NewRegistry(map[domain.Source]provider.Fetcher{
		domain.SourceOpenFoodFacts: openfoodfacts.NewProvider(openfoodfacts.Config{
			BaseURL:       pcfg.OpenFoodFacts.BaseURL,
			FetchTimeout:  pcfg.FetchTimeout,
			SearchTimeout: pcfg.SearchTimeout,
			Limiter:       upstream.NewLimiter(pcfg.OpenFoodFacts.RPS, pcfg.OpenFoodFacts.Burst),
			Recorder:      m,
		}, client, logger),
		domain.SourceUSDA: usda.NewProvider(usda.Config{
			BaseURL:       pcfg.USDA.BaseURL,
			APIKey:        pcfg.USDA.APIKey,
			FetchTimeout:  pcfg.FetchTimeout,
			SearchTimeout: pcfg.SearchTimeout,
			Limiter:       upstream.NewLimiter(pcfg.USDA.RPS, pcfg.USDA.Burst),
			Recorder:      m,
		}, client, logger),
		domain.SourceManual: manual.NewProvider(products, logger),
	})

	opts := []logbook.Option{
		logbook.WithLocation(cfg.Time.Location),
		logbook.WithCacheMetrics(m),
	}
	if cfg.Webhook.Enabled {
		n := webhook.NewNotifier(cfg.Webhook.URL, webhook.Style(cfg.Webhook.Style), client, logger)
		opts = append(opts, logbook.WithNotifier(n))
	}
	book := logbook.NewService(logger, store.logs, productcache.New(pcfg.CacheTTL), registry, opts...)

	h := rest.Handlers{
		Health: rest.NewHealthHandler(store, store.driver, BuildVersion(), pcfg.Order),
		Products: rest.NewProductHandler(
			barcode.NewService(logger, registry, pcfg.Order),
			product.NewService(logger, products, registry),
			logger,
		),
		Logs:      rest.NewLogHandler(book, logger),
		Goals:     rest.NewGoalsHandler(goals.NewService(logger, store.goals, book), book, logger),
		Templates: rest.NewTemplateHandler(template.NewService(logger, memory.NewTemplateStore(), book, store.tx), logger),
		Export:    rest.NewExportHandler(export.NewService(logger, book), logger),
		Metrics:   m.Handler(),
	}

	var (
		limit middleware.Middleware
		stop  = func() {}
	)
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(rateLimitCleanup)
		limit = rl.Limit(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		stop = rl.Stop
	}
	api := middleware.Chain(
		middleware.Auth(middleware.StaticKeys(cfg.Auth.APIKeys)),
		middleware.When(cfg.RateLimit.Enabled, limit),
	)

	global := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(m),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)
	return global(rest.NewRouter(h, api)), stop
}
