package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"testament/internal/estate"
	"testament/internal/estate/service"
	"testament/internal/estate/store"
	"testament/internal/estate/store/memory"
	"testament/internal/estate/store/postgres"
	"testament/internal/platform/config"
	"testament/internal/platform/httpserver"
	"testament/internal/platform/logger"
	"testament/internal/platform/metrics"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/estate packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store initialization failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	wills := estate.NewService(st, service.WithLogger(log), service.WithMetrics(m))
	queries := estate.NewQuery(st)
	h := estate.NewHandler(wills, queries, log, m)

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting estate record service", "addr", cfg.Addr, "store", cfg.StoreKind)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

// buildStore selects the persistence backend from config. The cleanup func
// is a no-op for the memory store.
func buildStore(ctx context.Context, cfg config.Server) (store.Store, func(), error) {
	if cfg.StoreKind != config.StorePostgres {
		return memory.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	st := postgres.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return st, pool.Close, nil
}
