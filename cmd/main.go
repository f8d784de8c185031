// Command scoresync syncs cabinet save-data exports into the score
// database: one batch per export file, all plays merged into the
// per-player best records with a verbatim history trail.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/scoresync/internal/adapters/catalog"
	"github.com/okian/scoresync/internal/adapters/identity"
	"github.com/okian/scoresync/internal/adapters/repository"
	"github.com/okian/scoresync/internal/adapters/vendor"
	"github.com/okian/scoresync/internal/app"
	"github.com/okian/scoresync/internal/config"
	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/pkg/logger"
	"github.com/okian/scoresync/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
	drainTimeout      = 5 * time.Minute
)

func main() {
	pcbID := flag.String("pcbid", "", "cabinet PCBID the exports came from")
	cardID := flag.String("card", "", "player card the exports belong to")
	flag.Parse()
	exports := flag.Args()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if *pcbID == "" || *cardID == "" || len(exports) == 0 {
		os.Stderr.WriteString("usage: scoresync -pcbid PCBID -card CARD export.db [export.db ...]\n")
		return
	}

	// Parse every export up front so a malformed file fails the run
	// before any write happens.
	batches := make([]model.Batch, 0, len(exports))
	for _, path := range exports {
		f, err := os.Open(path)
		if err != nil {
			log.Error(ctx, "cannot open export", logger.String("path", path), logger.Error(err))
			return
		}
		subs, err := vendor.ParseExport(f, cfg.Game, cfg.GameVersion)
		_ = f.Close()
		if err != nil {
			log.Error(ctx, "cannot parse export", logger.String("path", path), logger.Error(err))
			return
		}
		batches = append(batches, model.Batch{
			CabinetRef:  *pcbID,
			PlayerRef:   *cardID,
			Submissions: subs,
		})
		log.Info(ctx, "export parsed", logger.String("path", path), logger.Int("plays", len(subs)))
	}

	resolver, cat, store, cleanup, err := buildAdapters(ctx, cfg, *pcbID, *cardID, batches)
	if err != nil {
		log.Error(ctx, "failed to build adapters", logger.Error(err))
		return
	}
	defer cleanup()

	svc := app.New(resolver, cat, store,
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	for _, b := range batches {
		if !svc.Enqueue(ctx, b) {
			log.Error(ctx, "failed to enqueue batch", logger.String("cabinet", b.CabinetRef))
		}
	}

	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		log.Error(ctx, "sync did not finish", logger.Error(err))
		return
	}
	log.Info(ctx, "all exports synced", logger.Int("batches", len(batches)))
}

// buildAdapters wires the store, identity resolver and chart catalog
// for the configured backend. The memory backend is a dry-run mode: it
// accepts the given identifiers and every chart seen in the exports.
func buildAdapters(ctx context.Context, cfg *config.Config, pcbID, cardID string, batches []model.Batch) (identity.Resolver, catalog.Catalog, repository.Store, func(), error) {
	if cfg.Store == "memory" {
		resolver := identity.NewMemoryResolver()
		resolver.AddCabinet(pcbID, 1)
		resolver.AddPlayer(cardID, 1)

		cat := catalog.NewMemoryCatalog()
		var next int64 = 1
		for _, b := range batches {
			for _, sub := range b.Submissions {
				if _, err := cat.ResolveChart(ctx, sub.Chart); err != nil {
					cat.AddChart(sub.Chart, next)
					next++
				}
			}
		}
		return resolver, cat, repository.NewMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return identity.NewPostgresResolver(pool),
		catalog.NewPostgresCatalog(pool),
		repository.NewPostgresStore(pool),
		pool.Close,
		nil
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "metrics listener started", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "metrics listener failed", logger.Error(err))
	}
}
