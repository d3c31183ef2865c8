package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FranksOps/skim/internal/aggregate"
	"github.com/FranksOps/skim/internal/cache"
	"github.com/FranksOps/skim/internal/config"
	"github.com/FranksOps/skim/internal/engine"
	"github.com/FranksOps/skim/internal/fetch"
	"github.com/FranksOps/skim/internal/fingerprint"
	"github.com/FranksOps/skim/internal/parse"
	"github.com/FranksOps/skim/internal/rank"
	"github.com/FranksOps/skim/internal/storage"
	"github.com/FranksOps/skim/internal/storage/jsonbackend"
	"github.com/FranksOps/skim/internal/storage/postgres"
	"github.com/FranksOps/skim/internal/storage/sqlite"
	"github.com/FranksOps/skim/pkg/backoff"
	"github.com/FranksOps/skim/pkg/useragent"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "skim",
	Short: "Metasearch result aggregator",
	Long: `skim fans a query out to multiple search backends, extracts and
deduplicates the results, ranks them by relevance, and caches the
ranked set.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(reportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openArchive returns the configured archive backend, or nil when
// archiving is disabled.
func openArchive(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.ArchiveBackend {
	case "none":
		return nil, nil
	case "json":
		return jsonbackend.New(cfg.ArchiveDSN)
	case "sqlite":
		return sqlite.New(cfg.ArchiveDSN)
	case "postgres":
		return postgres.New(ctx, cfg.ArchiveDSN)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.ArchiveBackend)
	}
}

// buildAggregator wires the full pipeline from config. The returned
// cleanup closes the cache store and archive.
func buildAggregator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*aggregate.Aggregator, func(), error) {
	fetcher, err := fetch.NewFetcher(fetch.Config{
		Timeout:     cfg.Timeout,
		MaxRetries:  cfg.MaxRetries,
		Backoff:     backoff.Policy{Base: cfg.BackoffBase},
		UAPool:      useragent.NewPool(cfg.UserAgents),
		Fingerprint: fingerprint.Profile(cfg.Fingerprint),
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}

	archive, err := openArchive(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}

	store := cache.New(ctx, cfg.RedisAddr, logger)

	engines := make([]engine.Engine, 0, len(cfg.Engines))
	for _, e := range cfg.Engines {
		engines = append(engines, engine.Engine{Name: e.Name, BaseURL: e.URL})
	}

	agg := aggregate.New(aggregate.Config{
		Engines: engines,
		Workers: cfg.Workers,
		Quota:   cfg.Quota,
	}, fetcher, parse.New(parse.DefaultRuleset(), logger), rank.New(), store, archive, logger)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing cache store", "err", err)
		}
		if archive != nil {
			if err := archive.Close(); err != nil {
				logger.Warn("closing archive", "err", err)
			}
		}
	}
	return agg, cleanup, nil
}
