// Package main - точка входа интерактивного реестра студентов.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries) за фасадом Manager
// - Infrastructure: реализации репозитория (jsonfile/sqlite/memory), CSV
// - Interface: интерактивное терминальное меню
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/alem-hub/student-registry/config"
	"github.com/alem-hub/student-registry/internal/application/manager"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/sqlite"
	"github.com/alem-hub/student-registry/internal/interface/cli"
	"github.com/alem-hub/student-registry/internal/observability"
	"github.com/alem-hub/student-registry/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	repo, cleanup, err := buildRepository(cfg, log)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer cleanup()

	metrics := observability.New()
	if !cfg.Observability.Enabled {
		metrics = observability.NewDisabled()
	}
	m := manager.New(repo, log, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("registry started",
		logger.Backend(string(cfg.Storage.Backend)),
		logger.String("log_level", cfg.Log.Level),
	)

	app := cli.New(m, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		return err
	}

	if cfg.Observability.PrintSummaryOnExit {
		printMetricsSummary(metrics)
	}
	return nil
}

// buildRepository selects the persistence backend from configuration.
func buildRepository(cfg *config.Config, log *logger.Logger) (student.Repository, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendJSONFile:
		store, err := jsonfile.New(jsonfile.Options{
			Path:      cfg.Storage.CollectionFile,
			BackupDir: cfg.Storage.BackupDir,
			Logger:    log,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.DatabaseFile, log)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil

	case config.BackendMemory:
		return memory.New(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// printMetricsSummary dumps per-operation counters collected during
// the session.
func printMetricsSummary(metrics *observability.Metrics) {
	counts := metrics.OperationCounts()
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("\nSession summary:")
	for _, k := range keys {
		fmt.Printf("  %-35s %.0f\n", k, counts[k])
	}
}
