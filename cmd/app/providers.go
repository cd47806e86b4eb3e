package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/darkroompro/devcalc/internal/domain/darkroom"
	"github.com/darkroompro/devcalc/internal/domain/export"
	"github.com/darkroompro/devcalc/internal/domain/history"
	"github.com/darkroompro/devcalc/internal/domain/preferences"
	"github.com/darkroompro/devcalc/internal/infra/config"
	"github.com/darkroompro/devcalc/internal/infra/dataset"
	"github.com/darkroompro/devcalc/internal/infra/exportstore"
	"github.com/darkroompro/devcalc/internal/infra/historyrepo"
	"github.com/darkroompro/devcalc/internal/infra/prefstore"
)

func provideDatasetSource(cfg *config.Config, logger *slog.Logger) *dataset.FileSource {
	return dataset.NewFileSource(cfg.Dataset.Path, logger)
}

// provideCalculator loads the dataset once at startup. When the load fails
// and the dataset is not required, the service starts empty and every
// calculation reports dataset_not_loaded until a reload succeeds.
func provideCalculator(cfg *config.Config, source *dataset.FileSource, logger *slog.Logger) (darkroom.Service, error) {
	svc := darkroom.NewService(logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ds, err := source.Load(ctx)
	if err != nil {
		if cfg.Dataset.RequireOnStartup {
			return nil, err
		}
		if errors.Is(err, dataset.ErrFileNotFound) {
			logger.Warn("dataset file missing, starting without dataset", "path", cfg.Dataset.Path)
		} else {
			logger.Error("dataset load failed, starting without dataset", "error", err)
		}
		return svc, nil
	}
	svc.Install(ds)
	return svc, nil
}

func provideHistoryConfig(cfg *config.Config) history.Config {
	return history.Config{
		DefaultLimit: cfg.History.DefaultLimit,
		MaxLimit:     cfg.History.MaxLimit,
	}
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) history.Repository {
	fallback := historyrepo.NewMemoryRepository(cfg.History.MemoryCapacity)
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := historyrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("history schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return repo
}

func providePreferencesConfig(cfg *config.Config) preferences.Config {
	return preferences.Config{TTL: cfg.Preferences.TTL}
}

func providePreferenceStore(cfg *config.Config, logger *slog.Logger) preferences.Store {
	if cfg.Preferences.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg.Preferences.Redis.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return prefstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("preferences valkey store enabled", "addr", cfg.Preferences.Redis.Addr)
			return prefstore.NewValkeyStore(client, "darkroom")
		}
	}
	return prefstore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideExportConfig(cfg *config.Config) export.Config {
	return export.Config{Prefix: cfg.Export.Prefix}
}

func provideExportStorage(cfg *config.Config, logger *slog.Logger) export.ObjectStorage {
	r2 := cfg.Export.R2
	if !r2.Enabled {
		logger.Info("r2 export storage disabled, using memory storage")
		return exportstore.NewMemoryStorage()
	}
	storage, err := exportstore.NewR2Storage(r2.Endpoint, r2.AccessKey, r2.SecretKey, r2.Bucket, r2.Region, logger)
	if err != nil {
		logger.Error("failed to initialize r2 storage, using memory storage", "error", err)
		return exportstore.NewMemoryStorage()
	}
	logger.Info("r2 export storage enabled", "bucket", r2.Bucket)
	return storage
}
