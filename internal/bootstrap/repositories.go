package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CloverPit_Go/internal/concurrency"
	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database"
	"github.com/osse101/CloverPit_Go/internal/database/memory"
	"github.com/osse101/CloverPit_Go/internal/database/postgres"
	"github.com/osse101/CloverPit_Go/internal/repository"
	"github.com/osse101/CloverPit_Go/migrations"
)

// Repositories holds the storage implementations selected by STORAGE_BACKEND
type Repositories struct {
	Game    repository.Game
	Catalog repository.Catalog
	Locks   concurrency.Store
	// Pool is nil for the memory backend
	Pool database.Pool
}

// Close releases the database pool, if any
func (r *Repositories) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
}

// InitializeRepositories connects the configured backend and, for postgres,
// applies pending migrations when AUTO_MIGRATE is set.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	if cfg.StorageBackend == config.StorageBackendMemory {
		slog.Warn(LogMsgUsingMemory)
		return newMemoryRepositories(), nil
	}

	slog.Info(LogMsgUsingPostgres, "host", cfg.DBHost, "db", cfg.DBName)
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
		}
	} else {
		slog.Info(LogMsgMigrationsSkipped)
	}

	return &Repositories{
		Game:    postgres.NewGameRepository(pool),
		Catalog: postgres.NewCatalogRepository(pool),
		Locks:   postgres.NewLockRepository(pool),
		Pool:    pool,
	}, nil
}

func newMemoryRepositories() *Repositories {
	store := memory.NewStore()
	return &Repositories{
		Game:    store,
		Catalog: store,
		Locks:   concurrency.NewMemoryStore(),
	}
}
