package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository/leveldb"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollgate/internal/config"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

// Open returns the ledger repository selected by cfg and a function that
// releases it.
func Open(ctx context.Context, cfg *config.Config) (ports.LedgerRepository, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		return postgres.NewLedgerRepository(db), db.Close, nil
	case config.BackendLevelDB:
		repo, err := leveldb.Open(cfg.LevelDBPath, leveldb.Options{})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.BackendMemory:
		return memory.NewLedgerRepository(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
