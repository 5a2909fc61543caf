package leveldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/vmihailenco/msgpack"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

const (
	DefaultPrefix = "pollgate/"

	minHandles = 16
)

var (
	keyGateway   = []byte("config")
	keyPollCount = []byte("poll_count")
	keyPolls     = []byte("polls")
)

type LedgerRepository struct {
	db     *leveldb.DB
	prefix string
	// guards the read-check-write in SaveGateway
	writeMu sync.Mutex
}

type Options struct {
	Prefix  string
	Handles int
}

// Open opens (or creates) a LevelDB ledger at path, recovering the
// manifest if the database is corrupted.
func Open(path string, options Options) (*LedgerRepository, error) {
	handles := options.Handles
	if handles < minHandles {
		handles = minHandles
	}
	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     16 * opt.MiB,
		WriteBuffer:            16 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb %s: %w", path, err)
	}
	return newLedgerRepository(db, options.Prefix), nil
}

// OpenInMemory backs the ledger with LevelDB's memory storage.
func OpenInMemory() (*LedgerRepository, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory leveldb: %w", err)
	}
	return newLedgerRepository(db, ""), nil
}

func newLedgerRepository(db *leveldb.DB, prefix string) *LedgerRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &LedgerRepository{db: db, prefix: prefix}
}

var _ ports.LedgerRepository = (*LedgerRepository)(nil)

func (r *LedgerRepository) Close() error {
	return r.db.Close()
}

func (r *LedgerRepository) LoadGateway(ctx context.Context) (*domain.GatewayConfig, error) {
	var gateway domain.GatewayConfig
	found, err := r.get(ctx, keyGateway, &gateway)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotInitialized
	}
	return &gateway, nil
}

func (r *LedgerRepository) SaveGateway(ctx context.Context, gateway *domain.GatewayConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	exists, err := r.db.Has(r.key(keyGateway), nil)
	if err != nil {
		return fmt.Errorf("failed to check gateway: %w", err)
	}
	if exists {
		return domain.ErrAlreadyInitialized
	}

	value, err := msgpack.Marshal(gateway)
	if err != nil {
		return fmt.Errorf("failed to encode gateway: %w", err)
	}
	if err := r.db.Put(r.key(keyGateway), value, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to save gateway: %w", err)
	}
	return nil
}

func (r *LedgerRepository) LoadPollCount(ctx context.Context) (uint64, error) {
	var pollCount uint64
	if _, err := r.get(ctx, keyPollCount, &pollCount); err != nil {
		return 0, err
	}
	return pollCount, nil
}

func (r *LedgerRepository) LoadPolls(ctx context.Context) (domain.Polls, error) {
	var polls domain.Polls
	found, err := r.get(ctx, keyPolls, &polls)
	if err != nil {
		return nil, err
	}
	if !found || polls == nil {
		return domain.Polls{}, nil
	}
	return polls, nil
}

func (r *LedgerRepository) SavePolls(ctx context.Context, polls domain.Polls, pollCount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pollsValue, err := msgpack.Marshal(polls)
	if err != nil {
		return fmt.Errorf("failed to encode polls: %w", err)
	}
	countValue, err := msgpack.Marshal(pollCount)
	if err != nil {
		return fmt.Errorf("failed to encode poll count: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put(r.key(keyPolls), pollsValue)
	batch.Put(r.key(keyPollCount), countValue)
	if err := r.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to write ledger batch: %w", err)
	}
	return nil
}

func (r *LedgerRepository) get(ctx context.Context, key []byte, v interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	value, err := r.db.Get(r.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := msgpack.Unmarshal(value, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *LedgerRepository) key(raw []byte) []byte {
	buf := bytes.NewBufferString(r.prefix)
	buf.Write(raw)
	return buf.Bytes()
}
