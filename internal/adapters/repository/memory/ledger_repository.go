package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

// LedgerRepository keeps the ledger in process memory. Every load returns a
// copy so callers never share state with the store.
type LedgerRepository struct {
	mu        sync.RWMutex
	gateway   *domain.GatewayConfig
	pollCount uint64
	polls     domain.Polls
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{polls: domain.Polls{}}
}

func (r *LedgerRepository) LoadGateway(ctx context.Context) (*domain.GatewayConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.gateway == nil {
		return nil, domain.ErrNotInitialized
	}
	gateway := *r.gateway
	gateway.PublicKey = bytes.Clone(r.gateway.PublicKey)
	return &gateway, nil
}

func (r *LedgerRepository) SaveGateway(ctx context.Context, gateway *domain.GatewayConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gateway != nil {
		return domain.ErrAlreadyInitialized
	}
	stored := *gateway
	stored.PublicKey = bytes.Clone(gateway.PublicKey)
	r.gateway = &stored
	return nil
}

func (r *LedgerRepository) LoadPollCount(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pollCount, nil
}

func (r *LedgerRepository) LoadPolls(ctx context.Context) (domain.Polls, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.polls.Clone(), nil
}

func (r *LedgerRepository) SavePolls(ctx context.Context, polls domain.Polls, pollCount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls = polls.Clone()
	r.pollCount = pollCount
	return nil
}
