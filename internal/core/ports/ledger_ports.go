package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

// LedgerRepository persists the three ledger records. Absent records load as
// their defaults: no gateway (domain.ErrNotInitialized), poll count 0, empty polls.
type LedgerRepository interface {
	LoadGateway(ctx context.Context) (*domain.GatewayConfig, error)
	// SaveGateway fails with domain.ErrAlreadyInitialized if a gateway is stored.
	SaveGateway(ctx context.Context, gateway *domain.GatewayConfig) error
	LoadPollCount(ctx context.Context) (uint64, error)
	LoadPolls(ctx context.Context) (domain.Polls, error)
	// SavePolls writes the polls and the poll count as one atomic unit.
	SavePolls(ctx context.Context, polls domain.Polls, pollCount uint64) error
}

type Clock interface {
	Now() time.Time
}

// SignatureVerifier checks an ECDSA signature over a digest.
type SignatureVerifier interface {
	ValidatePublicKey(publicKey []byte) error
	Verify(publicKey, digest, signature []byte) bool
}
