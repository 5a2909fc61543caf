package ports

import (
	"context"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

type InitializeInput struct {
	GatewayAddress   string
	GatewayHash      string
	GatewayPublicKey []byte
}

type LedgerService interface {
	Initialize(ctx context.Context, input InitializeInput) error
	Execute(ctx context.Context, input domain.SignedInput) (domain.ExecuteResult, error)
	Query(ctx context.Context, query domain.Query) (domain.QueryResponse, error)
	Gateway(ctx context.Context) (*domain.GatewayConfig, error)
}

type QueryService interface {
	PollCount(ctx context.Context) (uint64, error)
	VoteCount(ctx context.Context, pollID uint64) (uint64, error)
	HasVoted(ctx context.Context, pollID, voterID uint64) (bool, error)
	Results(ctx context.Context, pollID uint64) (domain.Tally, error)
	GetPoll(ctx context.Context, pollID uint64) (domain.Poll, error)
}

type SummaryService interface {
	SummarizeAllPolls(ctx context.Context) ([]domain.PollSummary, error)
}

type PollService interface {
	Create(ctx context.Context, input domain.CreatePoll) (uint64, error)
}

type VoteService interface {
	Vote(ctx context.Context, input domain.CastVote) error
}
