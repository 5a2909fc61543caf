package services

import (
	"context"
	"log/slog"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type voteService struct {
	repo   ports.LedgerRepository
	clock  ports.Clock
	logger *slog.Logger
}

func NewVoteService(repo ports.LedgerRepository, clock ports.Clock, logger *slog.Logger) ports.VoteService {
	return &voteService{
		repo:   repo,
		clock:  clock,
		logger: ResolveLogger(logger),
	}
}

func (s *voteService) Vote(ctx context.Context, input domain.CastVote) error {
	pollCount, err := s.repo.LoadPollCount(ctx)
	if err != nil {
		return storageError("load poll count", err)
	}
	polls, err := s.repo.LoadPolls(ctx)
	if err != nil {
		return storageError("load polls", err)
	}

	next, err := domain.ApplyCastVote(polls, pollCount, input, s.clock.Now())
	if err != nil {
		s.logger.Warn("vote rejected",
			"event", "vote_rejected",
			"layer", "service",
			"poll_id", input.PollID,
			"voter_id", input.VoterID,
			"error", err.Error(),
		)
		return err
	}

	// the counter is unchanged by a vote but is rewritten with the ledger
	if err := s.repo.SavePolls(ctx, next, pollCount); err != nil {
		return storageError("save polls", err)
	}

	s.logger.Info("vote cast",
		"event", "vote_cast",
		"layer", "service",
		"poll_id", input.PollID,
		"voter_id", input.VoterID,
		"option", input.Option,
	)
	return nil
}
