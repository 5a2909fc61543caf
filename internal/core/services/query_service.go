package services

import (
	"context"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type queryService struct {
	repo ports.LedgerRepository
}

func NewQueryService(repo ports.LedgerRepository) ports.QueryService {
	return &queryService{
		repo: repo,
	}
}

func (s *queryService) PollCount(ctx context.Context) (uint64, error) {
	pollCount, err := s.repo.LoadPollCount(ctx)
	if err != nil {
		return 0, storageError("load poll count", err)
	}
	return pollCount, nil
}

// VoteCount is derived from the tally so that ledgers written before
// vote_count was maintained still report the right total.
func (s *queryService) VoteCount(ctx context.Context, pollID uint64) (uint64, error) {
	poll, err := s.poll(ctx, pollID)
	if err != nil {
		return 0, err
	}
	return poll.TotalVotes(), nil
}

func (s *queryService) HasVoted(ctx context.Context, pollID, voterID uint64) (bool, error) {
	poll, err := s.poll(ctx, pollID)
	if err != nil {
		return false, err
	}
	return poll.Voted.Has(voterID), nil
}

func (s *queryService) Results(ctx context.Context, pollID uint64) (domain.Tally, error) {
	poll, err := s.poll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return poll.Clone().Tally, nil
}

func (s *queryService) GetPoll(ctx context.Context, pollID uint64) (domain.Poll, error) {
	poll, err := s.poll(ctx, pollID)
	if err != nil {
		return domain.Poll{}, err
	}
	return poll.Clone(), nil
}

func (s *queryService) poll(ctx context.Context, pollID uint64) (domain.Poll, error) {
	polls, err := s.repo.LoadPolls(ctx)
	if err != nil {
		return domain.Poll{}, storageError("load polls", err)
	}
	poll, ok := polls.Get(pollID)
	if !ok {
		return domain.Poll{}, domain.ErrPollNotFound
	}
	return poll, nil
}
