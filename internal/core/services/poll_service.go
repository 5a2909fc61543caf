package services

import (
	"context"
	"log/slog"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type pollService struct {
	repo   ports.LedgerRepository
	clock  ports.Clock
	logger *slog.Logger
}

func NewPollService(repo ports.LedgerRepository, clock ports.Clock, logger *slog.Logger) ports.PollService {
	return &pollService{
		repo:   repo,
		clock:  clock,
		logger: ResolveLogger(logger),
	}
}

func (s *pollService) Create(ctx context.Context, input domain.CreatePoll) (uint64, error) {
	pollCount, err := s.repo.LoadPollCount(ctx)
	if err != nil {
		return 0, storageError("load poll count", err)
	}
	polls, err := s.repo.LoadPolls(ctx)
	if err != nil {
		return 0, storageError("load polls", err)
	}

	next, pollID, err := domain.ApplyCreatePoll(polls, pollCount, input, s.clock.Now())
	if err != nil {
		s.logger.Warn("poll create rejected",
			"event", "poll_create_rejected",
			"layer", "service",
			"error", err.Error(),
		)
		return 0, err
	}

	if err := s.repo.SavePolls(ctx, next, pollCount+1); err != nil {
		return 0, storageError("save polls", err)
	}

	s.logger.Info("poll created",
		"event", "poll_created",
		"layer", "service",
		"poll_id", pollID,
		"uri", input.URI,
		"validity", input.Validity,
	)
	return pollID, nil
}
