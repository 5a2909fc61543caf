package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const summaryWorkers = 8

type summaryService struct {
	repo  ports.LedgerRepository
	clock ports.Clock
}

func NewSummaryService(repo ports.LedgerRepository, clock ports.Clock) ports.SummaryService {
	return &summaryService{
		repo:  repo,
		clock: clock,
	}
}

func (s *summaryService) SummarizeAllPolls(ctx context.Context) ([]domain.PollSummary, error) {
	polls, err := s.repo.LoadPolls(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all polls: %w", storageError("load polls", err))
	}

	now := s.clock.Now()
	summaries := make([]domain.PollSummary, len(polls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryWorkers)
	for i, poll := range polls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("failed to summarize poll %d: %w", poll.ID, err)
			}
			summaries[i] = summarize(poll, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func summarize(poll domain.Poll, now time.Time) domain.PollSummary {
	summary := domain.PollSummary{
		PollID:     poll.ID,
		URI:        poll.URI,
		TotalVotes: poll.TotalVotes(),
		Voters:     len(poll.Voted),
		Open:       poll.IsOpen(now),
		ClosesAt:   poll.ClosesAt(),
	}
	// ties go to the lowest option id so the report is deterministic
	first := true
	for option, count := range poll.Tally {
		if first || count > summary.LeadingVotes || (count == summary.LeadingVotes && option < summary.LeadingOption) {
			summary.LeadingOption = option
			summary.LeadingVotes = count
			first = false
		}
	}
	return summary
}
