package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollgate/internal/adapters/clock"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

func TestSummaryService_SummarizeAllPolls(t *testing.T) {
	repo := memory.NewLedgerRepository()
	seedPolls(t, repo, domain.Polls{
		{ID: 0, URI: "ipfs://a", CreatedAt: time.Unix(1000, 0), Validity: 100, Tally: domain.Tally{1: 2, 2: 5}, Voted: domain.VoterSet{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}},
		{ID: 1, URI: "ipfs://b", CreatedAt: time.Unix(1000, 0), Validity: 5000, Tally: domain.Tally{4: 1, 2: 1}, Voted: domain.VoterSet{1: true, 2: true}},
		{ID: 2, URI: "ipfs://c", CreatedAt: time.Unix(1000, 0), Validity: 5000, Tally: domain.Tally{}, Voted: domain.VoterSet{}},
	})

	svc := NewSummaryService(repo, clock.NewFixed(time.Unix(2000, 0)))
	summaries, err := svc.SummarizeAllPolls(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, domain.PollSummary{
		PollID: 0, URI: "ipfs://a", TotalVotes: 7, Voters: 7,
		LeadingOption: 2, LeadingVotes: 5, Open: false, ClosesAt: 1100,
	}, summaries[0])

	// ties go to the lowest option
	assert.Equal(t, uint64(2), summaries[1].LeadingOption)
	assert.True(t, summaries[1].Open)

	assert.Zero(t, summaries[2].TotalVotes)
	assert.Zero(t, summaries[2].LeadingVotes)
}

func TestSummaryService_CanceledContext(t *testing.T) {
	repo := memory.NewLedgerRepository()
	seedPolls(t, repo, domain.Polls{{ID: 0, URI: "ipfs://a", Validity: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSummaryService(repo, clock.NewFixed(time.Unix(0, 0))).SummarizeAllPolls(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
