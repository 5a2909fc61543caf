package domain

import (
	"fmt"
	"time"
)

// ApplyCreatePoll appends a new poll with id pollCount. The input ledger is
// not modified.
func ApplyCreatePoll(polls Polls, pollCount uint64, in CreatePoll, now time.Time) (Polls, uint64, error) {
	if err := in.Validate(); err != nil {
		return nil, 0, err
	}
	if pollCount != uint64(len(polls)) {
		return nil, 0, fmt.Errorf("%w: poll count %d does not match ledger length %d", ErrStorage, pollCount, len(polls))
	}

	next := append(polls.Clone(), Poll{
		ID:        pollCount,
		URI:       in.URI,
		CreatedAt: now.UTC(),
		Validity:  in.Validity,
		Tally:     Tally{},
		Voted:     VoterSet{},
		VoteCount: 0,
	})
	return next, pollCount, nil
}

// ApplyCastVote records a vote. Checks run in order and the first failure is
// returned with the input ledger untouched.
func ApplyCastVote(polls Polls, pollCount uint64, in CastVote, now time.Time) (Polls, error) {
	if in.PollID >= pollCount {
		return nil, ErrInvalidPollID
	}
	poll, ok := polls.Get(in.PollID)
	if !ok {
		return nil, ErrPollNotFound
	}
	if !poll.IsOpen(now) {
		return nil, ErrVotingEnded
	}
	if poll.Voted.Has(in.VoterID) {
		return nil, ErrAlreadyVoted
	}

	next := polls.Clone()
	updated := &next[in.PollID]
	updated.Tally[in.Option]++
	updated.Voted.Add(in.VoterID)
	updated.VoteCount++
	return next, nil
}
