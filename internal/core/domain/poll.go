package domain

import (
	"time"
)

// Tally maps a vote option to the number of votes it received.
type Tally map[uint64]uint64

// VoterSet records the voter ids that already voted on a poll.
type VoterSet map[uint64]bool

func (s VoterSet) Has(voterID uint64) bool {
	return s[voterID]
}

func (s VoterSet) Add(voterID uint64) {
	s[voterID] = true
}

type Poll struct {
	ID        uint64    `json:"id" msgpack:"id"`
	URI       string    `json:"uri" msgpack:"uri"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	Validity  uint64    `json:"validity" msgpack:"validity"`
	Tally     Tally     `json:"tally" msgpack:"tally"`
	Voted     VoterSet  `json:"voted" msgpack:"voted"`
	VoteCount uint64    `json:"vote_count" msgpack:"vote_count"`
}

// ClosesAt returns the last second, in unix time, at which a vote is accepted.
// A validity that overflows the counter never closes.
func (p Poll) ClosesAt() uint64 {
	created := uint64(p.CreatedAt.Unix())
	if p.CreatedAt.Unix() < 0 {
		created = 0
	}
	end := created + p.Validity
	if end < created {
		return ^uint64(0)
	}
	return end
}

func (p Poll) IsOpen(now time.Time) bool {
	if now.Unix() < 0 {
		return true
	}
	return uint64(now.Unix()) <= p.ClosesAt()
}

func (p Poll) TotalVotes() uint64 {
	var total uint64
	for _, count := range p.Tally {
		total += count
	}
	return total
}

func (p Poll) Clone() Poll {
	c := p
	c.Tally = make(Tally, len(p.Tally))
	for option, count := range p.Tally {
		c.Tally[option] = count
	}
	c.Voted = make(VoterSet, len(p.Voted))
	for voterID := range p.Voted {
		c.Voted[voterID] = true
	}
	return c
}

// Polls is the ordered ledger. A poll's ID is its index.
type Polls []Poll

func (ps Polls) Get(pollID uint64) (Poll, bool) {
	if pollID >= uint64(len(ps)) {
		return Poll{}, false
	}
	return ps[pollID], true
}

func (ps Polls) Clone() Polls {
	out := make(Polls, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

type PollSummary struct {
	PollID        uint64
	URI           string
	TotalVotes    uint64
	Voters        int
	LeadingOption uint64
	LeadingVotes  uint64
	Open          bool
	ClosesAt      uint64
}
