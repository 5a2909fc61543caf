package domain

// Query is one of the five read-only requests over the ledger.
type Query interface {
	Name() string
}

type PollCountQuery struct{}

type VoteCountQuery struct {
	PollID uint64 `json:"poll_id"`
}

type HasVotedQuery struct {
	PollID  uint64 `json:"poll_id"`
	VoterID uint64 `json:"voter_id"`
}

type ResultsQuery struct {
	PollID uint64 `json:"poll_id"`
}

type GetPollQuery struct {
	PollID uint64 `json:"poll_id"`
}

func (PollCountQuery) Name() string { return "get_poll_count" }
func (VoteCountQuery) Name() string { return "get_vote_count" }
func (HasVotedQuery) Name() string  { return "get_voted" }
func (ResultsQuery) Name() string   { return "get_results" }
func (GetPollQuery) Name() string   { return "get_poll" }

type QueryResponse interface{}

type PollCountResponse struct {
	PollCount uint64 `json:"poll_count"`
}

type VoteCountResponse struct {
	VoteCount uint64 `json:"vote_count"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}

type ResultsResponse struct {
	Results Tally `json:"results"`
}

type PollResponse struct {
	Poll Poll `json:"poll"`
}
