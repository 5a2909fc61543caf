package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Handle tags used on the wire by the gateway.
const (
	HandleCreatePoll = "create_proposal"
	HandleCastVote   = "create_vote"
)

// SignedInput is the envelope relayed by the gateway. Signature must verify
// over InputHash with the configured gateway key.
type SignedInput struct {
	Handle      string
	InputValues string
	InputHash   []byte
	Signature   []byte
}

// Instruction is implemented by CreatePoll and CastVote only.
type Instruction interface {
	Handle() string
}

type CreatePoll struct {
	URI      string
	Validity uint64
}

func (CreatePoll) Handle() string { return HandleCreatePoll }

func (c CreatePoll) Validate() error {
	if strings.TrimSpace(c.URI) == "" {
		return fmt.Errorf("%w: poll_uri is required", ErrInvalidPollInput)
	}
	if c.Validity == 0 {
		return fmt.Errorf("%w: validity must be greater than zero", ErrInvalidPollInput)
	}
	return nil
}

type CastVote struct {
	PollID  uint64
	VoterID uint64
	Option  uint64
}

func (CastVote) Handle() string { return HandleCastVote }

type createPollPayload struct {
	PollURI  *string `json:"poll_uri"`
	Validity *uint64 `json:"validity"`
}

type castVotePayload struct {
	PollID  *uint64 `json:"poll_id"`
	VoterID *uint64 `json:"voter_id"`
	Option  *uint64 `json:"option"`
}

// DecodeInstruction turns a handle tag and its JSON payload into an Instruction.
func DecodeInstruction(handle, inputValues string) (Instruction, error) {
	switch handle {
	case HandleCreatePoll:
		var p createPollPayload
		if err := json.Unmarshal([]byte(inputValues), &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if p.PollURI == nil || p.Validity == nil {
			return nil, fmt.Errorf("%w: poll_uri and validity are required", ErrDecode)
		}
		return CreatePoll{URI: *p.PollURI, Validity: *p.Validity}, nil
	case HandleCastVote:
		var p castVotePayload
		if err := json.Unmarshal([]byte(inputValues), &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if p.PollID == nil || p.VoterID == nil || p.Option == nil {
			return nil, fmt.Errorf("%w: poll_id, voter_id and option are required", ErrDecode)
		}
		return CastVote{PollID: *p.PollID, VoterID: *p.VoterID, Option: *p.Option}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, handle)
	}
}

// EncodeInstruction is the inverse of DecodeInstruction, used by relays and tests.
func EncodeInstruction(in Instruction) (string, error) {
	var payload any
	switch v := in.(type) {
	case CreatePoll:
		payload = createPollPayload{PollURI: &v.URI, Validity: &v.Validity}
	case CastVote:
		payload = castVotePayload{PollID: &v.PollID, VoterID: &v.VoterID, Option: &v.Option}
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedOperation, in)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ExecuteResult struct {
	InstructionID string      `json:"instruction_id"`
	Attributes    []Attribute `json:"attributes"`
}

func (r ExecuteResult) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
