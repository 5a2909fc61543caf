package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrDecode               = errors.New("malformed instruction payload")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidPollID        = errors.New("invalid poll id")
	ErrPollNotFound         = errors.New("poll not found")
	ErrVotingEnded          = errors.New("voting has ended")
	ErrAlreadyVoted         = errors.New("already voted")
	ErrStorage              = errors.New("storage failure")
	ErrNotInitialized       = errors.New("gateway not initialized")
	ErrAlreadyInitialized   = errors.New("gateway already initialized")
	ErrInvalidGatewayKey    = errors.New("invalid gateway public key")
)

// ErrInvalidPollInput is a decode error for payloads that parse but carry
// unusable values.
var ErrInvalidPollInput = fmt.Errorf("%w: invalid poll input", ErrDecode)
