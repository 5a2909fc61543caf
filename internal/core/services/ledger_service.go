package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

// ledgerService is the entry point used by hosts. Mutations are applied one
// at a time; queries read the stored state directly.
type ledgerService struct {
	mu       sync.Mutex
	repo     ports.LedgerRepository
	verifier ports.SignatureVerifier
	auth     *AuthService
	polls    ports.PollService
	votes    ports.VoteService
	queries  ports.QueryService
	logger   *slog.Logger
}

func NewLedgerService(
	repo ports.LedgerRepository,
	verifier ports.SignatureVerifier,
	clock ports.Clock,
	logger *slog.Logger,
) ports.LedgerService {
	logger = ResolveLogger(logger)
	return &ledgerService{
		repo:     repo,
		verifier: verifier,
		auth:     NewAuthService(verifier),
		polls:    NewPollService(repo, clock, logger),
		votes:    NewVoteService(repo, clock, logger),
		queries:  NewQueryService(repo),
		logger:   logger,
	}
}

func (s *ledgerService) Initialize(ctx context.Context, input ports.InitializeInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.verifier.ValidatePublicKey(input.GatewayPublicKey); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidGatewayKey, err)
	}

	gateway := &domain.GatewayConfig{
		Address:   input.GatewayAddress,
		Hash:      input.GatewayHash,
		PublicKey: bytes.Clone(input.GatewayPublicKey),
	}
	if err := s.repo.SaveGateway(ctx, gateway); err != nil {
		return storageError("save gateway", err)
	}

	s.logger.Info("gateway initialized",
		"event", "gateway_initialized",
		"layer", "service",
		"gateway_address", gateway.Address,
		"gateway_hash", gateway.Hash,
	)
	return nil
}

func (s *ledgerService) Gateway(ctx context.Context) (*domain.GatewayConfig, error) {
	gateway, err := s.repo.LoadGateway(ctx)
	if err != nil {
		return nil, storageError("load gateway", err)
	}
	return gateway, nil
}

func (s *ledgerService) Execute(ctx context.Context, input domain.SignedInput) (domain.ExecuteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := domain.ExecuteResult{InstructionID: uuid.NewString()}
	logger := s.logger.With("instruction_id", result.InstructionID, "handle", input.Handle)

	gateway, err := s.repo.LoadGateway(ctx)
	if err != nil {
		return domain.ExecuteResult{}, storageError("load gateway", err)
	}
	if err := s.auth.Authenticate(gateway, input); err != nil {
		logger.Warn("instruction rejected",
			"event", "instruction_unauthorized",
			"layer", "service",
			"error", err.Error(),
		)
		return domain.ExecuteResult{}, err
	}

	instruction, err := domain.DecodeInstruction(input.Handle, input.InputValues)
	if err != nil {
		logger.Warn("instruction rejected",
			"event", "instruction_decode_failed",
			"layer", "service",
			"error", err.Error(),
		)
		return domain.ExecuteResult{}, err
	}

	switch in := instruction.(type) {
	case domain.CreatePoll:
		pollID, err := s.polls.Create(ctx, in)
		if err != nil {
			return domain.ExecuteResult{}, err
		}
		result.Attributes = append(result.Attributes, domain.Attribute{
			Key:   "poll_id",
			Value: strconv.FormatUint(pollID, 10),
		})
	case domain.CastVote:
		if err := s.votes.Vote(ctx, in); err != nil {
			return domain.ExecuteResult{}, err
		}
	default:
		return domain.ExecuteResult{}, fmt.Errorf("%w: %T", domain.ErrUnsupportedOperation, instruction)
	}

	logger.Info("instruction applied",
		"event", "instruction_applied",
		"layer", "service",
	)
	return result, nil
}

func (s *ledgerService) Query(ctx context.Context, query domain.Query) (domain.QueryResponse, error) {
	switch q := query.(type) {
	case domain.PollCountQuery:
		count, err := s.queries.PollCount(ctx)
		if err != nil {
			return nil, err
		}
		return domain.PollCountResponse{PollCount: count}, nil
	case domain.VoteCountQuery:
		count, err := s.queries.VoteCount(ctx, q.PollID)
		if err != nil {
			return nil, err
		}
		return domain.VoteCountResponse{VoteCount: count}, nil
	case domain.HasVotedQuery:
		voted, err := s.queries.HasVoted(ctx, q.PollID, q.VoterID)
		if err != nil {
			return nil, err
		}
		return domain.HasVotedResponse{HasVoted: voted}, nil
	case domain.ResultsQuery:
		results, err := s.queries.Results(ctx, q.PollID)
		if err != nil {
			return nil, err
		}
		return domain.ResultsResponse{Results: results}, nil
	case domain.GetPollQuery:
		poll, err := s.queries.GetPoll(ctx, q.PollID)
		if err != nil {
			return nil, err
		}
		return domain.PollResponse{Poll: poll}, nil
	default:
		return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedOperation, query)
	}
}
