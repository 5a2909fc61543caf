package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type LedgerHandler struct {
	service ports.LedgerService
}

func NewLedgerHandler(service ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service: service,
	}
}

type executeRequest struct {
	Handle      string `json:"handle"`
	InputValues string `json:"input_values"`
	InputHash   Bytes  `json:"input_hash"`
	Signature   Bytes  `json:"signature"`
}

type gatewayResponse struct {
	Address   string `json:"address"`
	Hash      string `json:"hash"`
	PublicKey Bytes  `json:"public_key"`
}

// Execute godoc
// @Summary      Applies a gateway-signed instruction
// @Description  Verifies the signature over input_hash with the gateway key, then runs create_proposal or create_vote.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400,401,404,409
// @Router       /execute [post]
func (h *LedgerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Execute(r.Context(), domain.SignedInput{
		Handle:      req.Handle,
		InputValues: req.InputValues,
		InputHash:   req.InputHash,
		Signature:   req.Signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Instruction-ID", result.InstructionID)
	writeJSON(w, http.StatusOK, result)
}

// Query godoc
// @Summary      Runs a read-only ledger query
// @Description  Body is one of {"get_poll_count":{}}, {"get_vote_count":{"poll_id":0}}, {"get_results":{"poll_id":0}}, {"get_voted":{"poll_id":0,"voter_id":1}}, {"get_poll":{"poll_id":0}}.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400,404
// @Router       /query [post]
func (h *LedgerHandler) Query(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	query, err := decodeQuery(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Query(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetGateway godoc
// @Summary      Returns the configured gateway
// @Tags         ledger
// @Produce      json
// @Success      200
// @Failure      503
// @Router       /gateway [get]
func (h *LedgerHandler) GetGateway(w http.ResponseWriter, r *http.Request) {
	gateway, err := h.service.Gateway(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gatewayResponse{
		Address:   gateway.Address,
		Hash:      gateway.Hash,
		PublicKey: gateway.PublicKey,
	})
}

func decodeQuery(raw map[string]json.RawMessage) (domain.Query, error) {
	if len(raw) != 1 {
		return nil, fmt.Errorf("%w: query must name exactly one variant", domain.ErrDecode)
	}

	var (
		query domain.Query
		body  json.RawMessage
	)
	for name, b := range raw {
		body = b
		switch name {
		case domain.PollCountQuery{}.Name():
			query = &domain.PollCountQuery{}
		case domain.VoteCountQuery{}.Name():
			query = &domain.VoteCountQuery{}
		case domain.HasVotedQuery{}.Name():
			query = &domain.HasVotedQuery{}
		case domain.ResultsQuery{}.Name():
			query = &domain.ResultsQuery{}
		case domain.GetPollQuery{}.Name():
			query = &domain.GetPollQuery{}
		default:
			return nil, fmt.Errorf("%w: query %q", domain.ErrUnsupportedOperation, name)
		}
	}

	if len(body) > 0 && string(body) != "null" {
		if err := json.Unmarshal(body, query); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}
	}

	// the service switches on value types
	switch q := query.(type) {
	case *domain.PollCountQuery:
		return *q, nil
	case *domain.VoteCountQuery:
		return *q, nil
	case *domain.HasVotedQuery:
		return *q, nil
	case *domain.ResultsQuery:
		return *q, nil
	case *domain.GetPollQuery:
		return *q, nil
	}
	return nil, fmt.Errorf("%w: %T", domain.ErrUnsupportedOperation, query)
}
