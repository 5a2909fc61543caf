package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type VoteHandler struct {
	service ports.QueryService
}

func NewVoteHandler(service ports.QueryService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// HasVoted godoc
// @Summary      Reports whether a voter voted on a poll
// @Tags         polls
// @Produce      json
// @Param        id       path      int  true  "Poll ID"
// @Param        voterID  path      int  true  "Voter ID"
// @Success      200  {object}  domain.HasVotedResponse
// @Failure      400,404
// @Router       /polls/{id}/voters/{voterID} [get]
func (h *VoteHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	pollID, err := uintParam(r, "id")
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}
	voterID, err := uintParam(r, "voterID")
	if err != nil {
		http.Error(w, "invalid voter id", http.StatusBadRequest)
		return
	}

	voted, err := h.service.HasVoted(r.Context(), pollID, voterID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.HasVotedResponse{HasVoted: voted})
}
