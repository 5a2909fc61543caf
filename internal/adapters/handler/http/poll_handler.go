package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
)

type PollHandler struct {
	service ports.QueryService
}

func NewPollHandler(service ports.QueryService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

// GetPollCount godoc
// @Summary      Returns the number of polls
// @Tags         polls
// @Produce      json
// @Success      200  {object}  domain.PollCountResponse
// @Router       /polls/count [get]
func (h *PollHandler) GetPollCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.PollCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.PollCountResponse{PollCount: count})
}

// GetPoll godoc
// @Summary      Returns a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200  {object}  domain.PollResponse
// @Failure      400,404
// @Router       /polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := uintParam(r, "id")
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	poll, err := h.service.GetPoll(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.PollResponse{Poll: poll})
}

// GetResults godoc
// @Summary      Returns the tally of a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200  {object}  domain.ResultsResponse
// @Failure      400,404
// @Router       /polls/{id}/results [get]
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, err := uintParam(r, "id")
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	results, err := h.service.Results(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ResultsResponse{Results: results})
}

// GetVoteCount godoc
// @Summary      Returns the number of votes cast on a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200  {object}  domain.VoteCountResponse
// @Failure      400,404
// @Router       /polls/{id}/vote-count [get]
func (h *PollHandler) GetVoteCount(w http.ResponseWriter, r *http.Request) {
	pollID, err := uintParam(r, "id")
	if err != nil {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return
	}

	count, err := h.service.VoteCount(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.VoteCountResponse{VoteCount: count})
}
