package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/vncsmyrnk/pollgate/docs"
)

func NewHandler(ledgerHandler *LedgerHandler, pollHandler *PollHandler, voteHandler *VoteHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Get("/gateway", ledgerHandler.GetGateway)
		r.Post("/execute", ledgerHandler.Execute)
		r.Post("/query", ledgerHandler.Query)

		r.Route("/polls", func(r chi.Router) {
			r.Get("/count", pollHandler.GetPollCount)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.Get("/results", pollHandler.GetResults)
				r.Get("/vote-count", pollHandler.GetVoteCount)
				r.Get("/voters/{voterID}", voteHandler.HasVoted)
			})
		})
	})

	return r
}
