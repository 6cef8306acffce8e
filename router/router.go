// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/handlers"
	"github.com/danielhkuo/quickly-poll/middleware"
)

func NewRouter(store handlers.PollStore, votes handlers.VoteService, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(store)
	votingHandler := handlers.NewVotingHandler(votes)
	resultsHandler := handlers.NewResultsHandler(votes)

	// withSession logs the request and resolves an optional session
	withSession := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithSession(cfg.SessionSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls
	mux.HandleFunc("POST /polls", withSession(middleware.RequireSession(pollHandler.CreatePoll)))
	mux.HandleFunc("GET /polls", withSession(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting (session optional; anonymous voters are keyed by address)
	mux.HandleFunc("POST /polls/{id}/vote", withSession(votingHandler.CastVote))

	// Results (live)
	mux.HandleFunc("GET /polls/{id}/vote", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-poll API v1"))
	})

	return mux
}
