// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/voting"
)

type ResultsHandler struct {
	votes VoteService
}

func NewResultsHandler(votes VoteService) *ResultsHandler {
	return &ResultsHandler{votes: votes}
}

// GetResults handles GET /polls/{id}/results (also served at GET /polls/{id}/vote)
// Results are live: every option is listed, including those with no votes.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	results, err := h.votes.GetResults(r.Context(), pollID)
	switch {
	case errors.Is(err, voting.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
