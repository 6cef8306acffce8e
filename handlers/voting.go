// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/voting"
)

// VoteService is the voting core as seen by the HTTP layer. *voting.Service implements it.
type VoteService interface {
	CastVote(ctx context.Context, pollID, optionID string, identity models.Identity) (string, error)
	GetResults(ctx context.Context, pollID string) (*models.Results, error)
}

type VotingHandler struct {
	votes VoteService
}

func NewVotingHandler(votes VoteService) *VotingHandler {
	return &VotingHandler{votes: votes}
}

// CastVote handles POST /polls/{id}/vote
// Authenticated callers vote as their user; everyone else votes by forwarded IP.
// A repeat vote from the same identity replaces the earlier choice.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	optionID := strings.TrimSpace(req.OptionID)
	if optionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}
	if _, err := uuid.Parse(optionID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option ID")
		return
	}

	identity := voting.ResolveIdentity(
		middleware.UserIDFromContext(r.Context()),
		middleware.ForwardedFor(r),
	)

	outcome, err := h.votes.CastVote(r.Context(), pollID, optionID, identity)
	switch {
	case errors.Is(err, voting.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option for this poll")
		return
	case err != nil:
		// Already logged by the service
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	message := "Vote recorded successfully"
	if outcome == models.OutcomeUpdated {
		message = "Vote updated successfully"
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Outcome: outcome,
		Message: message,
	})
}
