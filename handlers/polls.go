// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/models"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// PollStore is the storage PollHandler needs. *db.Repository implements it.
type PollStore interface {
	CreatePollWithOptions(ctx context.Context, poll models.Poll, optionTexts []string) (*models.PollWithOptions, error)
	ListPolls(ctx context.Context, filter db.ListPollsFilter) ([]models.PollWithOptions, error)
	FindPoll(ctx context.Context, pollID string) (*models.Poll, error)
	FindOptionsByPoll(ctx context.Context, pollID string) ([]models.Option, error)
}

type PollHandler struct {
	store PollStore
}

func NewPollHandler(store PollStore) *PollHandler {
	return &PollHandler{store: store}
}

// CreatePoll handles POST /polls
// Requires a session; the caller becomes the poll's creator.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, options, err := validateCreatePoll(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	poll.CreatedBy = &userID

	created, err := h.store.CreatePollWithOptions(r.Context(), poll, options)
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created",
		"poll_id", created.ID,
		"options", len(created.Options),
		"is_public", created.IsPublic,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:  created.ID,
		Message: "Poll created successfully",
	})
}

// validateCreatePoll trims the request and checks field lengths.
// Lengths are counted in characters, not bytes.
func validateCreatePoll(req models.CreatePollRequest) (models.Poll, []string, error) {
	var poll models.Poll

	poll.Title = strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(poll.Title); n < models.MinTitleLength || n > models.MaxTitleLength {
		return poll, nil, fmt.Errorf("title must be %d-%d characters", models.MinTitleLength, models.MaxTitleLength)
	}

	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if utf8.RuneCountInString(desc) > models.MaxDescriptionLength {
			return poll, nil, fmt.Errorf("description must be at most %d characters", models.MaxDescriptionLength)
		}
		if desc != "" {
			poll.Description = &desc
		}
	}

	if len(req.Options) < models.MinOptions || len(req.Options) > models.MaxOptions {
		return poll, nil, fmt.Errorf("poll must have %d-%d options", models.MinOptions, models.MaxOptions)
	}
	options := make([]string, 0, len(req.Options))
	for i, text := range req.Options {
		text = strings.TrimSpace(text)
		if n := utf8.RuneCountInString(text); n < 1 || n > models.MaxOptionLength {
			return poll, nil, fmt.Errorf("option %d must be 1-%d characters", i+1, models.MaxOptionLength)
		}
		options = append(options, text)
	}

	poll.IsPublic = true
	if req.IsPublic != nil {
		poll.IsPublic = *req.IsPublic
	}

	return poll, options, nil
}

// ListPolls handles GET /polls?limit=&offset=&mine=
// Without mine=true only public polls are listed.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := intParam(query.Get("limit"), defaultListLimit)
	if err != nil || limit < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset, err := intParam(query.Get("offset"), 0)
	if err != nil || offset < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	filter := db.ListPollsFilter{Limit: limit, Offset: offset}
	if query.Get("mine") == "true" {
		filter.CreatedBy = middleware.UserIDFromContext(r.Context())
		if filter.CreatedBy == "" {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}
	}

	polls, err := h.store.ListPolls(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPollsResponse{
		Polls:  polls,
		Limit:  limit,
		Offset: offset,
	})
}

// GetPoll handles GET /polls/{id}
// Returns poll details and options in position order.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	poll, err := h.store.FindPoll(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to query poll", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if poll == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	options, err := h.store.FindOptionsByPoll(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to query options", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollWithOptions{
		Poll:    *poll,
		Options: options,
	})
}

// pollIDParam reads the {id} path value and writes a 400 if it is not a UUID.
func pollIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return "", false
	}
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll ID")
		return "", false
	}
	return pollID, true
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
