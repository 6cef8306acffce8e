// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"time"
)

// Vote outcome constants
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
)

// Poll creation limits
const (
	MinTitleLength       = 3
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
	MinOptions           = 2
	MaxOptions           = 10
	MaxOptionLength      = 255
)

// Request types

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	IsPublic    *bool    `json:"is_public"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type CreatePollResponse struct {
	PollID  string `json:"poll_id"`
	Message string `json:"message"`
}

type CastVoteResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

type ListPollsResponse struct {
	Polls  []PollWithOptions `json:"polls"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	IsPublic    bool      `json:"is_public"`
}

type Option struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// PollWithOptions flattens the poll fields alongside its options in JSON.
type PollWithOptions struct {
	Poll
	Options []Option `json:"options"`
}

// Vote is keyed by exactly one of UserID or IPAddress.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    *string   `json:"-"` // Never expose in JSON
	IPAddress *string   `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the voter identity the row is keyed by.
func (v Vote) Identity() Identity {
	var id Identity
	if v.UserID != nil {
		id.UserID = *v.UserID
	}
	if v.IPAddress != nil {
		id.IPAddress = *v.IPAddress
	}
	return id
}

var (
	ErrAmbiguousIdentity = errors.New("identity must have exactly one of user id or ip address")
	ErrDuplicateVote     = errors.New("vote already exists for identity")
	ErrVoteNotFound      = errors.New("vote not found")
)

// Identity is the deduplication key for voting: an authenticated user id or,
// for anonymous voters, the client IP address. Never both.
type Identity struct {
	UserID    string
	IPAddress string
}

func UserIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

func AnonymousIdentity(ipAddress string) Identity {
	return Identity{IPAddress: ipAddress}
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// Key returns the populated field, prefixed so user ids and addresses never collide.
func (i Identity) Key() string {
	if i.IsAnonymous() {
		return "ip:" + i.IPAddress
	}
	return "user:" + i.UserID
}

// Validate enforces that exactly one key is populated.
func (i Identity) Validate() error {
	if (i.UserID == "") == (i.IPAddress == "") {
		return ErrAmbiguousIdentity
	}
	return nil
}

// ResultRow is computed on demand and never stored.
type ResultRow struct {
	OptionID   string `json:"option_id"`
	OptionText string `json:"option_text"`
	VoteCount  int    `json:"vote_count"`
	Percentage int    `json:"percentage"`
}

type Results struct {
	Poll       Poll        `json:"poll"`
	Results    []ResultRow `json:"results"`
	TotalVotes int         `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
