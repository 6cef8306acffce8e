// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"

	"github.com/danielhkuo/quickly-poll/models"
)

// PollRepository is the storage collaborator the voting core reads and writes through.
// Lookups return (nil, nil) when the row is absent. InsertVote returns
// models.ErrDuplicateVote when the identity already holds a vote on the poll.
type PollRepository interface {
	FindPoll(ctx context.Context, pollID string) (*models.Poll, error)
	FindOptionsByPoll(ctx context.Context, pollID string) ([]models.Option, error)
	OptionBelongsToPoll(ctx context.Context, optionID, pollID string) (bool, error)
	FindVote(ctx context.Context, pollID string, identity models.Identity) (*models.Vote, error)
	InsertVote(ctx context.Context, pollID, optionID string, identity models.Identity) (*models.Vote, error)
	UpdateVoteOption(ctx context.Context, voteID, optionID string) error
	CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error)
}
