// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-poll/models"
)

// Ledger keeps at most one vote per (poll, identity).
//
// A pair starts Absent and moves to Recorded on its first vote. Later votes
// re-enter Recorded with a new option. There is no path back to Absent.
type Ledger struct {
	repo PollRepository
}

func NewLedger(repo PollRepository) *Ledger {
	return &Ledger{repo: repo}
}

// RecordVote inserts or overwrites the identity's vote on pollID and reports
// models.OutcomeCreated or models.OutcomeUpdated.
//
// The ledger does no locking. When a concurrent request from the same identity
// inserts first, the storage uniqueness constraint rejects this insert and the
// vote is retried once as an update of the row that won.
func (l *Ledger) RecordVote(ctx context.Context, pollID, optionID string, identity models.Identity) (string, error) {
	if err := identity.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}

	existing, err := l.repo.FindVote(ctx, pollID, identity)
	if err != nil {
		return "", fmt.Errorf("%w: find vote: %w", ErrPersistence, err)
	}
	if existing != nil {
		return l.overwrite(ctx, existing, optionID)
	}

	_, err = l.repo.InsertVote(ctx, pollID, optionID, identity)
	if errors.Is(err, models.ErrDuplicateVote) {
		return l.retryAsUpdate(ctx, pollID, optionID, identity)
	}
	if err != nil {
		return "", fmt.Errorf("%w: insert vote: %w", ErrPersistence, err)
	}
	return models.OutcomeCreated, nil
}

func (l *Ledger) retryAsUpdate(ctx context.Context, pollID, optionID string, identity models.Identity) (string, error) {
	existing, err := l.repo.FindVote(ctx, pollID, identity)
	if err != nil {
		return "", fmt.Errorf("%w: find vote after duplicate insert: %w", ErrPersistence, err)
	}
	if existing == nil {
		return "", fmt.Errorf("%w: duplicate insert reported but no vote found", ErrPersistence)
	}
	return l.overwrite(ctx, existing, optionID)
}

// overwrite changes only the option. Id, creation time, and identity stay as stored.
func (l *Ledger) overwrite(ctx context.Context, existing *models.Vote, optionID string) (string, error) {
	if err := l.repo.UpdateVoteOption(ctx, existing.ID, optionID); err != nil {
		return "", fmt.Errorf("%w: update vote %s: %w", ErrPersistence, existing.ID, err)
	}
	return models.OutcomeUpdated, nil
}
