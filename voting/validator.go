// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
)

// OptionValidator confirms an option belongs to a poll before any vote mutation.
type OptionValidator struct {
	repo PollRepository
}

func NewOptionValidator(repo PollRepository) *OptionValidator {
	return &OptionValidator{repo: repo}
}

// Verify returns false both when the option does not exist and when it belongs
// to a different poll. Callers cannot tell the two apart.
func (v *OptionValidator) Verify(ctx context.Context, optionID, pollID string) (bool, error) {
	ok, err := v.repo.OptionBelongsToPoll(ctx, optionID, pollID)
	if err != nil {
		return false, fmt.Errorf("%w: verify option: %w", ErrPersistence, err)
	}
	return ok, nil
}
