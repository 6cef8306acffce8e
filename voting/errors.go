// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

var (
	// ErrInvalidOption covers both a missing option and an option of another poll.
	ErrInvalidOption = errors.New("invalid poll option")
	ErrPollNotFound  = errors.New("poll not found")
	// ErrPersistence wraps any repository failure.
	ErrPersistence     = errors.New("persistence failure")
	ErrInvalidIdentity = errors.New("invalid voter identity")
)
