// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/models"
)

// Service is the boundary the HTTP layer calls for voting and results.
type Service struct {
	validator  *OptionValidator
	ledger     *Ledger
	aggregator *Aggregator
	logger     *slog.Logger
	logSalt    string
}

// NewService wires the core around repo. logSalt keys the hash used to redact
// voter identities in logs.
func NewService(repo PollRepository, logger *slog.Logger, logSalt string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validator:  NewOptionValidator(repo),
		ledger:     NewLedger(repo),
		aggregator: NewAggregator(repo),
		logger:     logger,
		logSalt:    logSalt,
	}
}

// CastVote validates the option against the poll, then records the identity's
// vote. Returns models.OutcomeCreated or models.OutcomeUpdated.
func (s *Service) CastVote(ctx context.Context, pollID, optionID string, identity models.Identity) (string, error) {
	ok, err := s.validator.Verify(ctx, optionID, pollID)
	if err != nil {
		s.logger.Error("option validation failed",
			"event", "vote_option_validation_failed",
			"poll_id", pollID,
			"option_id", optionID,
			"error", err,
		)
		return "", err
	}
	if !ok {
		s.logger.Warn("vote rejected: invalid option",
			"event", "vote_invalid_option",
			"poll_id", pollID,
			"option_id", optionID,
		)
		return "", ErrInvalidOption
	}

	outcome, err := s.ledger.RecordVote(ctx, pollID, optionID, identity)
	if err != nil {
		s.logger.Error("vote record failed",
			"event", "vote_record_failed",
			"poll_id", pollID,
			"option_id", optionID,
			"voter", s.redact(identity),
			"error", err,
		)
		return "", err
	}

	s.logger.Info("vote recorded",
		"event", "vote_recorded",
		"poll_id", pollID,
		"option_id", optionID,
		"voter", s.redact(identity),
		"anonymous", identity.IsAnonymous(),
		"outcome", outcome,
	)
	return outcome, nil
}

// GetResults returns the poll with its tallies, or ErrPollNotFound.
func (s *Service) GetResults(ctx context.Context, pollID string) (*models.Results, error) {
	results, err := s.aggregator.Aggregate(ctx, pollID)
	if err != nil {
		if !errors.Is(err, ErrPollNotFound) {
			s.logger.Error("results aggregation failed",
				"event", "results_aggregate_failed",
				"poll_id", pollID,
				"error", err,
			)
		}
		return nil, err
	}
	return results, nil
}

func (s *Service) redact(identity models.Identity) string {
	return auth.HashIP(identity.Key(), s.logSalt)
}
