// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting records votes and aggregates poll results.

# Components

  - ResolveIdentity: user id from the session, else the first X-Forwarded-For
    address, else LoopbackAddress
  - OptionValidator: the option must belong to the poll
  - Ledger: at most one vote per (poll, identity); new or changed
  - Aggregator: per-option counts, total, and half-up percentages
  - Service: CastVote and GetResults, the boundary used by handlers

All storage goes through the PollRepository interface, injected at
construction:

	svc := voting.NewService(repo, logger, cfg.SessionSecret)
	outcome, err := svc.CastVote(ctx, pollID, optionID, identity)

# Recording a Vote

The ledger looks up the identity's existing vote. If one exists only its
option is overwritten (OutcomeUpdated); otherwise a row is inserted
(OutcomeCreated). A duplicate-insert error from storage means a concurrent
request from the same identity won the first vote; the ledger retries once
as an update.

# Errors

  - ErrInvalidOption: option missing or from another poll
  - ErrPollNotFound: results requested for an unknown poll
  - ErrPersistence: any repository failure, wrapping the cause
  - ErrInvalidIdentity: identity with both or neither key set
*/
package voting
