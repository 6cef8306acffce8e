// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options, is_public
  - CastVoteRequest: option_id

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id, message
  - CastVoteResponse: outcome, message
  - ListPollsResponse: polls, limit, offset
  - Results: poll, results, total_votes
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata
  - PollWithOptions: a poll with its ordered options
  - Option: choice text and its position within the poll
  - Vote: one row per (poll, identity)
  - Identity: user id or anonymous IP address, never both
  - ResultRow: per-option vote count and percentage (derived)

# Constants

Vote outcomes:

	OutcomeCreated = "created"
	OutcomeUpdated = "updated"

Poll creation limits:

	MinTitleLength = 3, MaxTitleLength = 255
	MaxDescriptionLength = 1000
	MinOptions = 2, MaxOptions = 10, MaxOptionLength = 255
*/
package models
