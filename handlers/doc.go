// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Poll API.

# Handler Types

Each handler is a struct holding the dependency it reads through:

  - PollHandler: Poll creation, listing, and lookup (PollStore)
  - VotingHandler: Vote casting (VoteService)
  - ResultsHandler: Live results (VoteService)

	pollHandler := handlers.NewPollHandler(repo)
	votingHandler := handlers.NewVotingHandler(svc)

*db.Repository satisfies PollStore and *voting.Service satisfies VoteService.

# Polls

	POST /polls      → CreatePoll (session required)
	GET  /polls      → ListPolls (?limit, ?offset, ?mine=true)
	GET  /polls/{id} → GetPoll

A poll has a 3-255 character title, an optional description, and 2-10
options stored in request order.

# Voting

	POST /polls/{id}/vote → CastVote

Body is {"option_id": "..."}. Voters with a session are keyed by user id;
anonymous voters by the first X-Forwarded-For address. Each identity holds
one vote per poll and voting again changes it. The response outcome is
"created" or "updated".

# Results

	GET /polls/{id}/results → GetResults
	GET /polls/{id}/vote    → GetResults

Percentages are integers rounded half-up and are 0 when there are no votes.

# Errors

	400  malformed ids or body, option not in poll
	401  missing or invalid session
	404  poll not found
	500  storage failure
*/
package handlers
