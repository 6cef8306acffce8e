// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(repo, svc, cfg)

# Endpoints

Health:

	GET /health

Polls:

	POST /polls      - Create poll (session required)
	GET  /polls      - List public polls, or ?mine=true for the caller's
	GET  /polls/{id} - Poll info and options

Voting (session optional):

	POST /polls/{id}/vote - Cast or change a vote

Results (public, live):

	GET /polls/{id}/results - Tallies and percentages
	GET /polls/{id}/vote    - Same as /results

# Sessions

Routes that read the caller's identity are wrapped in
middleware.WithSession, which rejects a bad bearer token with 401.
POST /polls additionally requires one.
*/
package router
