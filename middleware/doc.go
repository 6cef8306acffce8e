// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# Sessions

WithSession verifies an optional bearer token and stores the user id
in the request context:

	mux.HandleFunc("POST /polls", middleware.WithSession(secret,
		middleware.RequireSession(h.CreatePoll)))

	userID := middleware.UserIDFromContext(r.Context())

A missing header leaves the request anonymous. A header that fails
verification is rejected with 401 before the handler runs.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Forwarded Header

	xff := middleware.ForwardedFor(r)

Returns the raw X-Forwarded-For chain. Anonymous voters are keyed on its
first entry.
*/
package middleware
