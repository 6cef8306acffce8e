// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Poll API server.

Quickly Poll is a multiple-choice polling service. Signed-in users create
polls; anyone can vote, once per poll, and change their vote later.
Results are tallied live.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret ...

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: Vote recording and results aggregation
  - handlers: HTTP request handlers (polls, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - models: Domain and request/response types
  - auth: Session tokens and log redaction
  - db: Connections, schema, and the SQL repository
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
