// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and SQL persistence.

# Connections

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "file:quickly-poll.db")

SQLite connections get foreign_keys and busy_timeout pragmas unless the
DSN already sets pragmas.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: Poll metadata
  - poll_option: Options per poll, ordered by position
  - vote: One row per (poll, identity)

# Relationships

	poll 1──* poll_option
	poll 1──* vote
	poll_option 1──* vote

All foreign keys use ON DELETE CASCADE.

# Vote Uniqueness

A vote row holds exactly one of user_id or ip_address (CHECK constraint).
Two partial unique indexes enforce one vote per identity per poll:

  - (poll_id, user_id) WHERE user_id IS NOT NULL
  - (poll_id, ip_address) WHERE user_id IS NULL

Repository.InsertVote maps a violation of either index to models.ErrDuplicateVote.

# Repository

Repository implements the storage operations used by the voting core
(FindPoll, FindOptionsByPoll, OptionBelongsToPoll, FindVote, InsertVote,
UpdateVoteOption, CountVotesByOption) plus CreatePollWithOptions and
ListPolls for the HTTP layer. Lookups return (nil, nil) for missing rows.
*/
package db
