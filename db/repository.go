// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/models"
)

// Repository is the SQL-backed store for polls, options, and votes.
// It works against both PostgreSQL and SQLite connections opened by Open.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FindPoll returns the poll for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *Repository) FindPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_by, is_public, created_at
		FROM poll
		WHERE id = $1
	`, pollID)

	poll, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.logError("poll_repo_find_poll_failed", err, "poll_id", pollID)
	}
	return poll, nil
}

// FindOptionsByPoll returns the poll's options ordered by position.
func (r *Repository) FindOptionsByPoll(ctx context.Context, pollID string) ([]models.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, poll_id, text, position
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position ASC
	`, pollID)
	if err != nil {
		return nil, r.logError("poll_repo_find_options_failed", err, "poll_id", pollID)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.Position); err != nil {
			return nil, r.logError("poll_repo_scan_option_failed", err, "poll_id", pollID)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, r.logError("poll_repo_find_options_failed", err, "poll_id", pollID)
	}
	return options, nil
}

// OptionBelongsToPoll reports whether an option with optionID exists under pollID.
func (r *Repository) OptionBelongsToPoll(ctx context.Context, optionID, pollID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_option
			WHERE id = $1 AND poll_id = $2
		)
	`, optionID, pollID).Scan(&exists)
	if err != nil {
		return false, r.logError("poll_repo_option_belongs_failed", err,
			"poll_id", pollID,
			"option_id", optionID,
		)
	}
	return exists, nil
}

// FindVote returns the vote cast by identity on pollID, or nil if none exists.
// Authenticated and anonymous lookups never match each other's rows.
func (r *Repository) FindVote(ctx context.Context, pollID string, identity models.Identity) (*models.Vote, error) {
	var row *sql.Row
	if identity.IsAnonymous() {
		row = r.db.QueryRowContext(ctx, `
			SELECT id, poll_id, option_id, user_id, ip_address, created_at
			FROM vote
			WHERE poll_id = $1 AND ip_address = $2 AND user_id IS NULL
		`, pollID, identity.IPAddress)
	} else {
		row = r.db.QueryRowContext(ctx, `
			SELECT id, poll_id, option_id, user_id, ip_address, created_at
			FROM vote
			WHERE poll_id = $1 AND user_id = $2
		`, pollID, identity.UserID)
	}

	vote, err := scanVote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.logError("poll_repo_find_vote_failed", err, "poll_id", pollID)
	}
	return vote, nil
}

// InsertVote stores a new vote keyed by identity. Only one of user_id and
// ip_address is written. Returns models.ErrDuplicateVote when the identity already
// has a vote on the poll.
func (r *Repository) InsertVote(ctx context.Context, pollID, optionID string, identity models.Identity) (*models.Vote, error) {
	vote := &models.Vote{
		ID:        uuid.NewString(),
		PollID:    pollID,
		OptionID:  optionID,
		CreatedAt: r.now(),
	}
	if identity.IsAnonymous() {
		ip := identity.IPAddress
		vote.IPAddress = &ip
	} else {
		userID := identity.UserID
		vote.UserID = &userID
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, option_id, user_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.PollID, vote.OptionID, nullString(vote.UserID), nullString(vote.IPAddress), vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateVote
		}
		return nil, r.logError("poll_repo_insert_vote_failed", err,
			"poll_id", pollID,
			"option_id", optionID,
		)
	}
	return vote, nil
}

// UpdateVoteOption overwrites only the option of an existing vote.
func (r *Repository) UpdateVoteOption(ctx context.Context, voteID, optionID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vote SET option_id = $1 WHERE id = $2
	`, optionID, voteID)
	if err != nil {
		return r.logError("poll_repo_update_vote_failed", err,
			"vote_id", voteID,
			"option_id", optionID,
		)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.logError("poll_repo_update_vote_failed", err, "vote_id", voteID)
	}
	if affected == 0 {
		return models.ErrVoteNotFound
	}
	return nil
}

// CountVotesByOption returns vote counts keyed by option id. Options without
// votes are absent from the map.
func (r *Repository) CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT option_id, COUNT(*)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option_id
	`, pollID)
	if err != nil {
		return nil, r.logError("poll_repo_count_votes_failed", err, "poll_id", pollID)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, r.logError("poll_repo_scan_count_failed", err, "poll_id", pollID)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, r.logError("poll_repo_count_votes_failed", err, "poll_id", pollID)
	}
	return counts, nil
}

// CreatePollWithOptions inserts the poll and its options in one transaction.
// Options are positioned 1..n in the order given.
func (r *Repository) CreatePollWithOptions(ctx context.Context, poll models.Poll, optionTexts []string) (*models.PollWithOptions, error) {
	poll.ID = uuid.NewString()
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = r.now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.logError("poll_repo_begin_tx_failed", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, title, description, created_by, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poll.ID, poll.Title, nullString(poll.Description), nullString(poll.CreatedBy), poll.IsPublic, poll.CreatedAt)
	if err != nil {
		return nil, r.logError("poll_repo_insert_poll_failed", err, "poll_id", poll.ID)
	}

	options := make([]models.Option, 0, len(optionTexts))
	for i, text := range optionTexts {
		opt := models.Option{
			ID:       uuid.NewString(),
			PollID:   poll.ID,
			Text:     text,
			Position: i + 1,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (id, poll_id, text, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.Text, opt.Position)
		if err != nil {
			return nil, r.logError("poll_repo_insert_option_failed", err,
				"poll_id", poll.ID,
				"position", opt.Position,
			)
		}
		options = append(options, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, r.logError("poll_repo_commit_failed", err, "poll_id", poll.ID)
	}

	return &models.PollWithOptions{Poll: poll, Options: options}, nil
}

// ListPollsFilter selects which polls ListPolls returns.
// An empty CreatedBy lists public polls only.
type ListPollsFilter struct {
	CreatedBy string
	Limit     int
	Offset    int
}

// ListPolls returns polls newest first, each with its ordered options.
func (r *Repository) ListPolls(ctx context.Context, filter ListPollsFilter) ([]models.PollWithOptions, error) {
	var rows *sql.Rows
	var err error
	if filter.CreatedBy != "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, title, description, created_by, is_public, created_at
			FROM poll
			WHERE created_by = $1
			ORDER BY created_at DESC, id ASC
			LIMIT $2 OFFSET $3
		`, filter.CreatedBy, filter.Limit, filter.Offset)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT id, title, description, created_by, is_public, created_at
			FROM poll
			WHERE is_public = $1
			ORDER BY created_at DESC, id ASC
			LIMIT $2 OFFSET $3
		`, true, filter.Limit, filter.Offset)
	}
	if err != nil {
		return nil, r.logError("poll_repo_list_polls_failed", err)
	}

	polls := []models.Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			rows.Close()
			return nil, r.logError("poll_repo_scan_poll_failed", err)
		}
		polls = append(polls, *poll)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, r.logError("poll_repo_list_polls_failed", err)
	}
	rows.Close()

	items := make([]models.PollWithOptions, 0, len(polls))
	for _, poll := range polls {
		options, err := r.FindOptionsByPoll(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.PollWithOptions{Poll: poll, Options: options})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+4)
	fields = append(fields, "event", event, "error", err.Error())
	fields = append(fields, attrs...)
	r.logger.Error("poll repository operation failed", fields...)
	return fmt.Errorf("%s: %w", event, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPoll(s scanner) (*models.Poll, error) {
	var poll models.Poll
	var description, createdBy sql.NullString
	if err := s.Scan(&poll.ID, &poll.Title, &description, &createdBy, &poll.IsPublic, &poll.CreatedAt); err != nil {
		return nil, err
	}
	poll.Description = stringPtr(description)
	poll.CreatedBy = stringPtr(createdBy)
	poll.CreatedAt = poll.CreatedAt.UTC()
	return &poll, nil
}

func scanVote(s scanner) (*models.Vote, error) {
	var vote models.Vote
	var userID, ipAddress sql.NullString
	if err := s.Scan(&vote.ID, &vote.PollID, &vote.OptionID, &userID, &ipAddress, &vote.CreatedAt); err != nil {
		return nil, err
	}
	vote.UserID = stringPtr(userID)
	vote.IPAddress = stringPtr(ipAddress)
	vote.CreatedAt = vote.CreatedAt.UTC()
	return &vote, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
