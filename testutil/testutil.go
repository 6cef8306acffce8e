// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/auth"
	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/models"
)

// TestSessionSecret signs session tokens in tests
const TestSessionSecret = "test-session-secret"

// SetupTestDB creates a fresh SQLite database with the full schema.
// Each test gets its own file, removed with the test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quickly-poll-test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection serializes writers; SQLite locks the whole file anyway
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "quickly-poll-test.db",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: TestSessionSecret,
	}
}

// SessionHeader returns an Authorization header for userID
func SessionHeader(cfg cliparse.Config, userID string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.SignSessionToken(userID, cfg.SessionSecret),
	}
}

// CreateTestPoll creates a public poll owned by createdBy ("" for no owner)
// and returns its ID and option IDs in position order
func CreateTestPoll(t *testing.T, conn *sql.DB, createdBy string, options ...string) (pollID string, optionIDs []string) {
	t.Helper()
	return createPoll(t, conn, "Test Poll", createdBy, true, time.Now().UTC(), options)
}

// CreatePrivateTestPoll is CreateTestPoll with is_public = false
func CreatePrivateTestPoll(t *testing.T, conn *sql.DB, createdBy string, options ...string) (pollID string, optionIDs []string) {
	t.Helper()
	return createPoll(t, conn, "Private Poll", createdBy, false, time.Now().UTC(), options)
}

// CreateTestPollAt creates a public poll with a fixed creation time, for ordering tests
func CreateTestPollAt(t *testing.T, conn *sql.DB, title string, createdAt time.Time, options ...string) (pollID string, optionIDs []string) {
	t.Helper()
	return createPoll(t, conn, title, "", true, createdAt.UTC(), options)
}

func createPoll(t *testing.T, conn *sql.DB, title, createdBy string, isPublic bool, createdAt time.Time, options []string) (string, []string) {
	t.Helper()

	pollID := uuid.NewString()
	var owner *string
	if createdBy != "" {
		owner = &createdBy
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, created_by, is_public, created_at)
		VALUES ($1, $2, 'A test poll', $3, $4, $5)
	`, pollID, title, owner, isPublic, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	optionIDs := make([]string, 0, len(options))
	for i, text := range options {
		optionIDs = append(optionIDs, AddTestOption(t, conn, pollID, text, i+1))
	}

	return pollID, optionIDs
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string, position int) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll_option (id, poll_id, text, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote stores a vote row directly, bypassing the voting service
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID string, identity models.Identity) string {
	t.Helper()

	var userID, ip *string
	if identity.IsAnonymous() {
		ip = &identity.IPAddress
	} else {
		userID = &identity.UserID
	}

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, option_id, user_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, pollID, optionID, userID, ip, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountVotes returns the number of vote rows for a poll
func CountVotes(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return count
}

// VoteOption returns the option the vote row currently points at
func VoteOption(t *testing.T, conn *sql.DB, voteID string) string {
	t.Helper()

	var optionID string
	if err := conn.QueryRow(`SELECT option_id FROM vote WHERE id = $1`, voteID).Scan(&optionID); err != nil {
		t.Fatalf("Failed to read vote %s: %v", voteID, err)
	}
	return optionID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
