// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ballotbox/ballotbox/cliparse"
	"github.com/ballotbox/ballotbox/db"
	"github.com/ballotbox/ballotbox/models"
)

var dbSeq atomic.Int64

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// A single connection is shared so writes serialize the way a single
// document store would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ballotbox_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8087,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		SessionSecret: "test-session-secret",
	}
}

// NewTestPoll builds an open two-choice poll with the given protection
// mode, ready to be saved.
func NewTestPoll(mode models.ProtectionMode) *models.Poll {
	now := time.Now().UTC()
	return &models.Poll{
		ID:       uuid.NewString(),
		Question: "Test question?",
		Choices: []models.Choice{
			{ID: uuid.NewString(), Text: "Choice A"},
			{ID: uuid.NewString(), Text: "Choice B"},
		},
		CreatedAt:          now,
		VotingStart:        now,
		ResultsAvailableAt: now,
		ProtectionMode:     mode,
		SelectionLimit:     1,
	}
}

// SavePoll persists a poll fixture.
func SavePoll(t *testing.T, store *db.PollStore, poll *models.Poll) {
	t.Helper()
	if err := store.Save(context.Background(), poll); err != nil {
		t.Fatalf("Failed to save test poll: %v", err)
	}
}

// CreateTestUser inserts a user fixture and returns it.
func CreateTestUser(t *testing.T, store *db.UserStore, username string) *models.User {
	t.Helper()

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "x",
		JoinedAt:     time.Now().UTC(),
		CreatedPolls: []string{},
	}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
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
