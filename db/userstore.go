// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ballotbox/ballotbox/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore persists user identity records.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. The username's uniqueness is enforced by the
// database; a violation surfaces as ErrUsernameTaken.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	createdPolls, err := json.Marshal(u.CreatedPolls)
	if err != nil {
		return fmt.Errorf("failed to encode created polls: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, username, password_hash, joined_at, created_polls)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Username, u.PasswordHash, u.JoinedAt, createdPolls)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByID fetches one user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.get(ctx, `SELECT id, username, password_hash, joined_at, created_polls FROM app_user WHERE id = $1`, id)
}

// GetByUsername fetches one user by username.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.get(ctx, `SELECT id, username, password_hash, joined_at, created_polls FROM app_user WHERE username = $1`, username)
}

func (s *UserStore) get(ctx context.Context, query, arg string) (*models.User, error) {
	var u models.User
	var createdPolls []byte
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.JoinedAt, &createdPolls,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := json.Unmarshal(createdPolls, &u.CreatedPolls); err != nil {
		return nil, fmt.Errorf("failed to decode created polls: %w", err)
	}
	return &u, nil
}

// AppendCreatedPoll adds pollID to the user's created-polls list. This is
// the best-effort second write of poll creation: it is not transactional
// with the poll insert.
func (s *UserStore) AppendCreatedPoll(ctx context.Context, userID, pollID string) error {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	updated := append(u.CreatedPolls, pollID)
	createdPolls, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode created polls: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE app_user SET created_polls = $1 WHERE id = $2
	`, createdPolls, userID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return nil
}

// isUniqueViolation matches the unique-constraint error text of both
// supported drivers (sqlite and postgres).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
