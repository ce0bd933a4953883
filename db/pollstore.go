// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ballotbox/ballotbox/models"
)

// ErrVersionConflict reports a stale Save: the poll row changed since it was
// loaded. The caller re-runs its whole read-modify-write sequence.
var ErrVersionConflict = errors.New("poll version conflict")

// PollStore reads and writes poll aggregates as single JSON documents.
type PollStore struct {
	db *sql.DB
}

func NewPollStore(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

// Load fetches one poll aggregate. Returns models.ErrPollNotFound for an
// unknown ID.
func (s *PollStore) Load(ctx context.Context, pollID string) (*models.Poll, error) {
	var doc []byte
	var version int64
	err := s.db.QueryRowContext(ctx, `
		SELECT doc, version FROM poll WHERE id = $1
	`, pollID).Scan(&doc, &version)

	if err == sql.ErrNoRows {
		return nil, models.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load poll %s: %w", pollID, err)
	}

	var poll models.Poll
	if err := json.Unmarshal(doc, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode poll %s: %w", pollID, err)
	}
	poll.Version = version
	return &poll, nil
}

// Save writes the whole aggregate atomically. A poll with version zero is
// inserted; any other version is a compare-and-swap against the version the
// poll was loaded at, failing with ErrVersionConflict when the row moved on.
func (s *PollStore) Save(ctx context.Context, p *models.Poll) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode poll %s: %w", p.ID, err)
	}

	if p.Version == 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO poll (id, doc, version, created_at)
			VALUES ($1, $2, 1, $3)
		`, p.ID, doc, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert poll %s: %w", p.ID, err)
		}
		p.Version = 1
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET doc = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`, doc, p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("failed to update poll %s: %w", p.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check poll update %s: %w", p.ID, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	p.Version++
	return nil
}

// List returns all polls, newest first.
func (s *PollStore) List(ctx context.Context) ([]*models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc, version FROM poll ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*models.Poll
	for rows.Next() {
		var doc []byte
		var version int64
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, fmt.Errorf("failed to scan poll row: %w", err)
		}
		var poll models.Poll
		if err := json.Unmarshal(doc, &poll); err != nil {
			return nil, fmt.Errorf("failed to decode poll row: %w", err)
		}
		poll.Version = version
		polls = append(polls, &poll)
	}
	return polls, rows.Err()
}
