// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Poll aggregates. Each row is one poll document: the poll, its choices and
-- their votes, serialized as JSON. The version column is the optimistic
-- concurrency token for read-modify-write cycles.
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    doc TEXT NOT NULL,
    version INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_created_at ON poll(created_at);

-- Users
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    joined_at TIMESTAMP NOT NULL,
    created_polls TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_app_user_username ON app_user(username);
`
