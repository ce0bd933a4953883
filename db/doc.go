// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides schema creation and the persistence stores.

# Poll Documents

A poll and everything it owns (choices, votes) is stored as one JSON
document in a single row. Load and Save move the whole aggregate:

	poll, err := polls.Load(ctx, pollID)
	// mutate
	err = polls.Save(ctx, poll)

Save is a compare-and-swap on the row's version column. A stale write fails
with ErrVersionConflict and the caller repeats its read-modify-write cycle.
This gives per-poll serializability without cross-poll coordination.

# Users

Users live in their own table; the created-polls forward list is a JSON
array column. AppendCreatedPoll is deliberately not transactional with poll
insertion - the backlink is best effort.

# Drivers

The schema and all queries run unchanged on SQLite (modernc.org/sqlite,
used for development and tests) and PostgreSQL (lib/pq); both accept $1
placeholders.
*/
package db
