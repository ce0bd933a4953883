// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the poll voting engine: the policy logic that
decides whether a vote attempt is admissible and the lifecycle rules that
govern when a poll accepts votes and reveals results.

# Components

  - VotingOpen / ResultsVisible: pure functions over a poll's timestamps
  - Fingerprint: derives the dedup key for the poll's protection mode
  - HasVoted / RecordVote: per-mode admission ledger
  - Caster: the cast-vote state machine
  - Builder: poll construction from relative time offsets

# Casting

A cast attempt runs a fixed short-circuit sequence: load, resolve choices,
lifecycle gate, selection-limit gate, dedup gate, append votes, save. Each
gate terminates the attempt with one tagged outcome:

	result, err := caster.CastVote(ctx, pollID, choiceIDs, reqCtx)

Rejections (poll closed, limit exceeded, already voted, login required) are
result values; only unknown IDs and storage faults are errors.

# Concurrency

CastVote never retries. Save is a compare-and-swap against the poll's
version; on db.ErrVersionConflict the caller re-runs the whole attempt so
the dedup gate re-evaluates against the fresh aggregate. For a given poll,
mode and fingerprint at most one attempt can ever succeed.

# Cookie mode

Cookie-protected polls have no server-side fingerprint record. The caller
hands in the voted-poll set it carried (a cookie on the transport side) and
receives the augmented set back in the result for transport to the client.
*/
package engine
