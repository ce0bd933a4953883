// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"time"

	"github.com/ballotbox/ballotbox/models"
)

// VotingOpen reports whether the poll accepts votes at the given instant.
// A poll with no voting end never closes.
func VotingOpen(p *models.Poll, now time.Time) bool {
	if now.Before(p.VotingStart) {
		return false
	}
	if p.VotingEnd != nil && now.After(*p.VotingEnd) {
		return false
	}
	return true
}

// ResultsVisible reports whether tallies may be shown at the given instant.
// Visibility flips strictly after ResultsAvailableAt.
func ResultsVisible(p *models.Poll, now time.Time) bool {
	return now.After(p.ResultsAvailableAt)
}
