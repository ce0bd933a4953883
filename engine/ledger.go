// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "github.com/ballotbox/ballotbox/models"

// HasVoted answers the admission query for a fingerprint under the poll's
// protection mode. For ip_address and login the ledger is the poll's own
// recorded votes; for cookie it is the caller-supplied token set, since no
// server-side record of the fingerprint exists.
func HasVoted(p *models.Poll, fingerprint string, tokens []string) bool {
	switch p.ProtectionMode {
	case models.ProtectionNone:
		return false
	case models.ProtectionCookie:
		for _, id := range tokens {
			if id == fingerprint {
				return true
			}
		}
		return false
	case models.ProtectionIPAddress:
		return p.UniqueIPVoters()[fingerprint]
	case models.ProtectionLogin:
		return p.UniqueUserVoters()[fingerprint]
	}
	return false
}

// RecordVote returns the token set to hand back to the caller after an
// admitted vote. Only cookie mode augments the set; for the other modes the
// admission record is the vote itself, already appended to the poll.
func RecordVote(p *models.Poll, fingerprint string, tokens []string) []string {
	if p.ProtectionMode != models.ProtectionCookie {
		return tokens
	}
	updated := make([]string, 0, len(tokens)+1)
	updated = append(updated, tokens...)
	for _, id := range updated {
		if id == fingerprint {
			return updated
		}
	}
	return append(updated, fingerprint)
}
