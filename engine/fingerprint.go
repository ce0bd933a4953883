// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "github.com/ballotbox/ballotbox/models"

// Fingerprint derives the deduplication key for a vote attempt under the
// poll's protection mode. ok is false when the mode needs no fingerprint
// (none) or when the required signal is missing (login without a session);
// the caster decides what the missing signal means.
func Fingerprint(p *models.Poll, req models.RequestContext) (fp string, ok bool) {
	switch p.ProtectionMode {
	case models.ProtectionNone:
		return "", false
	case models.ProtectionCookie:
		// The poll's own identity is the token the client carries.
		return p.ID, true
	case models.ProtectionIPAddress:
		return req.IPAddress, true
	case models.ProtectionLogin:
		if req.UserID == "" {
			return "", false
		}
		return req.UserID, true
	}
	return "", false
}
