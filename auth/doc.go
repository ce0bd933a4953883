// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token utilities.

# Passwords

Passwords are stored as bcrypt hashes only:

	hash, err := auth.HashPassword(raw)
	ok := auth.CheckPassword(hash, raw)

# Sessions

Login sessions are HS256-signed JWTs carrying the user ID, valid for
SessionTTL:

	token, err := auth.NewSessionToken(userID, secret)
	userID, err := auth.ParseSessionToken(token, secret)

The transport layer moves the token in the session cookie. Any validation
failure collapses to ErrInvalidSession; callers treat the request as
unauthenticated rather than failing it.
*/
package auth
