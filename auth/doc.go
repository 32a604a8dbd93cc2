// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and IP hashing.

# Password Storage

Passwords are hashed with argon2id under a random per-user salt:

	salt, err := auth.GenerateSalt()
	hash, err := auth.HashPassword(password, salt)

Both values are hex encoded and stored on the user row. Verification
re-derives the digest and compares in constant time:

	ok := auth.VerifyPassword(password, salt, hash)

# Session Tokens

Logging in issues an opaque random token with a 30-day expiry:

	token, err := auth.CreateSession(db, userID)

Authenticated requests present it as a bearer credential:

	Authorization: Bearer <token>

UserFromRequest resolves the token to the owning user, returning
ErrNoSession when the token is missing, unknown, or expired:

	userID, username, err := auth.UserFromRequest(db, r)

Tokens are never deleted on use; expired rows are pruned in the
background (see db.PruneExpiredSessions).

# IP Hashing

For privacy-preserving abuse tracking on comments:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. The raw address is
never stored.
*/
package auth
