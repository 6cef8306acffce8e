// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token verification and log redaction helpers.

# Session Tokens

Session tokens carry a user id signed with HMAC-SHA256:

	token := auth.SignSessionToken(userID, secret)
	userID, err := auth.VerifySessionToken(token, secret)

The token is two URL-safe base64 segments without padding, joined by a dot:
the user id and its signature. Since signing is deterministic, tokens can be
checked without storing them in the database. Issuing tokens belongs to the
identity provider; SignSessionToken exists for it and for tests.

Errors:

  - ErrInvalidToken: malformed token
  - ErrInvalidSession: signature does not match

# IP Hashing

For privacy-preserving log correlation:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
