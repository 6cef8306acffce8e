// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrInvalidToken   = errors.New("invalid token format")
)

// SignSessionToken creates an HMAC-signed session token for a user.
// Format: base64url(userID) "." base64url(HMAC-SHA256(userID)), unpadded.
func SignSessionToken(userID, secret string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(userID))
	return payload + "." + sign(userID, secret)
}

// VerifySessionToken checks the token signature and returns the user id it carries.
func VerifySessionToken(token, secret string) (string, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalidToken
	}
	userID := string(raw)

	expected := sign(userID, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidSession
	}
	return userID, nil
}

func sign(value, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// HashIP creates a one-way hash of an IP address (or any voter key) for logs.
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for correlation
	return hex.EncodeToString(sum[:8])
}
