// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"strings"

	"github.com/danielhkuo/quickly-poll/models"
)

// LoopbackAddress keys anonymous voters whose client address is unknown.
const LoopbackAddress = "127.0.0.1"

// ResolveIdentity derives the voter identity from the session user id and the
// X-Forwarded-For header value. An authenticated user is keyed by user id only.
// Anonymous voters are keyed by the first forwarded address, falling back to
// LoopbackAddress so resolution never fails.
func ResolveIdentity(userID, forwardedFor string) models.Identity {
	if userID = strings.TrimSpace(userID); userID != "" {
		return models.UserIdentity(userID)
	}

	first, _, _ := strings.Cut(forwardedFor, ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return models.AnonymousIdentity(ip)
	}
	return models.AnonymousIdentity(LoopbackAddress)
}
