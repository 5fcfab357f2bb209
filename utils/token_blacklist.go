package utils

import (
	"context"
	"sync"
	"time"
)

const revokedKeyPrefix = "noticeboard:revoked:"

var (
	revokedLocal = map[string]time.Time{}
	revokedMu    sync.RWMutex
)

// BlacklistToken revokes a session token until its natural expiry. Stored in
// Redis with a matching TTL so revocations survive restarts; when Redis is
// unavailable the token is held in process memory instead.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err == nil {
			return
		}
	}

	revokedMu.Lock()
	revokedLocal[token] = expiresAt
	revokedMu.Unlock()
}

// IsTokenBlacklisted reports whether the token was revoked before its expiry.
// A Redis read failure falls through to the in-process set rather than
// locking every admin out.
func IsTokenBlacklisted(token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, revokedKeyPrefix+token).Result(); err == nil && n > 0 {
			return true
		}
	}

	revokedMu.RLock()
	expiresAt, ok := revokedLocal[token]
	revokedMu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		revokedMu.Lock()
		delete(revokedLocal, token)
		revokedMu.Unlock()
		return false
	}
	return true
}
