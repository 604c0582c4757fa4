// Package cache provides short-lived stores for upstream HTTP responses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store keeps opaque byte payloads for a bounded time.
//
// Get reports (nil, false, nil) on a miss, including entries whose TTL has passed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key hashes an arbitrary cache key into a filesystem- and Redis-safe token.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
