// Package ratelimit implements the fixed-window request guard used in front
// of sensitive endpoints.
package ratelimit

import (
	"context"
	"time"
)

// Window is the state of one fixed window right after a hit.
type Window struct {
	Count   int
	ResetAt time.Time
}

// Store counts hits per key inside fixed windows. Implementations must be
// safe for concurrent use and must never lose an increment.
//
// Hit registers one request for key. If the key has no live window, a new
// one starting now and lasting window is opened with Count 1.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (Window, error)
}
