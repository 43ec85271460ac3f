package ratelimit

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps windows in process memory. Entries vanish on restart,
// which is acceptable because the guard only throttles.
type MemoryStore struct {
	mu    sync.Mutex
	items *gocache.Cache
	now   func() time.Time
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// NewMemoryStore creates an empty store. Expired windows are only evicted
// by Run or Sweep; go-cache's own janitor is disabled so eviction stays
// tied to the caller's context.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
}

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (Window, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.items.Get(key); ok {
		e := v.(*memoryEntry)
		if now.Before(e.resetAt) {
			e.count++
			return Window{Count: e.count, ResetAt: e.resetAt}, nil
		}
	}

	e := &memoryEntry{count: 1, resetAt: now.Add(window)}
	s.items.Set(key, e, window)
	return Window{Count: 1, ResetAt: e.resetAt}, nil
}

// Sweep evicts every expired window.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.DeleteExpired()
}

// Len returns the number of stored windows, expired ones included until
// the next sweep.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

// Run sweeps expired windows every interval until ctx is cancelled.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
