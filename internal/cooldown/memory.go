package cooldown

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps cooldowns in process memory
type MemoryLimiter struct {
	mutex   sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Acquire implements Limiter
func (m *MemoryLimiter) Acquire(_ context.Context, key string, window time.Duration) (time.Duration, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	if expiry, ok := m.expires[key]; ok && now.Before(expiry) {
		return expiry.Sub(now), nil
	}

	m.expires[key] = now.Add(window)
	m.sweep(now)
	return 0, nil
}

// sweep drops expired entries so the map does not grow with every user ever seen
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, expiry := range m.expires {
		if !now.Before(expiry) {
			delete(m.expires, key)
		}
	}
}
