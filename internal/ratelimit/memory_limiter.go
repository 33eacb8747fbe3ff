package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int
	start time.Time
}

// MemoryLimiter keeps counters in process; each replica limits on its own.
type MemoryLimiter struct {
	opts Options

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewMemoryLimiter(opts Options) *MemoryLimiter {
	return &MemoryLimiter{
		opts:    opts.withDefaults(),
		buckets: make(map[string]*bucket),
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := m.opts.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) >= m.opts.Window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	if b.count >= m.opts.Limit {
		return false, nil
	}

	b.count++
	return true, nil
}

// Sweep drops buckets whose window has ended.
func (m *MemoryLimiter) Sweep() int {
	now := m.opts.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, b := range m.buckets {
		if now.Sub(b.start) >= m.opts.Window {
			delete(m.buckets, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
