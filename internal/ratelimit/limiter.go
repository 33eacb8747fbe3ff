package ratelimit

import (
	"context"
	"time"
)

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	// Allow records one request for key and reports whether it fits in the
	// current window.
	Allow(ctx context.Context, key string) (bool, error)
}

type Options struct {
	Limit  int
	Window time.Duration
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
