package ratelimit

import (
	"context"
	"time"
)

// Rule caps requests per key within a sliding window
type Rule struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it is within the rule
	Allow(ctx context.Context, key string, rule Rule) (bool, error)
	// Used returns how many requests key made in the current window
	Used(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
