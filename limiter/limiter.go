// Package limiter implements fixed-window request counting over a pluggable
// counter store, so the same limit can be enforced by one process (memory) or
// shared by several instances (Redis).
package limiter

import (
	"context"
	"time"
)

// Store counts hits per key within a window that starts at the key's first hit.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

type Result struct {
	Allowed   bool
	Count     int64
	Remaining int64
	ResetAt   time.Time
}

type FixedWindow struct {
	store  Store
	limit  int64
	window time.Duration
}

func NewFixedWindow(store Store, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{store: store, limit: int64(limit), window: window}
}

func (f *FixedWindow) Limit() int64 {
	return f.limit
}

// Allow records one attempt for key. Rejected attempts are counted too.
func (f *FixedWindow) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := f.store.Increment(ctx, key, f.window)
	if err != nil {
		return Result{}, err
	}

	remaining := f.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= f.limit,
		Count:     count,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
