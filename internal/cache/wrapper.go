package cache

import (
	"context"
	"time"

	"backoffice/internal/utils"
)

// Wrapper is a get-or-compute layer over an optional Store. The cache is
// advisory: a nil store, an empty key, or any backend error degrades to a
// plain compute with hit=false. Writes go through Background so the caller's
// response never waits on them.
type Wrapper struct {
	Store Store

	// Background receives the deferred cache write. Nil means "spawn a
	// goroutine"; tests inject a synchronous sink.
	Background func(fn func())

	RequestID string
}

// Do returns the cached payload for key when present, otherwise computes,
// stores fire-and-forget, and returns the fresh payload. hit reports whether
// the value came from the cache. Only compute errors propagate.
func (w Wrapper) Do(ctx context.Context, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if w.Store == nil || key == "" {
		val, err := compute()
		return val, false, err
	}

	if val, err := w.Store.Get(ctx, key); err == nil {
		return val, true, nil
	} else if err != ErrMiss {
		utils.LogEvent(w.RequestID, "cache", "get", "read failed, treating as miss: "+err.Error())
	}

	val, err := compute()
	if err != nil {
		return nil, false, err
	}

	cp := make([]byte, len(val))
	copy(cp, val)
	w.spawn(func() {
		wctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.Store.Set(wctx, key, cp, ttl); err != nil {
			utils.LogEvent(w.RequestID, "cache", "set", "write failed for "+key+": "+err.Error())
		}
	})

	return val, false, nil
}

// Invalidate removes every key under the given tags. Errors are logged, not
// returned: invalidation is best effort like the rest of the cache.
func (w Wrapper) Invalidate(ctx context.Context, tags []string) int {
	if w.Store == nil {
		return 0
	}
	total := 0
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		n, err := w.Store.DeleteByPrefix(ctx, TagPrefix(tag))
		if err != nil {
			utils.LogEvent(w.RequestID, "cache", "invalidate", "tag "+tag+": "+err.Error())
		}
		total += n
	}
	return total
}

func (w Wrapper) spawn(fn func()) {
	if w.Background != nil {
		w.Background(fn)
		return
	}
	go fn()
}
