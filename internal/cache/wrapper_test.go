package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// synchronous sink so tests never race the fire-and-forget write
func runNow(fn func()) { fn() }

func TestWrapperNoStoreAlwaysComputes(t *testing.T) {
	w := Wrapper{Background: runNow}
	calls := 0
	for i := 0; i < 3; i++ {
		val, hit, err := w.Do(context.Background(), "admin:usage|{}", time.Minute, func() ([]byte, error) {
			calls++
			return []byte(`{"n":1}`), nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hit {
			t.Fatalf("no backend configured, hit must be false")
		}
		if string(val) != `{"n":1}` {
			t.Fatalf("unexpected value %q", val)
		}
	}
	if calls != 3 {
		t.Fatalf("compute should run once per call, got %d calls", calls)
	}
}

func TestWrapperEmptyKeyBypassesStore(t *testing.T) {
	w := Wrapper{Store: NewMemoryStore(), Background: runNow}
	calls := 0
	for i := 0; i < 2; i++ {
		_, hit, err := w.Do(context.Background(), "", time.Minute, func() ([]byte, error) {
			calls++
			return []byte(`x`), nil
		})
		if err != nil || hit {
			t.Fatalf("empty key must bypass the store (hit=%v err=%v)", hit, err)
		}
	}
	if calls != 2 {
		t.Fatalf("compute should run every time, got %d", calls)
	}
}

func TestWrapperMissThenHit(t *testing.T) {
	w := Wrapper{Store: NewMemoryStore(), Background: runNow}
	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte(`{"rows":[]}`), nil
	}

	val, hit, err := w.Do(context.Background(), "admin:usage|list|{}", time.Minute, compute)
	if err != nil || hit {
		t.Fatalf("first call should miss (hit=%v err=%v)", hit, err)
	}
	if string(val) != `{"rows":[]}` {
		t.Fatalf("unexpected value %q", val)
	}

	val, hit, err = w.Do(context.Background(), "admin:usage|list|{}", time.Minute, compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Fatalf("second call should hit")
	}
	if string(val) != `{"rows":[]}` {
		t.Fatalf("cached value mismatch: %q", val)
	}
	if calls != 1 {
		t.Fatalf("compute should have run exactly once, got %d", calls)
	}
}

func TestWrapperComputeErrorNotCached(t *testing.T) {
	w := Wrapper{Store: NewMemoryStore(), Background: runNow}
	wantErr := errors.New("db down")
	_, hit, err := w.Do(context.Background(), "admin:k|{}", time.Minute, func() ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) || hit {
		t.Fatalf("compute error should propagate uncached (hit=%v err=%v)", hit, err)
	}

	calls := 0
	_, hit, err = w.Do(context.Background(), "admin:k|{}", time.Minute, func() ([]byte, error) {
		calls++
		return []byte(`ok`), nil
	})
	if err != nil || hit || calls != 1 {
		t.Fatalf("failed compute must not leave a cache entry (hit=%v calls=%d)", hit, calls)
	}
}

func TestWrapperStoreErrorsDegradeToMiss(t *testing.T) {
	w := Wrapper{Store: failingStore{}, Background: runNow}
	val, hit, err := w.Do(context.Background(), "admin:k|{}", time.Minute, func() ([]byte, error) {
		return []byte(`fresh`), nil
	})
	if err != nil {
		t.Fatalf("store failure must not surface: %v", err)
	}
	if hit || string(val) != `fresh` {
		t.Fatalf("expected computed value on store failure, got hit=%v val=%q", hit, val)
	}
}

func TestWrapperInvalidateByTag(t *testing.T) {
	store := NewMemoryStore()
	w := Wrapper{Store: store, Background: runNow}
	ctx := context.Background()

	for _, key := range []string{
		BuildKey("usage", "list", map[string]any{"page": 1}),
		BuildKey("usage", "list", map[string]any{"page": 2}),
		BuildKey("users", "", nil),
	} {
		if _, _, err := w.Do(ctx, key, time.Minute, func() ([]byte, error) { return []byte(`v`), nil }); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	if n := w.Invalidate(ctx, []string{"list"}); n != 2 {
		t.Fatalf("expected 2 invalidated keys, got %d", n)
	}
	if store.Len() != 1 {
		t.Fatalf("unrelated key should survive, store has %d entries", store.Len())
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend unavailable")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend unavailable")
}

func (failingStore) DeleteByPrefix(context.Context, string) (int, error) {
	return 0, errors.New("backend unavailable")
}
