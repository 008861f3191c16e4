package settings

import (
	"errors"
	"testing"
	"time"
)

func TestCacheLoadsOncePerTTL(t *testing.T) {
	loads := 0
	c := &Cache{
		TTL: time.Hour,
		Load: func() (map[string]string, error) {
			loads++
			return map[string]string{"site_name": "Backoffice"}, nil
		},
	}

	for i := 0; i < 5; i++ {
		v, ok, err := c.Get("site_name")
		if err != nil || !ok || v != "Backoffice" {
			t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
		}
	}
	if loads != 1 {
		t.Fatalf("expected a single load within TTL, got %d", loads)
	}
}

func TestCacheMissingKey(t *testing.T) {
	c := &Cache{TTL: time.Hour, Load: func() (map[string]string, error) {
		return map[string]string{}, nil
	}}
	if _, ok, err := c.Get("absent"); ok || err != nil {
		t.Fatalf("missing key should be ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestCacheClearForcesReload(t *testing.T) {
	loads := 0
	c := &Cache{TTL: time.Hour, Load: func() (map[string]string, error) {
		loads++
		return map[string]string{"v": "1"}, nil
	}}

	if _, _, err := c.Get("v"); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.Clear()
	if _, _, err := c.Get("v"); err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if loads != 2 {
		t.Fatalf("clear should force a reload, got %d loads", loads)
	}
}

func TestCacheServesStaleOnLoadError(t *testing.T) {
	loads := 0
	c := &Cache{TTL: -time.Second, Load: func() (map[string]string, error) {
		loads++
		if loads > 1 {
			return nil, errors.New("db down")
		}
		return map[string]string{"v": "1"}, nil
	}}

	// TTL <= 0 falls back to the default TTL, so force staleness via Clear
	// semantics: first load succeeds, then expire manually.
	if v, ok, err := c.Get("v"); err != nil || !ok || v != "1" {
		t.Fatalf("first get: v=%q ok=%v err=%v", v, ok, err)
	}
	c.mu.Lock()
	c.expires = time.Time{}
	c.mu.Unlock()

	if v, ok, err := c.Get("v"); err != nil || !ok || v != "1" {
		t.Fatalf("stale snapshot should be served on load error: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestCacheErrorWithoutSnapshot(t *testing.T) {
	c := &Cache{TTL: time.Hour, Load: func() (map[string]string, error) {
		return nil, errors.New("db down")
	}}
	if _, _, err := c.Get("v"); err == nil {
		t.Fatalf("load error with no snapshot should surface")
	}
}
