package cache

import (
	"strings"
	"testing"
)

func TestBuildKeyOrderIndependent(t *testing.T) {
	a := BuildKey("usage", "list", map[string]any{"a": 1, "b": 2})
	b := BuildKey("usage", "list", map[string]any{"b": 2, "a": 1})
	if a != b {
		t.Fatalf("keys should match regardless of param order: %q vs %q", a, b)
	}
}

func TestBuildKeyValueSensitive(t *testing.T) {
	a := BuildKey("usage", "list", map[string]any{"page": 1, "perPage": 20})
	b := BuildKey("usage", "list", map[string]any{"page": 2, "perPage": 20})
	if a == b {
		t.Fatalf("changing a param value must change the key: %q", a)
	}
}

func TestBuildKeyDropsNilParams(t *testing.T) {
	a := BuildKey("usage", "list", map[string]any{"a": 1, "skip": nil})
	b := BuildKey("usage", "list", map[string]any{"a": 1})
	if a != b {
		t.Fatalf("nil params should be dropped: %q vs %q", a, b)
	}
}

func TestBuildKeyFormat(t *testing.T) {
	got := BuildKey("usage", "list", map[string]any{"b": 2, "a": 1})
	want := `admin:list|usage|{"a":1,"b":2}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	noScope := BuildKey("users", "", nil)
	if noScope != `admin:users|{}` {
		t.Fatalf("scope-less key malformed: %q", noScope)
	}
}

func TestTagPrefixCoversBuiltKeys(t *testing.T) {
	key := BuildKey("usage", "list", map[string]any{"page": 1})
	if !strings.HasPrefix(key, TagPrefix("list")) {
		t.Fatalf("tag prefix %q should cover key %q", TagPrefix("list"), key)
	}
}
