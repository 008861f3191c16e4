package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	cases := []struct {
		name    string
		page    string
		perPage string
	}{
		{"empty", "", ""},
		{"whitespace", "  ", "  "},
		{"non-numeric", "abc", "xyz"},
		{"float", "1.5", "2.5"},
	}
	for _, tc := range cases {
		got := Normalize(tc.page, tc.perPage)
		if got.Page != 1 || got.PerPage != 20 {
			t.Fatalf("%s: got %+v, want page=1 perPage=20", tc.name, got)
		}
	}
}

func TestNormalizeClampsPerPage(t *testing.T) {
	if got := Normalize("1", "500"); got.PerPage != 100 {
		t.Fatalf("perPage=500 should clamp to 100, got %d", got.PerPage)
	}
	if got := Normalize("1", "101"); got.PerPage != 100 {
		t.Fatalf("perPage=101 should clamp to 100, got %d", got.PerPage)
	}
	if got := Normalize("1", "0"); got.PerPage != 1 {
		t.Fatalf("perPage=0 should clamp to 1, got %d", got.PerPage)
	}
	if got := Normalize("1", "-3"); got.PerPage != 1 {
		t.Fatalf("perPage=-3 should clamp to 1, got %d", got.PerPage)
	}
}

func TestNormalizeClampsPage(t *testing.T) {
	if got := Normalize("0", "20"); got.Page != 1 {
		t.Fatalf("page=0 should clamp to 1, got %d", got.Page)
	}
	if got := Normalize("-7", "20"); got.Page != 1 {
		t.Fatalf("page=-7 should clamp to 1, got %d", got.Page)
	}
	if got := Normalize("3", "25"); got.Page != 3 || got.PerPage != 25 {
		t.Fatalf("valid input should pass through, got %+v", got)
	}
}

func TestNormalizeWithDefault(t *testing.T) {
	if got := NormalizeWithDefault("", "", 50); got.PerPage != 50 {
		t.Fatalf("caller default should apply, got %d", got.PerPage)
	}
	if got := NormalizeWithDefault("", "", 500); got.PerPage != 100 {
		t.Fatalf("caller default above cap should clamp, got %d", got.PerPage)
	}
	if got := NormalizeWithDefault("", "30", 50); got.PerPage != 30 {
		t.Fatalf("explicit perPage should win over default, got %d", got.PerPage)
	}
}

func TestOffset(t *testing.T) {
	p := Pagination{Page: 3, PerPage: 25}
	if p.Offset() != 50 {
		t.Fatalf("offset for page 3 x 25 should be 50, got %d", p.Offset())
	}
	if (Pagination{Page: 1, PerPage: 20}).Offset() != 0 {
		t.Fatalf("first page offset should be 0")
	}
}
