package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Pagination is the normalized page window for list queries.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// Offset returns the SQL OFFSET matching Page/PerPage.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Normalize clamps raw query values into a valid window. It never fails:
// missing or non-numeric input falls back to the defaults.
func Normalize(pageRaw, perPageRaw string) Pagination {
	return NormalizeWithDefault(pageRaw, perPageRaw, DefaultPerPage)
}

// NormalizeWithDefault is Normalize with a caller-chosen default perPage
// (itself clamped to [1, MaxPerPage]).
func NormalizeWithDefault(pageRaw, perPageRaw string, defaultPerPage int) Pagination {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	if defaultPerPage > MaxPerPage {
		defaultPerPage = MaxPerPage
	}

	page := parseOr(pageRaw, DefaultPage)
	if page < 1 {
		page = 1
	}

	perPage := parseOr(perPageRaw, defaultPerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Pagination{Page: page, PerPage: perPage}
}

func parseOr(raw string, fallback int) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
