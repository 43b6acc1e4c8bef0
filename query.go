package datagrid

import "strconv"

const (
	// DefaultLength is the page size used when the requested length is
	// malformed or missing.
	DefaultLength = 10

	// LengthAll is the sentinel meaning "no page limit": return every
	// matching row after Start. It matches the DataTables wire value -1.
	LengthAll = -1
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection resolves a requested direction string. Only the literal
// "desc" sorts descending; every other value, recognized or not, resolves to
// ascending. This is a permissive default, not an error.
func ParseDirection(s string) Direction {
	if s == "desc" {
		return Desc
	}
	return Asc
}

// Query is the canonical page request produced by the parameter adapters and
// consumed by the page fetcher. Adapters are responsible for normalizing
// untrusted input into this shape: SortColumn allow-listed (ResolveColumn),
// Start non-negative (NormalizeStart), Length non-negative or LengthAll
// (NormalizeLength).
type Query struct {
	// Search is the free-text search value. Empty means match everything.
	Search string

	// SortColumn is an allow-listed field name; the zero value falls back
	// to DefaultColumn at fetch time.
	SortColumn string

	// Dir orders the resolved sort column.
	Dir Direction

	// Start is the number of matching rows to skip.
	Start int

	// Length is the page size, or LengthAll for every remaining row.
	Length int

	// Raw carries trusted server-side overrides; nil on validated surfaces.
	Raw *RawOptions
}

// RawOptions is the advanced escape hatch: a raw backing-store predicate,
// projection, and collection override. It is reachable only through the REST
// POST body, never through GraphQL or query-string values, and it bypasses
// the filter builder entirely; callers own the safety of what they pass.
// It is a separate type so the unsafe entry point never blends into the
// validated one.
type RawOptions struct {
	// Collection overrides the configured collection name.
	Collection string

	// Query replaces the search predicate with a raw filter document.
	Query map[string]any

	// Projection replaces the default projection (which only drops the
	// internal storage identifier).
	Projection map[string]any
}

// NormalizeStart clamps a requested start offset to the valid range.
// Negative values resolve to 0.
func NormalizeStart(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// NormalizeLength resolves a requested page length. Non-negative values pass
// through, -1 is the all-rows sentinel, and any other negative value is
// malformed and resolves to DefaultLength.
func NormalizeLength(n int) int {
	if n >= 0 || n == LengthAll {
		return n
	}
	return DefaultLength
}

// ParseInt resolves a decimal string to an int, falling back to def when the
// value is empty or malformed. Paging parameters never fail a request.
func ParseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
