package datagrid

// Document is a raw backing-store row. Rows travel through the engine
// untyped so that projection overrides can reshape them; typed surfaces
// (the GraphQL Person) convert at the edge.
type Document map[string]any

// Page is one fetched slice of a collection.
type Page struct {
	// Rows holds the requested slice in resolved sort order. Never more
	// than the requested length, except under the LengthAll sentinel.
	Rows []Document

	// Filtered is the count of all rows matching the active predicate,
	// not just the ones on this page.
	Filtered int64
}
