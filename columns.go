package datagrid

// DefaultColumn is the sort column used when none is requested or the
// requested one is not recognized. It is also the stable tiebreak key.
const DefaultColumn = "id"

// columns is the fixed allow-list of field names permitted for sorting and
// searching. It is the only injection defense on the validated surfaces:
// a client-supplied column label is used only if it is already a member.
var columns = []string{"id", "name", "position", "office", "age", "start_date", "salary"}

// Columns returns the allow-listed column names in their canonical order.
// The DataTables protocol also uses this order for positional column lookup.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// ResolveColumn validates a requested sort column against the allow-list.
// It returns the column unchanged with ok=true when it is a member, and
// (DefaultColumn, false) for anything else, including the empty string.
// Unrecognized names are a silent fallback, never an error.
func ResolveColumn(name string) (string, bool) {
	for _, c := range columns {
		if c == name {
			return c, true
		}
	}
	return DefaultColumn, false
}

// ColumnAt returns the allow-listed column at position i, for clients that
// identify columns by index rather than by name. Out-of-range indexes return
// (DefaultColumn, false).
func ColumnAt(i int) (string, bool) {
	if i < 0 || i >= len(columns) {
		return DefaultColumn, false
	}
	return columns[i], true
}
