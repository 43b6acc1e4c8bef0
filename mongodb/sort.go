package mongodb

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nrfta/datagrid-go"
)

// scoreField is the derived field relevance sorting merges into each row.
const scoreField = "score"

// SortSpec is a resolved ordering: a field and direction, or the relevance
// variant which sorts on the computed text score.
type SortSpec struct {
	Field       string
	Desc        bool
	ByRelevance bool
}

// ResolveSort maps a requested column and direction to a SortSpec. The column
// goes through the allow-list here regardless of what the calling surface
// already validated; an unknown name resolves to the default column. When the
// active predicate is a pure full-text search and no non-default column was
// requested, the result sorts by descending relevance instead.
func ResolveSort(column string, dir datagrid.Direction, fullText bool) SortSpec {
	field, _ := datagrid.ResolveColumn(column)
	if fullText && field == datagrid.DefaultColumn {
		return SortSpec{Field: scoreField, Desc: true, ByRelevance: true}
	}
	return SortSpec{Field: field, Desc: dir == datagrid.Desc}
}

// Doc returns the $sort stage operand.
func (s SortSpec) Doc() bson.D {
	order := 1
	if s.Desc {
		order = -1
	}
	return bson.D{{Key: s.Field, Value: order}}
}
