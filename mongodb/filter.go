package mongodb

import (
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filter is a match predicate plus a flag telling the sort layer whether the
// predicate is a pure full-text search. Relevance ordering is only available
// when FullText is set; $meta textScore is undefined otherwise.
type Filter struct {
	Doc      bson.D
	FullText bool
}

// Empty reports whether the filter matches every document.
func (f Filter) Empty() bool {
	return len(f.Doc) == 0
}

// BuildFilter derives the match predicate for a search string.
//
// An empty search yields the empty filter. Any other value becomes a $text
// search against the collection's text index. When the value also parses as
// a base-10 integer (no sign handling beyond the usual, no surrounding
// whitespace), the predicate widens to an $or that additionally matches the
// numeric fields id, age and salary exactly, and the result is no longer a
// pure text search.
func BuildFilter(search string) Filter {
	if search == "" {
		return Filter{}
	}

	text := bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: search}}}}

	n, err := strconv.Atoi(search)
	if err != nil {
		return Filter{Doc: text, FullText: true}
	}

	return Filter{
		Doc: bson.D{{Key: "$or", Value: bson.A{
			text,
			bson.D{{Key: "id", Value: n}},
			bson.D{{Key: "age", Value: n}},
			bson.D{{Key: "salary", Value: n}},
		}}},
	}
}
