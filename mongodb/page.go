package mongodb

import (
	"context"

	"github.com/friendsofgo/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nrfta/datagrid-go"
)

// countKey is the field the facet's count branch writes its total into.
const countKey = "filtered"

// resolveMatch returns the $match operand for a query, or nil when every
// document matches (no $match stage is emitted then), plus whether the
// predicate is a pure full-text search. A raw query override replaces the
// search-derived predicate entirely; relevance sorting stays available for
// raw queries only when $text appears as a top-level operator.
func resolveMatch(q datagrid.Query) (any, bool) {
	if q.Raw != nil && q.Raw.Query != nil {
		if len(q.Raw.Query) == 0 {
			return nil, false
		}
		_, fullText := q.Raw.Query["$text"]
		return bson.M(q.Raw.Query), fullText
	}

	f := BuildFilter(q.Search)
	if f.Empty() {
		return nil, false
	}
	return f.Doc, f.FullText
}

// resolveProjection returns the $project operand. The default drops the
// storage identifier and keeps every named field; a raw projection override
// is passed through as given.
func resolveProjection(q datagrid.Query) any {
	if q.Raw != nil && q.Raw.Projection != nil {
		return bson.M(q.Raw.Projection)
	}
	return bson.D{{Key: "_id", Value: 0}}
}

// Pipeline assembles the aggregation for a page fetch. Stage order is fixed:
// $match (when the predicate restricts anything), $addFields for the
// relevance score (only under relevance sort), $sort, $project, then a $facet
// producing the page slice and the filtered count in one round trip.
//
// Inside the facet, $skip is emitted only for a positive start and $limit
// only for a positive length. Length zero drops the data branch altogether
// since $limit rejects non-positive values; the count branch still runs. The
// all-rows sentinel omits $limit so the slice runs to the end.
func Pipeline(q datagrid.Query) mongo.Pipeline {
	match, fullText := resolveMatch(q)
	sort := ResolveSort(q.SortColumn, q.Dir, fullText)

	var p mongo.Pipeline
	if match != nil {
		p = append(p, bson.D{{Key: "$match", Value: match}})
	}
	if sort.ByRelevance {
		p = append(p, bson.D{{Key: "$addFields", Value: bson.D{
			{Key: scoreField, Value: bson.D{{Key: "$meta", Value: "textScore"}}},
		}}})
	}
	p = append(p,
		bson.D{{Key: "$sort", Value: sort.Doc()}},
		bson.D{{Key: "$project", Value: resolveProjection(q)}},
		bson.D{{Key: "$facet", Value: facetStage(q.Start, q.Length)}},
	)
	return p
}

// facetStage builds the $facet operand for the given slice bounds.
func facetStage(start, length int) bson.D {
	meta := bson.A{bson.D{{Key: "$count", Value: countKey}}}
	if length == 0 {
		return bson.D{{Key: "meta", Value: meta}}
	}

	data := bson.A{}
	if start > 0 {
		data = append(data, bson.D{{Key: "$skip", Value: start}})
	}
	if length > 0 {
		data = append(data, bson.D{{Key: "$limit", Value: length}})
	}
	return bson.D{
		{Key: "data", Value: data},
		{Key: "meta", Value: meta},
	}
}

// facetResult mirrors the single document a $facet aggregation produces.
type facetResult struct {
	Data []datagrid.Document `bson:"data"`
	Meta []struct {
		Filtered int64 `bson:"filtered"`
	} `bson:"meta"`
}

// FindPage executes a page fetch and returns the slice of matching rows plus
// the count of all documents the predicate matched. When the predicate
// matches everything the count comes back from the facet as well; if the
// facet's count branch produced nothing (empty collection), the filtered
// count falls back to the fast estimated total for an unrestricted query and
// to zero otherwise.
//
// The aggregation runs with allowDiskUse so large sorts without a covering
// index spill instead of failing.
func (s *Store) FindPage(ctx context.Context, q datagrid.Query) (datagrid.Page, error) {
	var collName string
	if q.Raw != nil {
		collName = q.Raw.Collection
	}
	coll := s.collection(collName)

	match, _ := resolveMatch(q)

	cursor, err := coll.Aggregate(ctx, Pipeline(q), options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return datagrid.Page{}, errors.Wrap(err, "aggregate page")
	}

	var results []facetResult
	if err := cursor.All(ctx, &results); err != nil {
		return datagrid.Page{}, errors.Wrap(err, "decode page")
	}
	if len(results) == 0 {
		return datagrid.Page{Rows: []datagrid.Document{}}, nil
	}

	page := datagrid.Page{Rows: results[0].Data}
	if page.Rows == nil {
		page.Rows = []datagrid.Document{}
	}

	switch meta := results[0].Meta; {
	case len(meta) > 0:
		page.Filtered = meta[0].Filtered
	case match == nil:
		n, err := s.CountAll(ctx, collName)
		if err != nil {
			return datagrid.Page{}, err
		}
		page.Filtered = n
	}
	return page, nil
}
