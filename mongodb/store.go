// Package mongodb translates canonical datagrid queries into MongoDB
// aggregation pipelines and executes them.
//
// The package keeps query construction (pure functions over bson documents)
// separate from execution (Store methods), so the translation layer is
// testable without a running server:
//   - BuildFilter turns a free-text search into a predicate
//   - ResolveSort turns a column/direction pair into a sort specification
//   - Pipeline assembles the single-round-trip $facet pipeline
//
// A page fetch is one aggregation: $match, an optional relevance-score
// $addFields, $sort, $project, then a $facet fan-out producing the page
// slice and the filtered count together.
//
// Example usage:
//
//	store := mongodb.New(client.Database("datagrid"), "people")
//	page, err := store.FindPage(ctx, datagrid.Query{
//	    Search: "Berlin",
//	    Start:  0,
//	    Length: 25,
//	})
package mongodb

import (
	"context"

	"github.com/friendsofgo/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Store executes datagrid queries against a MongoDB database. It holds no
// mutable state beyond the injected database handle, which is safe for
// concurrent use; one Store serves all requests.
type Store struct {
	db   *mongo.Database
	coll string
}

// New creates a Store over the given database handle and default collection.
// The handle is constructed once at process start and injected; the package
// keeps no global client.
func New(db *mongo.Database, collection string) *Store {
	return &Store{db: db, coll: collection}
}

// DefaultCollection returns the collection name the Store was built with.
func (s *Store) DefaultCollection() string {
	return s.coll
}

// collection resolves an optional override name to a collection handle.
func (s *Store) collection(override string) *mongo.Collection {
	if override != "" {
		return s.db.Collection(override)
	}
	return s.db.Collection(s.coll)
}

// CountAll returns the estimated number of documents in the collection (or
// the named override collection), ignoring any filter. The estimate comes
// from collection metadata, so it can lag behind concurrent writes; that
// skew is an accepted tradeoff for not scanning on every request.
func (s *Store) CountAll(ctx context.Context, collection string) (int64, error) {
	n, err := s.collection(collection).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "estimated count")
	}
	return n, nil
}

// CountFiltered returns the exact number of documents matching a search,
// using the same predicate the page fetch would use. An empty search falls
// back to the fast estimated count.
func (s *Store) CountFiltered(ctx context.Context, search string) (int64, error) {
	f := BuildFilter(search)
	if f.Empty() {
		return s.CountAll(ctx, "")
	}

	n, err := s.collection("").CountDocuments(ctx, f.Doc)
	if err != nil {
		return 0, errors.Wrap(err, "filtered count")
	}
	return n, nil
}
