package mongodb

import (
	"context"

	"github.com/friendsofgo/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nrfta/datagrid-go"
)

// TextIndexName names the combined text index the $text predicate requires.
// A collection admits one text index, so the fixed name keeps provisioning
// idempotent.
const TextIndexName = "search_text"

// textFields are the string columns covered by the text index.
var textFields = []string{"name", "position", "office", "start_date"}

// EnsureIndexes provisions the indexes page queries depend on: a unique index
// on id (stable sort key and the loader's duplicate guard), single-field
// indexes for the remaining sortable columns, and the combined text index.
// Creation is idempotent and safe to race across instances. A failure
// degrades the service rather than stopping it; callers log the error and
// carry on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	iv := s.collection("").Indexes()

	models := []mongo.IndexModel{{
		Keys:    bson.D{{Key: datagrid.DefaultColumn, Value: 1}},
		Options: options.Index().SetUnique(true),
	}}
	for _, f := range datagrid.Columns() {
		if f == datagrid.DefaultColumn {
			continue
		}
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	if _, err := iv.CreateMany(ctx, models); err != nil {
		return errors.Wrap(err, "create field indexes")
	}

	keys := bson.D{}
	for _, f := range textFields {
		keys = append(keys, bson.E{Key: f, Value: "text"})
	}
	text := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(TextIndexName),
	}
	if _, err := iv.CreateOne(ctx, text); err != nil {
		return errors.Wrap(err, "create text index")
	}
	return nil
}
