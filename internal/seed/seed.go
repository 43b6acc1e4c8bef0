// Package seed bulk-loads deterministic sample records into a collection.
package seed

import (
	"context"
	"fmt"

	"github.com/friendsofgo/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const (
	// DefaultTarget is the collection size the loader aims for when no
	// target is given.
	DefaultTarget = 1_000_000

	// DefaultBatch is the insert batch size.
	DefaultBatch = 50_000
)

var (
	positions = []string{"Developer", "Manager", "Analyst", "QA", "DevOps"}
	offices   = []string{"NY", "SF", "Berlin", "Tokyo", "Remote"}
)

// Record returns the sample document for id i. The same i always produces
// the same document, which is what makes the loader resumable: a rerun
// regenerates exactly the records it would have written the first time.
func Record(i int) bson.D {
	return bson.D{
		{Key: "id", Value: i},
		{Key: "name", Value: fmt.Sprintf("Person %d", i)},
		{Key: "position", Value: positions[i%len(positions)]},
		{Key: "office", Value: offices[i%len(offices)]},
		{Key: "age", Value: 20 + i%30},
		{Key: "start_date", Value: fmt.Sprintf("20%d-0%d-15", 10+i%15, 1+i%9)},
		{Key: "salary", Value: 50000 + (i%50)*1000},
	}
}

// Loader tops a collection up to a target document count.
type Loader struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// New builds a Loader over the given collection.
func New(coll *mongo.Collection, log *zap.Logger) *Loader {
	return &Loader{coll: coll, log: log}
}

// Run inserts records until the collection holds target documents, in
// unordered batches of batchSize. It is idempotent: a full collection is
// left untouched and a partial one resumes at the next unused id, guarded by
// the unique id index. Duplicate-key errors (a racing loader, or leftovers
// of an aborted run) are logged and skipped; any other error aborts.
func (l *Loader) Run(ctx context.Context, target, batchSize int) error {
	if target <= 0 {
		return errors.New("target must be positive")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatch
	}

	if _, err := l.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return errors.Wrap(err, "ensure id index")
	}

	existing, err := l.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return errors.Wrap(err, "estimate existing documents")
	}
	if existing >= int64(target) {
		l.log.Info("collection already populated",
			zap.Int64("existing", existing),
			zap.Int("target", target),
		)
		return nil
	}

	startID := int(existing) + 1
	l.log.Info("seeding collection",
		zap.Int("from_id", startID),
		zap.Int("target", target),
		zap.Int("batch_size", batchSize),
	)

	batch := make([]any, 0, batchSize)
	flush := func(upTo int) error {
		if len(batch) == 0 {
			return nil
		}
		_, err := l.coll.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
		switch {
		case err == nil:
		case mongo.IsDuplicateKeyError(err):
			// Unordered writes land every non-duplicate in the batch.
			l.log.Warn("skipped duplicate ids", zap.Int("up_to_id", upTo))
		default:
			return errors.Wrap(err, "insert batch")
		}
		l.log.Info("inserted batch",
			zap.Int("size", len(batch)),
			zap.Int("up_to_id", upTo),
		)
		batch = batch[:0]
		return nil
	}

	for i := startID; i <= target; i++ {
		batch = append(batch, Record(i))
		if len(batch) >= batchSize {
			if err := flush(i); err != nil {
				return err
			}
		}
	}
	return flush(target)
}
