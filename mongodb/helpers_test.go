package mongodb_test

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/nrfta/datagrid-go"
)

// Person builds a complete record document in the collection's shape.
func Person(id int, name, position, office string, age int, startDate string, salary int) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "name", Value: name},
		{Key: "position", Value: position},
		{Key: "office", Value: office},
		{Key: "age", Value: age},
		{Key: "start_date", Value: startDate},
		{Key: "salary", Value: salary},
	}
}

// InsertDocs writes documents into the named collection.
func InsertDocs(ctx context.Context, collection string, docs ...any) error {
	if len(docs) == 0 {
		return nil
	}
	coll := container.Client.Database(testDatabase).Collection(collection)
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

// SeedPeople inserts count sequential records with varied, deterministic
// field values so sorting and paging assertions are stable.
func SeedPeople(ctx context.Context, count int) error {
	positions := []string{"Engineer", "Manager", "Analyst", "Designer", "Director"}
	offices := []string{"Tokyo", "London", "Berlin", "Austin", "Oslo"}

	docs := make([]any, 0, count)
	for i := 1; i <= count; i++ {
		docs = append(docs, Person(
			i,
			fmt.Sprintf("Person %d", i),
			positions[i%len(positions)],
			offices[i%len(offices)],
			20+i%30,
			fmt.Sprintf("20%02d-0%d-15", 10+i%15, 1+i%9),
			50000+(i%50)*1000, // strictly increasing while count < 50
		))
	}
	return InsertDocs(ctx, testCollection, docs...)
}

// CleanupCollections removes every document between specs while keeping the
// provisioned indexes in place.
func CleanupCollections(ctx context.Context) error {
	db := container.Client.Database(testDatabase)
	for _, name := range []string{testCollection, altCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("failed to clean collection %s: %w", name, err)
		}
	}
	return nil
}

// RowIDs extracts the id of each returned row in order.
func RowIDs(rows []datagrid.Document) []int {
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, cast.ToInt(row["id"]))
	}
	return ids
}
