package mongodb_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/nrfta/datagrid-go/internal/seed"
)

var _ = Describe("Seed Loader", func() {
	const seedCollection = "seed_people"

	newLoader := func() *seed.Loader {
		coll := container.Client.Database(testDatabase).Collection(seedCollection)
		return seed.New(coll, zap.NewNop())
	}

	count := func() int64 {
		coll := container.Client.Database(testDatabase).Collection(seedCollection)
		n, err := coll.CountDocuments(ctx, bson.D{})
		Expect(err).ToNot(HaveOccurred())
		return n
	}

	BeforeEach(func() {
		db := container.Client.Database(testDatabase)
		Expect(db.Collection(seedCollection).Drop(ctx)).To(Succeed())
	})

	It("should fill an empty collection up to the target", func() {
		Expect(newLoader().Run(ctx, 120, 50)).To(Succeed())

		Expect(count()).To(BeEquivalentTo(120))
	})

	It("should leave a full collection untouched", func() {
		loader := newLoader()
		Expect(loader.Run(ctx, 40, 25)).To(Succeed())

		Expect(loader.Run(ctx, 40, 25)).To(Succeed())
		Expect(count()).To(BeEquivalentTo(40))
	})

	It("should resume a partial load at the next unused id", func() {
		loader := newLoader()
		Expect(loader.Run(ctx, 30, 10)).To(Succeed())

		Expect(loader.Run(ctx, 75, 10)).To(Succeed())
		Expect(count()).To(BeEquivalentTo(75))

		// No id inserted twice, no id skipped.
		coll := container.Client.Database(testDatabase).Collection(seedCollection)
		var ids []int32
		Expect(coll.Distinct(ctx, "id", bson.D{}).Decode(&ids)).To(Succeed())
		Expect(ids).To(HaveLen(75))
	})

	It("should tolerate documents already holding upcoming ids", func() {
		// A lone record the resume arithmetic does not know about. The
		// loader sees one existing document, resumes at id 2, and the
		// duplicate insert of id 5 is skipped rather than aborting.
		Expect(InsertDocs(ctx, seedCollection, seed.Record(5))).To(Succeed())

		Expect(newLoader().Run(ctx, 20, 8)).To(Succeed())

		Expect(count()).To(BeEquivalentTo(19))
	})

	It("should reject a non-positive target", func() {
		Expect(newLoader().Run(ctx, 0, 10)).ToNot(Succeed())
	})
})
