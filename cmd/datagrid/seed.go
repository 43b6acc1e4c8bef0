package main

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/nrfta/datagrid-go/internal/config"
	"github.com/nrfta/datagrid-go/internal/seed"
)

var (
	seedCount int
	seedBatch int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the collection with deterministic sample records",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", seed.DefaultTarget, "target collection size")
	seedCmd.Flags().IntVar(&seedBatch, "batch", seed.DefaultBatch, "documents per insert batch")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return errors.Wrap(err, "connect to mongodb")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	loader := seed.New(coll, log)
	return loader.Run(cmd.Context(), seedCount, seedBatch)
}
