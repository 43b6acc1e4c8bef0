package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/nrfta/datagrid-go/internal/config"
	"github.com/nrfta/datagrid-go/internal/server"
	"github.com/nrfta/datagrid-go/mongodb"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	store := mongodb.New(client.Database(cfg.Database), cfg.Collection)

	// The service starts even when provisioning fails. Requests that need
	// an index error on demand instead of blocking startup.
	indexCtx, cancelIndex := context.WithTimeout(cmd.Context(), 30*time.Second)
	if err := store.EnsureIndexes(indexCtx); err != nil {
		log.Warn("index provisioning failed", zap.Error(err))
	}
	cancelIndex()

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(store, log)
	if err != nil {
		return errors.Wrap(err, "build server")
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Warn("shutdown incomplete", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server")
	}

	log.Info("server stopped")
	return nil
}
