// Package server assembles the HTTP surface over the paging engine: the
// DataTables protocol endpoint, the GraphQL endpoint, health and metrics,
// and the embedded demo page.
package server

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/friendsofgo/errors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nrfta/datagrid-go"
)

// Engine is the paging engine the handlers drive. *mongodb.Store satisfies
// it; tests substitute a fake.
type Engine interface {
	// FindPage returns one page of rows plus the count of all rows the
	// query's predicate matched.
	FindPage(ctx context.Context, q datagrid.Query) (datagrid.Page, error)

	// CountAll returns the unfiltered size of the default collection, or of
	// the named override collection.
	CountAll(ctx context.Context, collection string) (int64, error)
}

// Server holds the handlers' dependencies. Construct one per process and
// share it; it carries no per-request state.
type Server struct {
	engine Engine
	log    *zap.Logger
	schema graphql.Schema
}

// New builds a Server around the given engine and logger.
func New(engine Engine, log *zap.Logger) (*Server, error) {
	schema, err := buildSchema(engine)
	if err != nil {
		return nil, errors.Wrap(err, "build graphql schema")
	}
	return &Server{engine: engine, log: log, schema: schema}, nil
}

// Router assembles the gin engine: recovery, request logging and metrics
// middleware, then the routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.log), Metrics())

	r.GET("/", s.home)
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/datatable", s.datatable)
	r.POST("/datatable", s.datatable)
	r.GET("/graphql", s.graphql)
	r.POST("/graphql", s.graphql)

	return r
}

// health answers liveness probes. It never checks dependencies; the store
// can be down while the process reports ok.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

//go:embed static/index.html
var indexHTML []byte

func (s *Server) home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// fail logs a data-access failure and answers with a generic server error.
// The wrapped cause stays in the logs, not on the wire.
func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("page fetch failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "data access failure"})
}
