// Package shiurhub provides the backend for a video lecture archive:
// a catalog of recorded shiurim with Hebrew transcripts, and semantic
// search over transcript-chunk embeddings.
//
// Basic usage:
//
//	client, err := shiurhub.New(ctx,
//	    shiurhub.WithDatabaseURL("postgres://localhost/shiurhub"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Search.Search(ctx, "הלכות שבת", service.NewSearchOptions())
package shiurhub

import (
	"context"
	"fmt"

	"github.com/shiurhub/shiurhub/application/service"
	"github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/infrastructure/persistence"
	"github.com/shiurhub/shiurhub/infrastructure/provider"
	infrasearch "github.com/shiurhub/shiurhub/infrastructure/search"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/log"
)

// Client is the main entry point for the shiurhub library.
//
// Access resources via struct fields:
//
//	client.Search.Search(ctx, "query", service.NewSearchOptions())
//	client.Videos.List(ctx, video.NewListOptions())
type Client struct {
	Search *service.Search
	Videos *service.Videos

	db     database.Database
	logger *log.Logger
}

// New creates a Client: opens the database, applies migrations, and wires
// the vector store matching the database backend (pgvector on PostgreSQL,
// in-process cosine search on SQLite).
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.NewLogger(cfg.app)
	}

	db, err := database.NewDatabase(ctx, cfg.dbURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.ApplyPool(cfg.app.Pool()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pool: %w", err)
	}

	if err := persistence.AutoMigrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	candidateStore, err := newCandidateStore(ctx, db, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	embedder := cfg.embedder
	if embedder == nil && cfg.app.Embedding().Enabled() {
		embedder = provider.NewOpenAIEmbedder(provider.OpenAIConfig{
			APIKey:  cfg.app.Embedding().APIKey(),
			BaseURL: cfg.app.Embedding().BaseURL(),
			Model:   cfg.app.Embedding().Model(),
			Timeout: cfg.app.Embedding().Timeout(),
		})
	}
	if embedder == nil {
		logger.Warn("no embedding endpoint configured, search will return empty results")
	}

	videoStore := persistence.NewVideoStore(db)

	return &Client{
		Search: service.NewSearch(candidateStore, embedder, logger,
			service.WithDefaultLimit(cfg.app.SearchLimit()),
			service.WithQueryTimeout(cfg.app.QueryTimeout()),
		),
		Videos: service.NewVideos(videoStore, logger,
			service.WithCatalogTimeout(cfg.app.QueryTimeout()),
		),
		db:     db,
		logger: logger,
	}, nil
}

func newCandidateStore(ctx context.Context, db database.Database, cfg *clientConfig, logger *log.Logger) (search.CandidateStore, error) {
	if db.IsPostgres() {
		store := infrasearch.NewPgvectorCandidateStore(db, cfg.app.Embedding().Dimension(), logger)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate pgvector store: %w", err)
		}
		return store, nil
	}

	store := infrasearch.NewSQLiteCandidateStore(db, logger)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate sqlite vector store: %w", err)
	}
	return store, nil
}

// DB exposes the underlying database, mainly for serving infrastructure
// and tests.
func (c *Client) DB() database.Database {
	return c.db
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Close releases the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}
