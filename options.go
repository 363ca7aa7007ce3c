package shiurhub

import (
	"github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/internal/config"
	"github.com/shiurhub/shiurhub/internal/log"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	app      config.AppConfig
	dbOver   string
	embedder search.Embedder
	logger   *log.Logger
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		app: config.NewAppConfig(),
	}
}

func (c *clientConfig) dbURL() string {
	if c.dbOver != "" {
		return c.dbOver
	}
	return c.app.DBURL()
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig replaces the whole application configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) { c.app = cfg }
}

// WithDatabaseURL sets the database connection URL
// (sqlite:///path or postgres://...).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) { c.dbOver = url }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithEmbedder overrides the embedding client, bypassing the configured
// endpoint. Useful for tests and local models.
func WithEmbedder(e search.Embedder) Option {
	return func(c *clientConfig) { c.embedder = e }
}
