// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultLogLevel           = "INFO"
	DefaultSearchLimit        = 50
	DefaultMinSimilarity      = 0.1
	DefaultEmbeddingModel     = "text-embedding-3-small"
	DefaultEmbeddingTimeout   = 5 * time.Second
	DefaultEmbeddingDimension = 1536
	DefaultQueryTimeout       = 5 * time.Second
	DefaultMaxOpenConns       = 20
	DefaultMaxIdleConns       = 5
	DefaultConnMaxLifetime    = 30 * time.Minute
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// EmbeddingConfig configures the remote text-embedding endpoint.
type EmbeddingConfig struct {
	baseURL   string
	model     string
	apiKey    string
	timeout   time.Duration
	dimension int
}

// NewEmbeddingConfig creates an EmbeddingConfig with defaults.
func NewEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		model:     DefaultEmbeddingModel,
		timeout:   DefaultEmbeddingTimeout,
		dimension: DefaultEmbeddingDimension,
	}
}

// BaseURL returns the endpoint base URL ("" means the provider default).
func (e EmbeddingConfig) BaseURL() string { return e.baseURL }

// Model returns the embedding model identifier.
func (e EmbeddingConfig) Model() string { return e.model }

// APIKey returns the bearer token for the endpoint.
func (e EmbeddingConfig) APIKey() string { return e.apiKey }

// Timeout returns the per-request timeout.
func (e EmbeddingConfig) Timeout() time.Duration { return e.timeout }

// Dimension returns the expected vector dimension.
func (e EmbeddingConfig) Dimension() int { return e.dimension }

// Enabled reports whether the endpoint is configured.
// Search degrades to empty results when no endpoint is available.
func (e EmbeddingConfig) Enabled() bool { return e.apiKey != "" }

// PoolConfig configures the database connection pool.
type PoolConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

// NewPoolConfig creates a PoolConfig with defaults.
func NewPoolConfig() PoolConfig {
	return PoolConfig{
		maxOpenConns:    DefaultMaxOpenConns,
		maxIdleConns:    DefaultMaxIdleConns,
		connMaxLifetime: DefaultConnMaxLifetime,
	}
}

// MaxOpenConns returns the maximum number of open connections.
func (p PoolConfig) MaxOpenConns() int { return p.maxOpenConns }

// MaxIdleConns returns the maximum number of idle connections.
func (p PoolConfig) MaxIdleConns() int { return p.maxIdleConns }

// ConnMaxLifetime returns the maximum connection lifetime.
func (p PoolConfig) ConnMaxLifetime() time.Duration { return p.connMaxLifetime }

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	host          string
	port          int
	dataDir       string
	dbURL         string
	logLevel      string
	logFormat     LogFormat
	searchLimit   int
	minSimilarity float64
	queryTimeout  time.Duration
	corsOrigins   []string
	embedding     EmbeddingConfig
	pool          PoolConfig
}

// NewAppConfig creates an AppConfig with default values.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:          DefaultHost,
		port:          DefaultPort,
		logLevel:      DefaultLogLevel,
		logFormat:     LogFormatPretty,
		searchLimit:   DefaultSearchLimit,
		minSimilarity: DefaultMinSimilarity,
		queryTimeout:  DefaultQueryTimeout,
		embedding:     NewEmbeddingConfig(),
		pool:          NewPoolConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory, defaulting to ~/.shiurhub.
func (c AppConfig) DataDir() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shiurhub"
	}
	return filepath.Join(home, ".shiurhub")
}

// DBURL returns the database connection URL, defaulting to a SQLite file
// inside the data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.DataDir(), "shiurhub.db")
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// MinSimilarity returns the default minimum similarity threshold.
// Parsed and carried through the search path but unused by the active
// ranking algorithm (reserved).
func (c AppConfig) MinSimilarity() float64 { return c.minSimilarity }

// QueryTimeout returns the per-query database timeout.
func (c AppConfig) QueryTimeout() time.Duration { return c.queryTimeout }

// CORSOrigins returns the allowed browser origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// Embedding returns the embedding endpoint configuration.
func (c AppConfig) Embedding() EmbeddingConfig { return c.embedding }

// Pool returns the database pool configuration.
func (c AppConfig) Pool() PoolConfig { return c.pool }

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir(), 0o755)
}

// AppConfigOption mutates an AppConfig during construction.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.dataDir = dir }
}

// WithDBURL sets the database connection URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSearchLimit sets the default search result limit.
func WithSearchLimit(limit int) AppConfigOption {
	return func(c *AppConfig) {
		if limit > 0 {
			c.searchLimit = limit
		}
	}
}

// WithMinSimilarity sets the default minimum similarity threshold.
func WithMinSimilarity(min float64) AppConfigOption {
	return func(c *AppConfig) {
		if min >= 0 {
			c.minSimilarity = min
		}
	}
}

// WithQueryTimeout sets the per-query database timeout.
func WithQueryTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.queryTimeout = d
		}
	}
}

// WithCORSOrigins sets the allowed browser origins.
func WithCORSOrigins(origins ...string) AppConfigOption {
	return func(c *AppConfig) { c.corsOrigins = origins }
}

// WithEmbedding sets the embedding endpoint configuration.
func WithEmbedding(e EmbeddingConfig) AppConfigOption {
	return func(c *AppConfig) { c.embedding = e }
}

// WithPool sets the database pool configuration.
func WithPool(p PoolConfig) AppConfigOption {
	return func(c *AppConfig) { c.pool = p }
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
