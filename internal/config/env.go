package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Variables are read without a prefix (HOST, PORT, ...); nested structs use
// an underscore delimiter (e.g. EMBEDDING_API_KEY).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT"`

	// DataDir is the data directory path.
	// Env: DATA_DIR (default: ~/.shiurhub)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///{data_dir}/shiurhub.db)
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT"`

	// SearchLimit is the default search result limit.
	// Env: SEARCH_LIMIT (default: 50)
	SearchLimit int `envconfig:"SEARCH_LIMIT"`

	// SearchMinSimilarity is the default minimum similarity threshold.
	// Env: SEARCH_MIN_SIMILARITY (default: 0.1)
	SearchMinSimilarity float64 `envconfig:"SEARCH_MIN_SIMILARITY"`

	// QueryTimeoutSeconds bounds each storage query.
	// Env: QUERY_TIMEOUT_SECONDS (default: 5)
	QueryTimeoutSeconds float64 `envconfig:"QUERY_TIMEOUT_SECONDS"`

	// CORSOrigins is a comma-separated list of allowed browser origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// Embedding configures the text-embedding endpoint.
	Embedding EmbeddingEnv `envconfig:"EMBEDDING"`

	// DB configures the database connection pool.
	DB PoolEnv `envconfig:"DB"`
}

// EmbeddingEnv holds environment configuration for the embedding endpoint.
type EmbeddingEnv struct {
	// BaseURL is the endpoint base URL.
	// Env: EMBEDDING_BASE_URL ("" uses the provider default)
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the embedding model identifier.
	// Env: EMBEDDING_MODEL (default: text-embedding-3-small)
	Model string `envconfig:"MODEL"`

	// APIKey is the bearer token for the endpoint.
	// Env: EMBEDDING_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// TimeoutSeconds is the per-request timeout in seconds.
	// Env: EMBEDDING_TIMEOUT_SECONDS (default: 5)
	TimeoutSeconds float64 `envconfig:"TIMEOUT_SECONDS"`

	// Dimension is the vector dimension of the model.
	// Env: EMBEDDING_DIMENSION (default: 1536)
	Dimension int `envconfig:"DIMENSION"`
}

// PoolEnv holds environment configuration for the connection pool.
type PoolEnv struct {
	// MaxOpenConns caps concurrent connection checkout.
	// Env: DB_MAX_OPEN_CONNS (default: 20)
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS"`

	// MaxIdleConns is the idle connection count.
	// Env: DB_MAX_IDLE_CONNS (default: 5)
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS"`

	// ConnMaxLifetimeSeconds is the maximum connection lifetime in seconds.
	// Env: DB_CONN_MAX_LIFETIME_SECONDS (default: 1800)
	ConnMaxLifetimeSeconds float64 `envconfig:"CONN_MAX_LIFETIME_SECONDS"`
}

// LoadFromEnv loads configuration from environment variables (no prefix).
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig, applying defaults for
// everything the environment left unset.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()
	var opts []AppConfigOption

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(strings.ToUpper(e.LogLevel)))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.SearchLimit > 0 {
		opts = append(opts, WithSearchLimit(e.SearchLimit))
	}
	if e.SearchMinSimilarity > 0 {
		opts = append(opts, WithMinSimilarity(e.SearchMinSimilarity))
	}
	if e.QueryTimeoutSeconds > 0 {
		opts = append(opts, WithQueryTimeout(secondsToDuration(e.QueryTimeoutSeconds)))
	}
	if e.CORSOrigins != "" {
		opts = append(opts, WithCORSOrigins(splitAndTrim(e.CORSOrigins)...))
	}

	opts = append(opts, WithEmbedding(e.Embedding.toConfig()))
	opts = append(opts, WithPool(e.DB.toConfig()))

	return cfg.Apply(opts...)
}

func (e EmbeddingEnv) toConfig() EmbeddingConfig {
	cfg := NewEmbeddingConfig()
	cfg.baseURL = e.BaseURL
	cfg.apiKey = e.APIKey
	if e.Model != "" {
		cfg.model = e.Model
	}
	if e.TimeoutSeconds > 0 {
		cfg.timeout = secondsToDuration(e.TimeoutSeconds)
	}
	if e.Dimension > 0 {
		cfg.dimension = e.Dimension
	}
	return cfg
}

func (p PoolEnv) toConfig() PoolConfig {
	cfg := NewPoolConfig()
	if p.MaxOpenConns > 0 {
		cfg.maxOpenConns = p.MaxOpenConns
	}
	if p.MaxIdleConns > 0 {
		cfg.maxIdleConns = p.MaxIdleConns
	}
	if p.ConnMaxLifetimeSeconds > 0 {
		cfg.connMaxLifetime = secondsToDuration(p.ConnMaxLifetimeSeconds)
	}
	return cfg
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
