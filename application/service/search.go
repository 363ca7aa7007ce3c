// Package service orchestrates the search and catalog use cases.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/internal/log"
)

// Search defaults.
const (
	DefaultResultLimit   = 50
	DefaultMinSimilarity = 0.1

	// DefaultQueryTimeout bounds each storage query. Candidate retrieval
	// scans the whole embedding index on SQLite, so the bound is
	// conservative rather than generous.
	DefaultQueryTimeout = 5 * time.Second

	// minNearestLimit floors the k-NN over-fetch. Neighbors can collapse
	// onto few videos or fail the segment join, so the raw scan always
	// pulls well past the requested result count.
	minNearestLimit = 200
	nearestFactor   = 20
)

// SearchOptions carries per-query knobs.
type SearchOptions struct {
	limit         int
	minSimilarity float64
}

// NewSearchOptions creates SearchOptions with defaults.
func NewSearchOptions() SearchOptions {
	return SearchOptions{
		limit:         DefaultResultLimit,
		minSimilarity: DefaultMinSimilarity,
	}
}

// WithLimit sets the maximum number of ranked videos. Values below 1 are
// ignored.
func (o SearchOptions) WithLimit(limit int) SearchOptions {
	if limit >= 1 {
		o.limit = limit
	}
	return o
}

// WithMinSimilarity sets the minimum similarity threshold. Parsed and
// carried through the query but unused by the active ranking algorithm
// (reserved). Negative values are ignored.
func (o SearchOptions) WithMinSimilarity(min float64) SearchOptions {
	if min >= 0 {
		o.minSimilarity = min
	}
	return o
}

// Limit returns the maximum number of ranked videos.
func (o SearchOptions) Limit() int { return o.limit }

// MinSimilarity returns the reserved minimum similarity threshold.
func (o SearchOptions) MinSimilarity() float64 { return o.minSimilarity }

// NearestLimit returns the k-NN over-fetch bound for this query.
func (o SearchOptions) NearestLimit() int {
	n := o.limit * nearestFactor
	if n < minNearestLimit {
		n = minNearestLimit
	}
	return n
}

// Search ranks videos against a free-text query: embed the query, retrieve
// the nearest transcript chunks, normalize distances into similarities, and
// aggregate per video.
type Search struct {
	store        search.CandidateStore
	embedder     search.Embedder
	logger       *log.Logger
	defaultLimit int
	queryTimeout time.Duration
}

// SearchServiceOption configures the search orchestrator.
type SearchServiceOption func(*Search)

// WithDefaultLimit sets the result limit seeded into Options. Values below
// 1 are ignored.
func WithDefaultLimit(limit int) SearchServiceOption {
	return func(s *Search) {
		if limit >= 1 {
			s.defaultLimit = limit
		}
	}
}

// WithQueryTimeout bounds each candidate retrieval query. Non-positive
// values are ignored.
func WithQueryTimeout(d time.Duration) SearchServiceOption {
	return func(s *Search) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// NewSearch creates the search orchestrator. embedder may be nil when no
// embedding endpoint is configured; every query then degrades to empty
// results.
func NewSearch(store search.CandidateStore, embedder search.Embedder, logger *log.Logger, opts ...SearchServiceOption) *Search {
	if logger == nil {
		logger = log.Default()
	}
	s := &Search{
		store:        store,
		embedder:     embedder,
		logger:       logger,
		defaultLimit: DefaultResultLimit,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns per-query options seeded with the service's configured
// default limit. Handlers start from this and layer request parameters on
// top.
func (s *Search) Options() SearchOptions {
	return NewSearchOptions().WithLimit(s.defaultLimit)
}

// Search runs one query. An empty or whitespace-only query short-circuits
// to an empty response without touching the embedder. Embedding failure is
// soft: the query degrades to empty results. Storage failure propagates.
func (s *Search) Search(ctx context.Context, query string, opts SearchOptions) (search.Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return search.NewResponse([]search.Result{}, nil), nil
	}

	if s.embedder == nil {
		s.logger.WarnContext(ctx, "embedding provider not configured, returning empty results")
		return search.NewResponse([]search.Result{}, nil), nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "query embedding failed, returning empty results", "error", err)
		return search.NewResponse([]search.Result{}, nil), nil
	}

	storeCtx, cancel := boundQuery(ctx, s.queryTimeout)
	defer cancel()
	candidates, err := s.store.Nearest(storeCtx, vector, opts.NearestLimit(), opts.Limit())
	if err != nil {
		return search.Response{}, fmt.Errorf("retrieve candidates: %w", err)
	}

	distances := make([]float64, len(candidates))
	for i, c := range candidates {
		distances[i] = c.Distance()
	}
	similarities := search.NormalizeDistances(distances)

	results := search.Aggregate(candidates, similarities, opts.Limit())

	s.logger.DebugContext(ctx, "search completed",
		"candidates", len(candidates),
		"results", len(results),
	)
	return search.NewResponse(results, vector), nil
}

// boundQuery derives a context capped by the storage query timeout. A
// non-positive timeout leaves the parent context untouched.
func boundQuery(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
