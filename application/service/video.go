package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shiurhub/shiurhub/domain/video"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/log"
)

// Enrichment is the display context for a set of videos: Hebrew calendar
// metadata and tags keyed by video id.
type Enrichment struct {
	metadata map[string]video.Metadata
	tags     map[string][]video.Tag
}

// NewEnrichment creates an Enrichment.
func NewEnrichment(metadata map[string]video.Metadata, tags map[string][]video.Tag) Enrichment {
	return Enrichment{metadata: metadata, tags: tags}
}

// Metadata returns a video's metadata, if present.
func (e Enrichment) Metadata(videoID string) (video.Metadata, bool) {
	m, ok := e.metadata[videoID]
	return m, ok
}

// Tags returns a video's tags (nil when untagged).
func (e Enrichment) Tags(videoID string) []video.Tag {
	return e.tags[videoID]
}

// Detail is one video with everything the archive knows about it.
type Detail struct {
	video       video.Video
	metadata    video.Metadata
	hasMetadata bool
	tags        []video.Tag
	segments    []video.Segment
}

// Video returns the video record.
func (d Detail) Video() video.Video { return d.video }

// Metadata returns the video's metadata, if present.
func (d Detail) Metadata() (video.Metadata, bool) { return d.metadata, d.hasMetadata }

// Tags returns the video's tags.
func (d Detail) Tags() []video.Tag { return d.tags }

// Segments returns the transcript segments in transcript order.
func (d Detail) Segments() []video.Segment { return d.segments }

// Videos serves the catalog: listings, detail pages, year tags, and search
// result enrichment.
type Videos struct {
	store        video.Store
	logger       *log.Logger
	queryTimeout time.Duration
}

// VideosServiceOption configures the catalog service.
type VideosServiceOption func(*Videos)

// WithCatalogTimeout bounds each catalog storage query. Non-positive values
// are ignored.
func WithCatalogTimeout(d time.Duration) VideosServiceOption {
	return func(v *Videos) {
		if d > 0 {
			v.queryTimeout = d
		}
	}
}

// NewVideos creates the catalog service.
func NewVideos(store video.Store, logger *log.Logger, opts ...VideosServiceOption) *Videos {
	if logger == nil {
		logger = log.Default()
	}
	v := &Videos{store: store, logger: logger, queryTimeout: DefaultQueryTimeout}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// List returns a filtered, paged catalog listing.
func (s *Videos) List(ctx context.Context, opts video.ListOptions) (video.Listing, error) {
	ctx, cancel := boundQuery(ctx, s.queryTimeout)
	defer cancel()
	return s.store.List(ctx, opts)
}

// Detail returns a video with its metadata, tags, and transcript. The
// lookups after the video itself run concurrently.
func (s *Videos) Detail(ctx context.Context, id string) (Detail, error) {
	ctx, cancel := boundQuery(ctx, s.queryTimeout)
	defer cancel()

	v, err := s.store.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return Detail{}, ErrVideoNotFound
	}
	if err != nil {
		return Detail{}, fmt.Errorf("get video: %w", err)
	}

	detail := Detail{video: v}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metadata, err := s.store.MetadataByIDs(gctx, []string{id})
		if err != nil {
			return err
		}
		detail.metadata, detail.hasMetadata = metadata[id]
		return nil
	})
	g.Go(func() error {
		tags, err := s.store.TagsByVideoIDs(gctx, []string{id})
		if err != nil {
			return err
		}
		detail.tags = tags[id]
		return nil
	})
	g.Go(func() error {
		segments, err := s.store.SegmentsByVideoID(gctx, id)
		if err != nil {
			return err
		}
		detail.segments = segments
		return nil
	})
	if err := g.Wait(); err != nil {
		return Detail{}, fmt.Errorf("video detail %s: %w", id, err)
	}

	return detail, nil
}

// Enrich fetches metadata and tags for a set of videos concurrently.
func (s *Videos) Enrich(ctx context.Context, ids []string) (Enrichment, error) {
	if len(ids) == 0 {
		return NewEnrichment(map[string]video.Metadata{}, map[string][]video.Tag{}), nil
	}

	ctx, cancel := boundQuery(ctx, s.queryTimeout)
	defer cancel()

	var (
		metadata map[string]video.Metadata
		tags     map[string][]video.Tag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metadata, err = s.store.MetadataByIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.store.TagsByVideoIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return Enrichment{}, fmt.Errorf("enrich videos: %w", err)
	}

	return NewEnrichment(metadata, tags), nil
}

// YearTags returns the archive's year tags for the filter UI.
func (s *Videos) YearTags(ctx context.Context) ([]video.Tag, error) {
	ctx, cancel := boundQuery(ctx, s.queryTimeout)
	defer cancel()
	return s.store.YearTags(ctx)
}
