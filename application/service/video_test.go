package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiurhub/shiurhub/domain/video"
	"github.com/shiurhub/shiurhub/internal/database"
)

type fakeVideoStore struct {
	videos   map[string]video.Video
	metadata map[string]video.Metadata
	tags     map[string][]video.Tag
	segments map[string][]video.Segment
	yearTags []video.Tag

	metadataCalls  int
	tagCalls       int
	err            error
	gotHasDeadline bool
}

func (f *fakeVideoStore) List(ctx context.Context, _ video.ListOptions) (video.Listing, error) {
	_, f.gotHasDeadline = ctx.Deadline()
	vs := make([]video.Video, 0, len(f.videos))
	for _, v := range f.videos {
		vs = append(vs, v)
	}
	return video.NewListing(vs, int64(len(vs))), nil
}

func (f *fakeVideoStore) Get(_ context.Context, id string) (video.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return video.Video{}, database.ErrNotFound
	}
	return v, nil
}

func (f *fakeVideoStore) MetadataByIDs(_ context.Context, ids []string) (map[string]video.Metadata, error) {
	f.metadataCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]video.Metadata)
	for _, id := range ids {
		if m, ok := f.metadata[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeVideoStore) TagsByVideoIDs(_ context.Context, ids []string) (map[string][]video.Tag, error) {
	f.tagCalls++
	out := make(map[string][]video.Tag)
	for _, id := range ids {
		if tags, ok := f.tags[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

func (f *fakeVideoStore) SegmentsByVideoID(_ context.Context, id string) ([]video.Segment, error) {
	return f.segments[id], nil
}

func (f *fakeVideoStore) YearTags(_ context.Context) ([]video.Tag, error) {
	return f.yearTags, nil
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{
		videos: map[string]video.Video{
			"v1": video.NewVideo("v1", "https://example.org/v1", "Hilchos Shabbos", "", time.Now(), 3600),
		},
		metadata: map[string]video.Metadata{
			"v1": video.NewMetadata("v1", "Hilchos Shabbos", "כ\"א אדר", "ראשון"),
		},
		tags: map[string][]video.Tag{
			"v1": {video.NewTag(1, "5784", "date")},
		},
		segments: map[string][]video.Segment{
			"v1": {video.NewSegment(1, "v1", 0, 0, 30, 30, "opening")},
		},
		yearTags: []video.Tag{video.NewTag(1, "5784", "date")},
	}
}

func TestVideos_Detail(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideos(store, nil)

	detail, err := svc.Detail(context.Background(), "v1")
	require.NoError(t, err)

	assert.Equal(t, "Hilchos Shabbos", detail.Video().Title())
	meta, ok := detail.Metadata()
	require.True(t, ok)
	assert.Equal(t, "Hilchos Shabbos", meta.Subject())
	require.Len(t, detail.Tags(), 1)
	require.Len(t, detail.Segments(), 1)
	assert.Equal(t, "opening", detail.Segments()[0].Text())
}

func TestVideos_DetailNotFound(t *testing.T) {
	svc := NewVideos(newFakeVideoStore(), nil)

	_, err := svc.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideos_DetailWithoutMetadata(t *testing.T) {
	store := newFakeVideoStore()
	delete(store.metadata, "v1")
	svc := NewVideos(store, nil)

	detail, err := svc.Detail(context.Background(), "v1")
	require.NoError(t, err)
	_, ok := detail.Metadata()
	assert.False(t, ok)
}

func TestVideos_Enrich(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideos(store, nil)

	enrichment, err := svc.Enrich(context.Background(), []string{"v1", "v2"})
	require.NoError(t, err)

	meta, ok := enrichment.Metadata("v1")
	require.True(t, ok)
	assert.Equal(t, "Hilchos Shabbos", meta.Subject())
	_, ok = enrichment.Metadata("v2")
	assert.False(t, ok)
	assert.Len(t, enrichment.Tags("v1"), 1)
	assert.Nil(t, enrichment.Tags("v2"))

	assert.Equal(t, 1, store.metadataCalls)
	assert.Equal(t, 1, store.tagCalls)
}

func TestVideos_EnrichEmptySkipsStore(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideos(store, nil)

	enrichment, err := svc.Enrich(context.Background(), nil)
	require.NoError(t, err)
	_, ok := enrichment.Metadata("v1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.metadataCalls)
	assert.Equal(t, 0, store.tagCalls)
}

func TestVideos_EnrichPropagatesStoreErrors(t *testing.T) {
	store := newFakeVideoStore()
	store.err = errors.New("connection refused")
	svc := NewVideos(store, nil)

	_, err := svc.Enrich(context.Background(), []string{"v1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrich videos")
}

func TestVideos_CatalogQueriesCarryDeadline(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideos(store, nil, WithCatalogTimeout(time.Second))

	_, err := svc.List(context.Background(), video.NewListOptions())
	require.NoError(t, err)
	assert.True(t, store.gotHasDeadline, "list context should carry a deadline")

	// The default bound applies when no option is given.
	store = newFakeVideoStore()
	svc = NewVideos(store, nil)
	_, err = svc.List(context.Background(), video.NewListOptions())
	require.NoError(t, err)
	assert.True(t, store.gotHasDeadline)
}

func TestVideos_YearTags(t *testing.T) {
	svc := NewVideos(newFakeVideoStore(), nil)

	tags, err := svc.YearTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "5784", tags[0].Name())
}

var _ video.Store = (*fakeVideoStore)(nil)
