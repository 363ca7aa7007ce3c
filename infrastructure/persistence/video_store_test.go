package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiurhub/shiurhub/domain/video"
	"github.com/shiurhub/shiurhub/infrastructure/persistence"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/testdb"
)

func seedCatalog(t *testing.T, db database.Database) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	videos := []persistence.VideoModel{
		{VideoID: "v1", URL: "https://example.org/v1", Title: "Hilchos Shabbos 12", Description: "candle lighting times", PublishedAt: base.Add(48 * time.Hour)},
		{VideoID: "v2", URL: "https://example.org/v2", Title: "Hilchos Brachos 3", Description: "borei pri haetz", PublishedAt: base.Add(24 * time.Hour)},
		{VideoID: "v3", URL: "https://example.org/v3", Title: "Mussar Vaad", Description: "shabbos preparation and menucha", PublishedAt: base},
	}
	require.NoError(t, db.Session(ctx).Create(&videos).Error)

	metadata := []persistence.MetadataModel{
		{VideoID: "v1", Subject: "Hilchos Shabbos", HebrewDate: "כ\"א אדר תשפ\"ד", DayOfWeek: "ראשון"},
		{VideoID: "v2", Subject: "Hilchos Brachos", HebrewDate: "כ' אדר תשפ\"ד", DayOfWeek: "שבת"},
	}
	require.NoError(t, db.Session(ctx).Create(&metadata).Error)

	tags := []persistence.TagModel{
		{ID: 1, Name: "5784", Type: "date"},
		{ID: 2, Name: "5783", Type: "date"},
		{ID: 3, Name: "shabbos", Type: "topic"},
	}
	require.NoError(t, db.Session(ctx).Create(&tags).Error)

	taggings := []persistence.TaggingModel{
		{VideoID: "v1", TagID: 1},
		{VideoID: "v1", TagID: 3},
		{VideoID: "v2", TagID: 2},
		{VideoID: "v3", TagID: 1},
	}
	require.NoError(t, db.Session(ctx).Create(&taggings).Error)

	segments := []persistence.SegmentModel{
		{VideoID: "v1", SegmentIndex: 1, Start: 30, Duration: 30, End: 60, Text: "second segment"},
		{VideoID: "v1", SegmentIndex: 0, Start: 0, Duration: 30, End: 30, Text: "first segment"},
	}
	require.NoError(t, db.Session(ctx).Create(&segments).Error)
}

func TestVideoStore_List(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	listing, err := store.List(ctx, video.NewListOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(3), listing.Total())

	videos := listing.Videos()
	require.Len(t, videos, 3)
	// Newest first.
	assert.Equal(t, "v1", videos[0].ID())
	assert.Equal(t, "v2", videos[1].ID())
	assert.Equal(t, "v3", videos[2].ID())
}

func TestVideoStore_ListSearchIsCaseInsensitive(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	listing, err := store.List(ctx, video.NewListOptions().WithSearch("SHABBOS"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), listing.Total())

	ids := make([]string, 0)
	for _, v := range listing.Videos() {
		ids = append(ids, v.ID())
	}
	// v1 matches on title, v3 on description.
	assert.Equal(t, []string{"v1", "v3"}, ids)
}

func TestVideoStore_ListYearTagFilter(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	listing, err := store.List(ctx, video.NewListOptions().WithYearTag(2))
	require.NoError(t, err)
	assert.Equal(t, int64(1), listing.Total())
	require.Len(t, listing.Videos(), 1)
	assert.Equal(t, "v2", listing.Videos()[0].ID())
}

func TestVideoStore_ListPagination(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	listing, err := store.List(ctx, video.NewListOptions().WithPage(2).WithPerPage(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), listing.Total())
	require.Len(t, listing.Videos(), 1)
	assert.Equal(t, "v3", listing.Videos()[0].ID())
}

func TestVideoStore_Get(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	v, err := store.Get(ctx, "v2")
	require.NoError(t, err)
	assert.Equal(t, "Hilchos Brachos 3", v.Title())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestVideoStore_MetadataByIDs(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	meta, err := store.MetadataByIDs(ctx, []string{"v1", "v3"})
	require.NoError(t, err)
	require.Len(t, meta, 1)
	assert.Equal(t, "Hilchos Shabbos", meta["v1"].Subject())
	// v3 has no metadata row and is simply absent.
	_, ok := meta["v3"]
	assert.False(t, ok)

	empty, err := store.MetadataByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVideoStore_TagsByVideoIDs(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	tags, err := store.TagsByVideoIDs(ctx, []string{"v1"})
	require.NoError(t, err)
	require.Len(t, tags["v1"], 2)
	// Ordered by type then name: date before topic.
	assert.Equal(t, "5784", tags["v1"][0].Name())
	assert.Equal(t, "shabbos", tags["v1"][1].Name())
}

func TestVideoStore_SegmentsByVideoID(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	segments, err := store.SegmentsByVideoID(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, 0, segments[0].SegmentIndex())
	assert.Equal(t, "first segment", segments[0].Text())
	assert.Equal(t, 1, segments[1].SegmentIndex())
}

func TestVideoStore_YearTags(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	store := persistence.NewVideoStore(db)
	ctx := context.Background()

	tags, err := store.YearTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "5784", tags[0].Name())
	assert.Equal(t, "5783", tags[1].Name())
}
