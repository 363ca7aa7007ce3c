package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsearch "github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/infrastructure/persistence"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/testdb"
)

func ptr(v int64) *int64 { return &v }

func seedSegments(t *testing.T, db database.Database) {
	t.Helper()
	segments := []persistence.SegmentModel{
		{ID: 1, VideoID: "v1", SegmentIndex: 0, Start: 0, Duration: 30, End: 30, Text: "first"},
		{ID: 2, VideoID: "v1", SegmentIndex: 1, Start: 30, Duration: 30, End: 60, Text: "second"},
		{ID: 3, VideoID: "v2", SegmentIndex: 0, Start: 0, Duration: 45, End: 45, Text: "other"},
	}
	require.NoError(t, db.Session(context.Background()).Create(&segments).Error)
}

func seedEmbeddings(t *testing.T, db database.Database, store *SQLiteCandidateStore, rows []EmbeddingRow) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, db.Session(ctx).Create(&rows).Error)
}

func TestSQLiteCandidateStore_NearestOrdersByDistance(t *testing.T) {
	db := testdb.New(t)
	seedSegments(t, db)
	store := NewSQLiteCandidateStore(db, nil)
	seedEmbeddings(t, db, store, []EmbeddingRow{
		{VideoID: "v1", SegmentID: ptr(2), Source: SourceTranscription, ChunkText: "far chunk", Embedding: database.NewVector([]float64{0, 1})},
		{VideoID: "v1", SegmentID: ptr(1), Source: SourceTranscription, ChunkText: "close chunk", Embedding: database.NewVector([]float64{1, 0})},
		{VideoID: "v2", SegmentID: ptr(3), Source: SourceTranscription, ChunkText: "mid chunk", Embedding: database.NewVector([]float64{0.6, 0.8})},
	})

	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 200, 50)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "close chunk", candidates[0].Text())
	assert.InDelta(t, 0.0, candidates[0].Distance(), 1e-9)
	assert.Equal(t, "mid chunk", candidates[1].Text())
	assert.InDelta(t, 0.4, candidates[1].Distance(), 1e-9)
	assert.Equal(t, "far chunk", candidates[2].Text())
	assert.InDelta(t, 1.0, candidates[2].Distance(), 1e-9)

	segID, ok := candidates[0].Match(1.0).SegmentID()
	require.True(t, ok)
	assert.Equal(t, int64(1), segID)
	start, _ := candidates[0].Match(1.0).StartTime()
	end, _ := candidates[0].Match(1.0).EndTime()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 30.0, end)
}

func TestSQLiteCandidateStore_NearestLimitAppliesBeforeJoin(t *testing.T) {
	db := testdb.New(t)
	seedSegments(t, db)
	store := NewSQLiteCandidateStore(db, nil)
	seedEmbeddings(t, db, store, []EmbeddingRow{
		// Closest entry has no segment reference, so it consumes a k-NN
		// slot and is then dropped by the join.
		{VideoID: "v1", SegmentID: nil, Source: SourceTranscription, ChunkText: "orphan", Embedding: database.NewVector([]float64{1, 0})},
		{VideoID: "v1", SegmentID: ptr(1), Source: SourceTranscription, ChunkText: "kept", Embedding: database.NewVector([]float64{0.9, 0.1})},
		{VideoID: "v2", SegmentID: ptr(3), Source: SourceTranscription, ChunkText: "excluded by knn limit", Embedding: database.NewVector([]float64{0.5, 0.5})},
	})

	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 2, 50)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "kept", candidates[0].Text())
}

func TestSQLiteCandidateStore_ResultLimitAppliesAfterJoin(t *testing.T) {
	db := testdb.New(t)
	seedSegments(t, db)
	store := NewSQLiteCandidateStore(db, nil)
	seedEmbeddings(t, db, store, []EmbeddingRow{
		{VideoID: "v1", SegmentID: ptr(1), Source: SourceTranscription, ChunkText: "a", Embedding: database.NewVector([]float64{1, 0})},
		{VideoID: "v1", SegmentID: ptr(2), Source: SourceTranscription, ChunkText: "b", Embedding: database.NewVector([]float64{0.9, 0.1})},
		{VideoID: "v2", SegmentID: ptr(3), Source: SourceTranscription, ChunkText: "c", Embedding: database.NewVector([]float64{0.5, 0.5})},
	})

	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 200, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "a", candidates[0].Text())
	assert.Equal(t, "b", candidates[1].Text())
}

func TestSQLiteCandidateStore_DropsUnresolvedSegments(t *testing.T) {
	db := testdb.New(t)
	seedSegments(t, db)
	store := NewSQLiteCandidateStore(db, nil)
	seedEmbeddings(t, db, store, []EmbeddingRow{
		{VideoID: "v1", SegmentID: ptr(999), Source: SourceTranscription, ChunkText: "dangling ref", Embedding: database.NewVector([]float64{1, 0})},
		{VideoID: "v2", SegmentID: ptr(3), Source: SourceTranscription, ChunkText: "resolved", Embedding: database.NewVector([]float64{0, 1})},
	})

	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 200, 50)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "resolved", candidates[0].Text())
}

func TestSQLiteCandidateStore_TiesBreakOnRowID(t *testing.T) {
	db := testdb.New(t)
	seedSegments(t, db)
	store := NewSQLiteCandidateStore(db, nil)
	seedEmbeddings(t, db, store, []EmbeddingRow{
		{ID: 10, VideoID: "v1", SegmentID: ptr(1), Source: SourceTranscription, ChunkText: "second by id", Embedding: database.NewVector([]float64{1, 0})},
		{ID: 5, VideoID: "v2", SegmentID: ptr(3), Source: SourceTranscription, ChunkText: "first by id", Embedding: database.NewVector([]float64{2, 0})},
	})

	// Both rows point the same direction, so distances tie at zero.
	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 200, 50)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "first by id", candidates[0].Text())
	assert.Equal(t, "second by id", candidates[1].Text())
}

func TestSQLiteCandidateStore_EmptyVector(t *testing.T) {
	db := testdb.New(t)
	store := NewSQLiteCandidateStore(db, nil)

	candidates, err := store.Nearest(context.Background(), nil, 200, 50)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSQLiteCandidateStore_EmptyIndex(t *testing.T) {
	db := testdb.New(t)
	store := NewSQLiteCandidateStore(db, nil)

	candidates, err := store.Nearest(context.Background(), []float64{1, 0}, 200, 50)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

var _ domainsearch.CandidateStore = (*SQLiteCandidateStore)(nil)
