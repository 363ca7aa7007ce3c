package search

import (
	"github.com/shiurhub/shiurhub/internal/database"
)

// EmbeddingTable is the transcript-chunk embedding index table. Both vector
// stores own its DDL because the embedding column type differs per backend
// (VECTOR(n) on PostgreSQL, TEXT holding a JSON array on SQLite).
const EmbeddingTable = "transcript_embeddings"

// SourceTranscription marks index entries derived from transcript chunks.
const SourceTranscription = "transcription"

// EmbeddingRow is one entry of the embedding index. SegmentID is nullable:
// entries whose chunk does not resolve to a transcript segment exist in the
// index but are dropped at retrieval time.
type EmbeddingRow struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	VideoID   string          `gorm:"column:video_id"`
	SegmentID *int64          `gorm:"column:segment_id"`
	Source    string          `gorm:"column:source"`
	ChunkText string          `gorm:"column:chunk_text"`
	Embedding database.Vector `gorm:"column:embedding"`
}

// TableName returns the table name.
func (EmbeddingRow) TableName() string { return EmbeddingTable }
