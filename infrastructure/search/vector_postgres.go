package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/log"
)

// SQL specific to pgvector (extension, table, index, retrieval).
const (
	pgvCreateExtension = `CREATE EXTENSION IF NOT EXISTS vector`

	pgvCreateTableTemplate = `
CREATE TABLE IF NOT EXISTS %s (
    id SERIAL PRIMARY KEY,
    video_id VARCHAR(255) NOT NULL,
    segment_id BIGINT,
    source VARCHAR(32) NOT NULL DEFAULT 'transcription',
    chunk_text TEXT NOT NULL,
    embedding VECTOR(%d) NOT NULL
)`

	pgvCreateIndexTemplate = `
CREATE INDEX IF NOT EXISTS %s_idx
ON %s
USING ivfflat (embedding vector_cosine_ops)
WITH (lists = 100)`

	// The inner scan orders by distance with the row id as tiebreaker so
	// retrieval order is deterministic; the join drops entries that do not
	// resolve to a transcript segment.
	pgvNearestQuery = `
WITH nearest AS (
    SELECT id, video_id, segment_id, chunk_text, embedding <=> ?::vector AS distance
    FROM transcript_embeddings
    ORDER BY distance ASC, id ASC
    LIMIT ?
)
SELECT n.video_id,
       n.chunk_text,
       n.distance,
       s.id AS segment_id,
       s.start AS start_time,
       s."end" AS end_time
FROM nearest n
JOIN transcription_segments s ON s.id = n.segment_id
ORDER BY n.distance ASC, n.id ASC
LIMIT ?`
)

// ErrPgvectorInitializationFailed indicates pgvector initialization failed.
var ErrPgvectorInitializationFailed = errors.New("failed to initialize pgvector store")

// PgvectorCandidateStore retrieves candidates with the pgvector extension.
// The k-NN scan and the segment join both run inside PostgreSQL.
type PgvectorCandidateStore struct {
	db          database.Database
	dimension   int
	logger      *log.Logger
	initialized bool
	mu          sync.Mutex
}

// NewPgvectorCandidateStore creates a PgvectorCandidateStore. dimension is
// the embedding model's vector width, used for the column DDL.
func NewPgvectorCandidateStore(db database.Database, dimension int, logger *log.Logger) *PgvectorCandidateStore {
	if logger == nil {
		logger = log.Default()
	}
	return &PgvectorCandidateStore{
		db:        db,
		dimension: dimension,
		logger:    logger,
	}
}

// Migrate creates the pgvector extension, the embedding table, and the
// ivfflat index.
func (s *PgvectorCandidateStore) Migrate(ctx context.Context) error {
	session := s.db.Session(ctx)

	if err := session.Exec(pgvCreateExtension).Error; err != nil {
		return errors.Join(ErrPgvectorInitializationFailed, err)
	}

	createSQL := fmt.Sprintf(pgvCreateTableTemplate, EmbeddingTable, s.dimension)
	if err := session.Exec(createSQL).Error; err != nil {
		return errors.Join(ErrPgvectorInitializationFailed, err)
	}

	indexSQL := fmt.Sprintf(pgvCreateIndexTemplate, EmbeddingTable, EmbeddingTable)
	if err := session.Exec(indexSQL).Error; err != nil {
		// ivfflat needs data to build lists; creation can fail on an empty
		// table and retrieval still works through a sequential scan.
		s.logger.WarnContext(ctx, "failed to create ivfflat index", "error", err)
	}

	return nil
}

func (s *PgvectorCandidateStore) initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.Migrate(ctx); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// candidateRow is the scan target for the retrieval query.
type candidateRow struct {
	VideoID   string  `gorm:"column:video_id"`
	ChunkText string  `gorm:"column:chunk_text"`
	Distance  float64 `gorm:"column:distance"`
	SegmentID int64   `gorm:"column:segment_id"`
	StartTime float64 `gorm:"column:start_time"`
	EndTime   float64 `gorm:"column:end_time"`
}

// Nearest returns up to resultLimit candidates ordered by ascending
// distance, resolved to transcript segments.
func (s *PgvectorCandidateStore) Nearest(ctx context.Context, vector []float64, nearestLimit, resultLimit int) ([]search.Candidate, error) {
	if err := s.initialize(ctx); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return []search.Candidate{}, nil
	}

	var rows []candidateRow
	err := s.db.Session(ctx).
		Raw(pgvNearestQuery, database.NewVector(vector).String(), nearestLimit, resultLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pgvector nearest: %w", err)
	}

	candidates := make([]search.Candidate, len(rows))
	for i, r := range rows {
		candidates[i] = search.NewTranscriptionCandidate(
			r.VideoID, r.ChunkText, r.Distance, r.SegmentID, r.StartTime, r.EndTime,
		)
	}
	return candidates, nil
}

var _ search.CandidateStore = (*PgvectorCandidateStore)(nil)
