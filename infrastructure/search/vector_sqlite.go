package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shiurhub/shiurhub/domain/search"
	"github.com/shiurhub/shiurhub/internal/database"
	"github.com/shiurhub/shiurhub/internal/log"
)

// ErrSQLiteVectorInitializationFailed indicates SQLite vector initialization failed.
var ErrSQLiteVectorInitializationFailed = errors.New("failed to initialize SQLite vector store")

const sqliteCreateTableTemplate = `
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    video_id VARCHAR(255) NOT NULL,
    segment_id INTEGER,
    source VARCHAR(32) NOT NULL DEFAULT 'transcription',
    chunk_text TEXT NOT NULL,
    embedding TEXT NOT NULL
)`

// SQLiteCandidateStore retrieves candidates from SQLite. Embeddings are
// stored as JSON arrays and cosine distance is computed in-process, which
// keeps development and tests running without a pgvector instance.
type SQLiteCandidateStore struct {
	db          database.Database
	logger      *log.Logger
	initialized bool
	mu          sync.Mutex
}

// NewSQLiteCandidateStore creates a SQLiteCandidateStore.
func NewSQLiteCandidateStore(db database.Database, logger *log.Logger) *SQLiteCandidateStore {
	if logger == nil {
		logger = log.Default()
	}
	return &SQLiteCandidateStore{db: db, logger: logger}
}

// Migrate creates the embedding table.
func (s *SQLiteCandidateStore) Migrate(ctx context.Context) error {
	createSQL := fmt.Sprintf(sqliteCreateTableTemplate, EmbeddingTable)
	if err := s.db.Session(ctx).Exec(createSQL).Error; err != nil {
		return errors.Join(ErrSQLiteVectorInitializationFailed, err)
	}
	return nil
}

func (s *SQLiteCandidateStore) initialize(ctx context.Context) error {
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

// scoredRow pairs an index entry with its distance to the query.
type scoredRow struct {
	row      EmbeddingRow
	distance float64
}

// segmentWindow is the playback window of a transcript segment.
type segmentWindow struct {
	ID    int64   `gorm:"column:id"`
	Start float64 `gorm:"column:start"`
	End   float64 `gorm:"column:end"`
}

// Nearest returns up to resultLimit candidates ordered by ascending
// distance, resolved to transcript segments. Mirrors the pgvector store:
// the k-NN scan is bounded by nearestLimit before the segment join, ties
// break on row id, and unresolved entries are dropped.
func (s *SQLiteCandidateStore) Nearest(ctx context.Context, vector []float64, nearestLimit, resultLimit int) ([]search.Candidate, error) {
	if err := s.initialize(ctx); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return []search.Candidate{}, nil
	}

	var rows []EmbeddingRow
	if err := s.db.Session(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}

	scored := make([]scoredRow, 0, len(rows))
	for _, r := range rows {
		emb := r.Embedding.Floats()
		if len(emb) == 0 {
			s.logger.WarnContext(ctx, "skipping empty embedding", "embedding_id", r.ID)
			continue
		}
		scored = append(scored, scoredRow{row: r, distance: CosineDistance(vector, emb)})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].distance != scored[j].distance {
			return scored[i].distance < scored[j].distance
		}
		return scored[i].row.ID < scored[j].row.ID
	})

	if nearestLimit > 0 && len(scored) > nearestLimit {
		scored = scored[:nearestLimit]
	}

	windows, err := s.segmentWindows(ctx, scored)
	if err != nil {
		return nil, err
	}

	candidates := make([]search.Candidate, 0, len(scored))
	for _, sc := range scored {
		if sc.row.SegmentID == nil {
			continue
		}
		w, ok := windows[*sc.row.SegmentID]
		if !ok {
			continue
		}
		candidates = append(candidates, search.NewTranscriptionCandidate(
			sc.row.VideoID, sc.row.ChunkText, sc.distance, w.ID, w.Start, w.End,
		))
		if resultLimit > 0 && len(candidates) == resultLimit {
			break
		}
	}
	return candidates, nil
}

// segmentWindows resolves the scored rows' segment references in one query.
func (s *SQLiteCandidateStore) segmentWindows(ctx context.Context, scored []scoredRow) (map[int64]segmentWindow, error) {
	ids := make([]int64, 0, len(scored))
	for _, sc := range scored {
		if sc.row.SegmentID != nil {
			ids = append(ids, *sc.row.SegmentID)
		}
	}
	if len(ids) == 0 {
		return map[int64]segmentWindow{}, nil
	}

	var windows []segmentWindow
	err := s.db.Session(ctx).
		Table("transcription_segments").
		Select(`id, start, "end"`).
		Where("id IN ?", ids).
		Scan(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("resolve segments: %w", err)
	}

	byID := make(map[int64]segmentWindow, len(windows))
	for _, w := range windows {
		byID[w.ID] = w
	}
	return byID, nil
}

var _ search.CandidateStore = (*SQLiteCandidateStore)(nil)
