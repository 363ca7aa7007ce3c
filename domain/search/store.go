package search

import "context"

// CandidateStore retrieves the transcript chunks nearest to a query vector.
type CandidateStore interface {
	// Nearest returns up to resultLimit candidates resolved to transcript
	// segments, ordered by ascending distance. nearestLimit bounds the
	// k-NN scan before the segment join; index entries that do not resolve
	// to a transcript segment are dropped.
	Nearest(ctx context.Context, vector []float64, nearestLimit, resultLimit int) ([]Candidate, error)
}
