// Package search implements candidate retrieval over the transcript-chunk
// embedding index, with a pgvector backend for PostgreSQL and an in-process
// backend for SQLite.
package search

import "math"

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 (opposite) and 1 (identical).
// Returns 0 if either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, magA, magB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(magA) * math.Sqrt(magB))
}

// CosineDistance computes the cosine distance between two vectors, matching
// pgvector's <=> operator: 0 for identical direction, 2 for opposite.
func CosineDistance(a, b []float64) float64 {
	return 1 - CosineSimilarity(a, b)
}
