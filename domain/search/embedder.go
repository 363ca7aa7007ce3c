package search

import "context"

// Embedder turns query text into a dense vector.
type Embedder interface {
	// Embed returns the embedding of text. Implementations make a single
	// attempt; callers decide how to degrade on failure.
	Embed(ctx context.Context, text string) ([]float64, error)
}
