package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDistances_Spread(t *testing.T) {
	scores := NormalizeDistances([]float64{0, 5, 10})
	assert.Equal(t, []float64{1.0, 0.5, 0.0}, scores)
}

func TestNormalizeDistances_Degenerate(t *testing.T) {
	scores := NormalizeDistances([]float64{1, 1, 1})
	assert.Equal(t, []float64{1.0, 1.0, 1.0}, scores)
}

func TestNormalizeDistances_SingleCandidate(t *testing.T) {
	scores := NormalizeDistances([]float64{0.37})
	assert.Equal(t, []float64{1.0}, scores)
}

func TestNormalizeDistances_Empty(t *testing.T) {
	assert.Empty(t, NormalizeDistances(nil))
	assert.Empty(t, NormalizeDistances([]float64{}))
}

func TestNormalizeDistances_OrderPreserving(t *testing.T) {
	distances := []float64{0.9, 0.1, 0.5, 0.30000000000000004}
	scores := NormalizeDistances(distances)

	for i := range distances {
		for j := range distances {
			if distances[i] < distances[j] {
				assert.Greater(t, scores[i], scores[j])
			}
		}
	}
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestNormalizeDistances_BatchRelative(t *testing.T) {
	// The same distance scores differently depending on the batch.
	a := NormalizeDistances([]float64{0.5, 1.0})
	b := NormalizeDistances([]float64{0.0, 0.5})
	assert.Equal(t, 1.0, a[0])
	assert.Equal(t, 0.0, b[1])
}
