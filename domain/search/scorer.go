package search

// NormalizeDistances maps a batch of raw vector distances onto similarity
// scores in [0,1] using min-max normalization: the closest candidate in the
// batch scores 1.0 and the farthest scores 0.0. When every distance in the
// batch is identical the scale degenerates and every entry scores 1.0.
//
// Scores are relative to the batch, not absolute: the same distance can
// score differently depending on what it was retrieved alongside.
func NormalizeDistances(distances []float64) []float64 {
	if len(distances) == 0 {
		return []float64{}
	}

	min, max := distances[0], distances[0]
	for _, d := range distances[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	scores := make([]float64, len(distances))
	if max == min {
		for i := range scores {
			scores[i] = 1.0
		}
		return scores
	}

	scale := max - min
	for i, d := range distances {
		s := 1.0 - (d-min)/scale
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
		scores[i] = s
	}
	return scores
}
