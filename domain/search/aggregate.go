package search

import "sort"

// Aggregate folds scored candidates into per-video results. Videos appear
// in first-seen retrieval order before ranking and each video's matches
// keep their retrieval order. The final list is sorted by maxSimilarity
// descending with a stable sort, so equal scores keep first-seen order,
// then truncated to limit (limit <= 0 means no truncation).
//
// candidates and similarities are parallel slices; extra entries on either
// side are ignored.
func Aggregate(candidates []Candidate, similarities []float64, limit int) []Result {
	n := len(candidates)
	if len(similarities) < n {
		n = len(similarities)
	}

	order := make([]string, 0, n)
	grouped := make(map[string][]Match, n)
	for i := 0; i < n; i++ {
		id := candidates[i].VideoID()
		if _, seen := grouped[id]; !seen {
			order = append(order, id)
		}
		grouped[id] = append(grouped[id], candidates[i].Match(similarities[i]))
	}

	results := make([]Result, 0, len(order))
	for _, id := range order {
		results = append(results, NewResult(id, grouped[id]))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MaxSimilarity() > results[j].MaxSimilarity()
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
