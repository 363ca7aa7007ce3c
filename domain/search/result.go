package search

// Result is one ranked video with all the evidence that put it there.
type Result struct {
	videoID       string
	matches       []Match
	maxSimilarity float64
	trigger       Match
}

// NewResult creates a Result from a video's matches, computing the peak
// similarity and the trigger match. The trigger is the first transcription
// match in order, falling back to the first match of any kind. Matches are
// expected non-empty; an empty slice yields a zero-valued result.
func NewResult(videoID string, matches []Match) Result {
	r := Result{
		videoID: videoID,
		matches: matches,
	}
	if len(matches) == 0 {
		return r
	}

	r.trigger = matches[0]
	for _, m := range matches {
		if m.Similarity() > r.maxSimilarity {
			r.maxSimilarity = m.Similarity()
		}
	}
	for _, m := range matches {
		if m.Kind() == MatchKindTranscription {
			r.trigger = m
			break
		}
	}
	return r
}

// VideoID returns the ranked video's identifier.
func (r Result) VideoID() string { return r.videoID }

// Matches returns the video's matches in retrieval order.
func (r Result) Matches() []Match {
	cp := make([]Match, len(r.matches))
	copy(cp, r.matches)
	return cp
}

// MaxSimilarity returns the highest similarity among the matches.
func (r Result) MaxSimilarity() float64 { return r.maxSimilarity }

// Trigger returns the representative match shown as the reason the video
// ranked: the first transcription match, or the first match overall.
func (r Result) Trigger() Match { return r.trigger }

// Response is the outcome of one search: ranked results plus the query
// embedding that produced them (exposed so callers can reuse or debug it).
type Response struct {
	results     []Result
	queryVector []float64
}

// NewResponse creates a search response.
func NewResponse(results []Result, queryVector []float64) Response {
	return Response{results: results, queryVector: queryVector}
}

// Results returns the ranked results, best first.
func (r Response) Results() []Result {
	cp := make([]Result, len(r.results))
	copy(cp, r.results)
	return cp
}

// QueryVector returns the embedding of the query text, or nil when the
// query was never embedded (empty query or unavailable provider).
func (r Response) QueryVector() []float64 {
	if r.queryVector == nil {
		return nil
	}
	cp := make([]float64, len(r.queryVector))
	copy(cp, r.queryVector)
	return cp
}
