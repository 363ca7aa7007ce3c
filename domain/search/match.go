// Package search holds the ranking domain: match evidence, distance
// normalization, and per-video aggregation of retrieved transcript chunks.
package search

// MatchKind identifies which field of a video a match came from.
type MatchKind string

// Match kinds.
const (
	MatchKindSubject       MatchKind = "subject"
	MatchKindTranscription MatchKind = "transcription"
)

// Match is a single piece of evidence tying a video to the query: the
// matched text, its normalized similarity in [0,1], and, for transcript
// matches, the segment it points into.
type Match struct {
	kind       MatchKind
	text       string
	similarity float64
	segmentID  *int64
	startTime  *float64
	endTime    *float64
}

// NewSubjectMatch creates a match against a video's subject line.
// Subject matches carry no segment reference or timing.
func NewSubjectMatch(text string, similarity float64) Match {
	return Match{
		kind:       MatchKindSubject,
		text:       text,
		similarity: similarity,
	}
}

// NewTranscriptionMatch creates a match against a transcript chunk,
// anchored to a segment and its playback window.
func NewTranscriptionMatch(text string, similarity float64, segmentID int64, startTime, endTime float64) Match {
	return Match{
		kind:       MatchKindTranscription,
		text:       text,
		similarity: similarity,
		segmentID:  &segmentID,
		startTime:  &startTime,
		endTime:    &endTime,
	}
}

// Kind returns which field the match came from.
func (m Match) Kind() MatchKind { return m.kind }

// Text returns the matched text.
func (m Match) Text() string { return m.text }

// Similarity returns the normalized similarity in [0,1].
func (m Match) Similarity() float64 { return m.similarity }

// SegmentID returns the referenced transcript segment id, if any.
func (m Match) SegmentID() (int64, bool) {
	if m.segmentID == nil {
		return 0, false
	}
	return *m.segmentID, true
}

// StartTime returns the playback start offset in seconds, if any.
func (m Match) StartTime() (float64, bool) {
	if m.startTime == nil {
		return 0, false
	}
	return *m.startTime, true
}

// EndTime returns the playback end offset in seconds, if any.
func (m Match) EndTime() (float64, bool) {
	if m.endTime == nil {
		return 0, false
	}
	return *m.endTime, true
}
