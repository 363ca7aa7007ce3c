package search

// Candidate is a raw retrieval row before scoring: a video reference, the
// matched text, and the raw vector distance. Transcript candidates also
// carry their resolved segment reference and playback window.
type Candidate struct {
	videoID   string
	kind      MatchKind
	text      string
	distance  float64
	segmentID *int64
	startTime *float64
	endTime   *float64
}

// NewSubjectCandidate creates a candidate matched on a video's subject line.
func NewSubjectCandidate(videoID, text string, distance float64) Candidate {
	return Candidate{
		videoID:  videoID,
		kind:     MatchKindSubject,
		text:     text,
		distance: distance,
	}
}

// NewTranscriptionCandidate creates a candidate matched on a transcript
// chunk, resolved to its segment.
func NewTranscriptionCandidate(videoID, text string, distance float64, segmentID int64, startTime, endTime float64) Candidate {
	return Candidate{
		videoID:   videoID,
		kind:      MatchKindTranscription,
		text:      text,
		distance:  distance,
		segmentID: &segmentID,
		startTime: &startTime,
		endTime:   &endTime,
	}
}

// VideoID returns the video the candidate belongs to.
func (c Candidate) VideoID() string { return c.videoID }

// Kind returns which field the candidate matched on.
func (c Candidate) Kind() MatchKind { return c.kind }

// Text returns the matched text.
func (c Candidate) Text() string { return c.text }

// Distance returns the raw vector distance (lower is closer).
func (c Candidate) Distance() float64 { return c.distance }

// Match converts the candidate into match evidence carrying the given
// normalized similarity.
func (c Candidate) Match(similarity float64) Match {
	m := Match{
		kind:       c.kind,
		text:       c.text,
		similarity: similarity,
	}
	m.segmentID = c.segmentID
	m.startTime = c.startTime
	m.endTime = c.endTime
	return m
}
