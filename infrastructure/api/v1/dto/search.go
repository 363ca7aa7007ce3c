// Package dto defines the JSON wire types of the v1 API.
package dto

import (
	"github.com/shiurhub/shiurhub/application/service"
	"github.com/shiurhub/shiurhub/domain/search"
)

// Match is one piece of match evidence on the wire.
type Match struct {
	Kind       string   `json:"kind"`
	Text       string   `json:"text"`
	Similarity float64  `json:"similarity"`
	SegmentID  *int64   `json:"segment_id,omitempty"`
	StartTime  *float64 `json:"start_time,omitempty"`
	EndTime    *float64 `json:"end_time,omitempty"`
}

// SearchResult is one ranked video with its display context.
type SearchResult struct {
	VideoID       string  `json:"video_id"`
	Subject       string  `json:"subject,omitempty"`
	HebrewDate    string  `json:"hebrew_date,omitempty"`
	DayOfWeek     string  `json:"day_of_week,omitempty"`
	Tags          []Tag   `json:"tags"`
	Matches       []Match `json:"matches"`
	MaxSimilarity float64 `json:"max_similarity"`
	Trigger       Match   `json:"trigger"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Results     []SearchResult `json:"results"`
	Total       int            `json:"total"`
	Query       string         `json:"query"`
	QueryVector []float64      `json:"queryVector,omitempty"`
}

// FromMatch converts domain match evidence to its wire form.
func FromMatch(m search.Match) Match {
	out := Match{
		Kind:       string(m.Kind()),
		Text:       m.Text(),
		Similarity: m.Similarity(),
	}
	if id, ok := m.SegmentID(); ok {
		out.SegmentID = &id
	}
	if start, ok := m.StartTime(); ok {
		out.StartTime = &start
	}
	if end, ok := m.EndTime(); ok {
		out.EndTime = &end
	}
	return out
}

// FromSearchResult converts a ranked video plus its enrichment to wire form.
func FromSearchResult(r search.Result, enrichment service.Enrichment) SearchResult {
	matches := make([]Match, 0, len(r.Matches()))
	for _, m := range r.Matches() {
		matches = append(matches, FromMatch(m))
	}

	out := SearchResult{
		VideoID:       r.VideoID(),
		Tags:          []Tag{},
		Matches:       matches,
		MaxSimilarity: r.MaxSimilarity(),
		Trigger:       FromMatch(r.Trigger()),
	}

	if meta, ok := enrichment.Metadata(r.VideoID()); ok {
		out.Subject = meta.Subject()
		out.HebrewDate = meta.HebrewDate()
		out.DayOfWeek = meta.DayOfWeek()
	}
	for _, t := range enrichment.Tags(r.VideoID()) {
		out.Tags = append(out.Tags, FromTag(t))
	}
	return out
}

// FromSearchResponse builds the full search response body.
func FromSearchResponse(query string, resp search.Response, enrichment service.Enrichment) SearchResponse {
	results := resp.Results()
	out := SearchResponse{
		Results:     make([]SearchResult, 0, len(results)),
		Total:       len(results),
		Query:       query,
		QueryVector: resp.QueryVector(),
	}
	for _, r := range results {
		out.Results = append(out.Results, FromSearchResult(r, enrichment))
	}
	return out
}
