package dto

import (
	"time"

	"github.com/shiurhub/shiurhub/application/service"
	"github.com/shiurhub/shiurhub/domain/video"
)

// Tag is one taxonomy entry on the wire.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Video is one catalog entry on the wire.
type Video struct {
	VideoID         string    `json:"video_id"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	Subject         string    `json:"subject,omitempty"`
	HebrewDate      string    `json:"hebrew_date,omitempty"`
	DayOfWeek       string    `json:"day_of_week,omitempty"`
	Tags            []Tag     `json:"tags"`
}

// Segment is one transcript segment on the wire.
type Segment struct {
	ID           int64   `json:"id"`
	SegmentIndex int     `json:"segment_index"`
	Start        float64 `json:"start"`
	Duration     float64 `json:"duration"`
	End          float64 `json:"end"`
	Text         string  `json:"text"`
}

// VideoListResponse is the body of GET /api/videos.
type VideoListResponse struct {
	Videos  []Video `json:"videos"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

// VideoDetailResponse is the body of GET /api/videos/{id}.
type VideoDetailResponse struct {
	Video    Video     `json:"video"`
	Segments []Segment `json:"segments"`
}

// TagListResponse is the body of GET /api/tags/years.
type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

// FromTag converts a domain tag to its wire form.
func FromTag(t video.Tag) Tag {
	return Tag{ID: t.ID(), Name: t.Name(), Type: t.Type()}
}

// FromTags converts domain tags to wire form, never nil.
func FromTags(tags []video.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, FromTag(t))
	}
	return out
}

// FromVideo converts a catalog entry plus its enrichment to wire form.
func FromVideo(v video.Video, enrichment service.Enrichment) Video {
	out := Video{
		VideoID:         v.ID(),
		URL:             v.URL(),
		Title:           v.Title(),
		Description:     v.Description(),
		PublishedAt:     v.PublishedAt(),
		DurationSeconds: v.DurationSeconds(),
		Tags:            FromTags(enrichment.Tags(v.ID())),
	}
	if meta, ok := enrichment.Metadata(v.ID()); ok {
		out.Subject = meta.Subject()
		out.HebrewDate = meta.HebrewDate()
		out.DayOfWeek = meta.DayOfWeek()
	}
	return out
}

// FromSegment converts a transcript segment to its wire form.
func FromSegment(s video.Segment) Segment {
	return Segment{
		ID:           s.ID(),
		SegmentIndex: s.SegmentIndex(),
		Start:        s.Start(),
		Duration:     s.Duration(),
		End:          s.End(),
		Text:         s.Text(),
	}
}

// FromDetail converts a video detail to wire form.
func FromDetail(d service.Detail) VideoDetailResponse {
	v := d.Video()
	out := Video{
		VideoID:         v.ID(),
		URL:             v.URL(),
		Title:           v.Title(),
		Description:     v.Description(),
		PublishedAt:     v.PublishedAt(),
		DurationSeconds: v.DurationSeconds(),
		Tags:            FromTags(d.Tags()),
	}
	if meta, ok := d.Metadata(); ok {
		out.Subject = meta.Subject()
		out.HebrewDate = meta.HebrewDate()
		out.DayOfWeek = meta.DayOfWeek()
	}

	segments := make([]Segment, 0, len(d.Segments()))
	for _, s := range d.Segments() {
		segments = append(segments, FromSegment(s))
	}
	return VideoDetailResponse{Video: out, Segments: segments}
}
