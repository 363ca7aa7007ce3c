// Package video holds the catalog domain: archived lectures, their Hebrew
// calendar metadata, tags, and transcript segments.
package video

import "time"

// Video is one archived lecture recording.
type Video struct {
	id              string
	url             string
	title           string
	description     string
	publishedAt     time.Time
	durationSeconds float64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewVideo creates a Video.
func NewVideo(id, url, title, description string, publishedAt time.Time, durationSeconds float64) Video {
	return Video{
		id:              id,
		url:             url,
		title:           title,
		description:     description,
		publishedAt:     publishedAt,
		durationSeconds: durationSeconds,
	}
}

// WithTimestamps returns a copy carrying storage timestamps.
func (v Video) WithTimestamps(createdAt, updatedAt time.Time) Video {
	v.createdAt = createdAt
	v.updatedAt = updatedAt
	return v
}

// ID returns the video identifier.
func (v Video) ID() string { return v.id }

// URL returns the playback URL.
func (v Video) URL() string { return v.url }

// Title returns the video title.
func (v Video) Title() string { return v.title }

// Description returns the video description.
func (v Video) Description() string { return v.description }

// PublishedAt returns the publication time.
func (v Video) PublishedAt() time.Time { return v.publishedAt }

// DurationSeconds returns the recording length in seconds.
func (v Video) DurationSeconds() float64 { return v.durationSeconds }

// CreatedAt returns the record creation time.
func (v Video) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the record update time.
func (v Video) UpdatedAt() time.Time { return v.updatedAt }

// Metadata is the Hebrew calendar context of a lecture: its subject line,
// the Hebrew date it was given, and the weekday.
type Metadata struct {
	videoID    string
	subject    string
	hebrewDate string
	dayOfWeek  string
}

// NewMetadata creates lecture metadata.
func NewMetadata(videoID, subject, hebrewDate, dayOfWeek string) Metadata {
	return Metadata{
		videoID:    videoID,
		subject:    subject,
		hebrewDate: hebrewDate,
		dayOfWeek:  dayOfWeek,
	}
}

// VideoID returns the video the metadata belongs to.
func (m Metadata) VideoID() string { return m.videoID }

// Subject returns the lecture subject line.
func (m Metadata) Subject() string { return m.subject }

// HebrewDate returns the Hebrew date the lecture was given.
func (m Metadata) HebrewDate() string { return m.hebrewDate }

// DayOfWeek returns the weekday of the lecture.
func (m Metadata) DayOfWeek() string { return m.dayOfWeek }

// Tag is one taxonomy entry. Type distinguishes topic tags from date
// (year) tags used by the archive's year filter.
type Tag struct {
	id      int64
	name    string
	tagType string
}

// NewTag creates a Tag.
func NewTag(id int64, name, tagType string) Tag {
	return Tag{id: id, name: name, tagType: tagType}
}

// ID returns the tag identifier.
func (t Tag) ID() int64 { return t.id }

// Name returns the tag name.
func (t Tag) Name() string { return t.name }

// Type returns the tag type ("date" for year tags).
func (t Tag) Type() string { return t.tagType }

// Segment is one transcript segment with its playback window.
type Segment struct {
	id           int64
	videoID      string
	segmentIndex int
	start        float64
	duration     float64
	end          float64
	text         string
}

// NewSegment creates a transcript segment.
func NewSegment(id int64, videoID string, segmentIndex int, start, duration, end float64, text string) Segment {
	return Segment{
		id:           id,
		videoID:      videoID,
		segmentIndex: segmentIndex,
		start:        start,
		duration:     duration,
		end:          end,
		text:         text,
	}
}

// ID returns the segment identifier.
func (s Segment) ID() int64 { return s.id }

// VideoID returns the video the segment belongs to.
func (s Segment) VideoID() string { return s.videoID }

// SegmentIndex returns the segment's position within the transcript.
func (s Segment) SegmentIndex() int { return s.segmentIndex }

// Start returns the playback start offset in seconds.
func (s Segment) Start() float64 { return s.start }

// Duration returns the segment duration in seconds.
func (s Segment) Duration() float64 { return s.duration }

// End returns the playback end offset in seconds.
func (s Segment) End() float64 { return s.end }

// Text returns the transcript text.
func (s Segment) Text() string { return s.text }
