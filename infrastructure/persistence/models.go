// Package persistence implements catalog storage on GORM.
package persistence

import "time"

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	VideoID         string    `gorm:"column:video_id;primaryKey"`
	URL             string    `gorm:"column:url"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	PublishedAt     time.Time `gorm:"column:published_at;index"`
	DurationSeconds float64   `gorm:"column:duration_seconds"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (VideoModel) TableName() string { return "videos" }

// MetadataModel is the GORM model for the video_metadata table.
type MetadataModel struct {
	VideoID    string `gorm:"column:video_id;primaryKey"`
	Subject    string `gorm:"column:subject"`
	HebrewDate string `gorm:"column:hebrew_date"`
	DayOfWeek  string `gorm:"column:day_of_week"`
}

// TableName returns the table name.
func (MetadataModel) TableName() string { return "video_metadata" }

// SegmentModel is the GORM model for the transcription_segments table.
type SegmentModel struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	VideoID      string  `gorm:"column:video_id;index"`
	SegmentIndex int     `gorm:"column:segment_index"`
	Start        float64 `gorm:"column:start"`
	Duration     float64 `gorm:"column:duration"`
	End          float64 `gorm:"column:end"`
	Text         string  `gorm:"column:text"`
}

// TableName returns the table name.
func (SegmentModel) TableName() string { return "transcription_segments" }

// TagModel is the GORM model for the tags table.
type TagModel struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`
	Type string `gorm:"column:type;index"`
}

// TableName returns the table name.
func (TagModel) TableName() string { return "tags" }

// TaggingModel is the GORM model for the taggings join table.
type TaggingModel struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	VideoID string `gorm:"column:video_id;index"`
	TagID   int64  `gorm:"column:tag_id;index"`
}

// TableName returns the table name.
func (TaggingModel) TableName() string { return "taggings" }
