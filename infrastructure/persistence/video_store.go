package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shiurhub/shiurhub/domain/video"
	"github.com/shiurhub/shiurhub/internal/database"
)

// VideoStore reads the video catalog from GORM-backed storage.
type VideoStore struct {
	db database.Database
}

// NewVideoStore creates a VideoStore.
func NewVideoStore(db database.Database) *VideoStore {
	return &VideoStore{db: db}
}

// List returns a filtered, paged catalog listing ordered by publication
// time descending.
func (s *VideoStore) List(ctx context.Context, opts video.ListOptions) (video.Listing, error) {
	query := s.db.Session(ctx).Model(&VideoModel{})

	if q := strings.TrimSpace(opts.Search()); q != "" {
		// LOWER() keeps the substring filter case-insensitive on both
		// PostgreSQL and SQLite.
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if tagID := opts.YearTagID(); tagID != 0 {
		query = query.
			Joins("JOIN taggings ON taggings.video_id = videos.video_id").
			Where("taggings.tag_id = ?", tagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return video.Listing{}, fmt.Errorf("count videos: %w", err)
	}

	var models []VideoModel
	err := query.
		Order("published_at DESC").
		Limit(opts.PerPage()).
		Offset(opts.Offset()).
		Find(&models).Error
	if err != nil {
		return video.Listing{}, fmt.Errorf("list videos: %w", err)
	}

	return video.NewListing(toVideos(models), total), nil
}

// Get returns one video by id.
func (s *VideoStore) Get(ctx context.Context, id string) (video.Video, error) {
	var model VideoModel
	err := s.db.Session(ctx).
		Where("video_id = ?", id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return video.Video{}, database.ErrNotFound
	}
	if err != nil {
		return video.Video{}, fmt.Errorf("get video %s: %w", id, err)
	}
	return toVideo(model), nil
}

// MetadataByIDs returns metadata keyed by video id.
func (s *VideoStore) MetadataByIDs(ctx context.Context, ids []string) (map[string]video.Metadata, error) {
	if len(ids) == 0 {
		return map[string]video.Metadata{}, nil
	}

	var models []MetadataModel
	err := s.db.Session(ctx).
		Where("video_id IN ?", ids).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("metadata by ids: %w", err)
	}

	result := make(map[string]video.Metadata, len(models))
	for _, m := range models {
		result[m.VideoID] = toMetadata(m)
	}
	return result, nil
}

// taggedTagRow carries a tag row plus the video it is attached to.
type taggedTagRow struct {
	VideoID string `gorm:"column:video_id"`
	ID      int64  `gorm:"column:id"`
	Name    string `gorm:"column:name"`
	Type    string `gorm:"column:type"`
}

// TagsByVideoIDs returns each video's tags ordered by type then name.
func (s *VideoStore) TagsByVideoIDs(ctx context.Context, ids []string) (map[string][]video.Tag, error) {
	if len(ids) == 0 {
		return map[string][]video.Tag{}, nil
	}

	var rows []taggedTagRow
	err := s.db.Session(ctx).
		Table("tags").
		Select("taggings.video_id, tags.id, tags.name, tags.type").
		Joins("JOIN taggings ON taggings.tag_id = tags.id").
		Where("taggings.video_id IN ?", ids).
		Order("tags.type, tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("tags by video ids: %w", err)
	}

	result := make(map[string][]video.Tag, len(ids))
	for _, r := range rows {
		result[r.VideoID] = append(result[r.VideoID], video.NewTag(r.ID, r.Name, r.Type))
	}
	return result, nil
}

// SegmentsByVideoID returns a video's transcript segments in transcript order.
func (s *VideoStore) SegmentsByVideoID(ctx context.Context, id string) ([]video.Segment, error) {
	var models []SegmentModel
	err := s.db.Session(ctx).
		Where("video_id = ?", id).
		Order("segment_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("segments for video %s: %w", id, err)
	}

	segments := make([]video.Segment, len(models))
	for i, m := range models {
		segments[i] = toSegment(m)
	}
	return segments, nil
}

// YearTags returns the date-type tags, newest name first.
func (s *VideoStore) YearTags(ctx context.Context) ([]video.Tag, error) {
	var models []TagModel
	err := s.db.Session(ctx).
		Where("type = ?", "date").
		Order("name DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("year tags: %w", err)
	}

	tags := make([]video.Tag, len(models))
	for i, m := range models {
		tags[i] = toTag(m)
	}
	return tags, nil
}

var _ video.Store = (*VideoStore)(nil)
