package persistence

import (
	"github.com/shiurhub/shiurhub/domain/video"
)

func toVideo(m VideoModel) video.Video {
	return video.NewVideo(
		m.VideoID,
		m.URL,
		m.Title,
		m.Description,
		m.PublishedAt,
		m.DurationSeconds,
	).WithTimestamps(m.CreatedAt, m.UpdatedAt)
}

func toVideos(models []VideoModel) []video.Video {
	videos := make([]video.Video, len(models))
	for i, m := range models {
		videos[i] = toVideo(m)
	}
	return videos
}

func toMetadata(m MetadataModel) video.Metadata {
	return video.NewMetadata(m.VideoID, m.Subject, m.HebrewDate, m.DayOfWeek)
}

func toTag(m TagModel) video.Tag {
	return video.NewTag(m.ID, m.Name, m.Type)
}

func toSegment(m SegmentModel) video.Segment {
	return video.NewSegment(m.ID, m.VideoID, m.SegmentIndex, m.Start, m.Duration, m.End, m.Text)
}
