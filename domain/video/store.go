package video

import "context"

// Default paging values for catalog listings.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListOptions filters and pages a catalog listing.
type ListOptions struct {
	search    string
	yearTagID int64
	page      int
	perPage   int
}

// NewListOptions creates ListOptions with default paging.
func NewListOptions() ListOptions {
	return ListOptions{page: DefaultPage, perPage: DefaultPerPage}
}

// WithSearch sets a case-insensitive substring filter over title and
// description.
func (o ListOptions) WithSearch(q string) ListOptions {
	o.search = q
	return o
}

// WithYearTag restricts the listing to videos tagged with the given year
// tag. Zero means no filter.
func (o ListOptions) WithYearTag(tagID int64) ListOptions {
	o.yearTagID = tagID
	return o
}

// WithPage sets the 1-based page number. Values below 1 are ignored.
func (o ListOptions) WithPage(page int) ListOptions {
	if page >= 1 {
		o.page = page
	}
	return o
}

// WithPerPage sets the page size, capped at MaxPerPage.
func (o ListOptions) WithPerPage(perPage int) ListOptions {
	if perPage >= 1 {
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
		o.perPage = perPage
	}
	return o
}

// Search returns the substring filter.
func (o ListOptions) Search() string { return o.search }

// YearTagID returns the year tag filter (zero means none).
func (o ListOptions) YearTagID() int64 { return o.yearTagID }

// Page returns the 1-based page number.
func (o ListOptions) Page() int { return o.page }

// PerPage returns the page size.
func (o ListOptions) PerPage() int { return o.perPage }

// Offset returns the row offset for the current page.
func (o ListOptions) Offset() int { return (o.page - 1) * o.perPage }

// Listing is one page of catalog results with the unpaged total.
type Listing struct {
	videos []Video
	total  int64
}

// NewListing creates a Listing.
func NewListing(videos []Video, total int64) Listing {
	return Listing{videos: videos, total: total}
}

// Videos returns the page of videos.
func (l Listing) Videos() []Video {
	cp := make([]Video, len(l.videos))
	copy(cp, l.videos)
	return cp
}

// Total returns the unpaged result count.
func (l Listing) Total() int64 { return l.total }

// Store reads the video catalog.
type Store interface {
	// List returns a filtered, paged catalog listing ordered by
	// publication time descending.
	List(ctx context.Context, opts ListOptions) (Listing, error)

	// Get returns one video. Missing videos map to database.ErrNotFound.
	Get(ctx context.Context, id string) (Video, error)

	// MetadataByIDs returns metadata keyed by video id. Videos without
	// metadata are absent from the map.
	MetadataByIDs(ctx context.Context, ids []string) (map[string]Metadata, error)

	// TagsByVideoIDs returns each video's tags ordered by type then name.
	TagsByVideoIDs(ctx context.Context, ids []string) (map[string][]Tag, error)

	// SegmentsByVideoID returns a video's transcript segments ordered by
	// segment index.
	SegmentsByVideoID(ctx context.Context, id string) ([]Segment, error)

	// YearTags returns the date-type tags ordered by name descending.
	YearTags(ctx context.Context) ([]Tag, error)
}
