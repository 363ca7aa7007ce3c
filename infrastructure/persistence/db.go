package persistence

import (
	"context"
	"fmt"

	"github.com/shiurhub/shiurhub/internal/database"
)

// AutoMigrate creates or updates the catalog tables. The transcript-chunk
// embedding index is not covered here; each vector store owns its own DDL
// because the column type differs per backend.
func AutoMigrate(ctx context.Context, db database.Database) error {
	if err := db.Session(ctx).AutoMigrate(
		&VideoModel{},
		&MetadataModel{},
		&SegmentModel{},
		&TagModel{},
		&TaggingModel{},
	); err != nil {
		return fmt.Errorf("auto migrate catalog: %w", err)
	}
	return nil
}
