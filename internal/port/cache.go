package port

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
)

// Cache provides caching capabilities for recording retrieval. Entries are
// keyed by owning faculty as well as recording ID, so one faculty's cached
// details are invisible to another.
type Cache interface {
	GetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) ([]byte, error)
	GetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) (string, error)
	SetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, data []byte, validUntil time.Time)
	SetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, etag string, validUntil time.Time)
	DeleteRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error
	DeleteEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error
}
