package port

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
)

// ListRecordingsOptions narrows a faculty's recording listing. Nil filters
// are ignored.
type ListRecordingsOptions struct {
	Status    *string
	Qualified *bool
	Since     *time.Time
	Limit     int
	Offset    int
}

// RecordingRepository defines persistence operations for recordings.
type RecordingRepository interface {
	Create(ctx context.Context, recording *model.Recording) error
	Update(ctx context.Context, recording *model.Recording) error
	GetByID(ctx context.Context, ID db.UUID) (*model.Recording, error)
	Delete(ctx context.Context, ID db.UUID) error
	ListByFaculty(ctx context.Context, facultyID int64, opts ListRecordingsOptions) ([]model.Recording, error)
	ListQualifiedUnarchivedBefore(ctx context.Context, before time.Time) ([]db.UUID, error)
}
