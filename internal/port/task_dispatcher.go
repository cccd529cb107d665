package port

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
)

// TaskDispatcher enqueues asynchronous tasks related to recording processing.
type TaskDispatcher interface {
	EnqueueArchiveRecording(ctx context.Context, id db.UUID) error
}
