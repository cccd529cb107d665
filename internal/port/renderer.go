package port

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
)

// HTTPRenderer mediates between HTTP handlers and the recording getter use
// case. It provides caching capabilities and returns both the JSON
// representation of the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetRecording returns the cached JSON result and its ETag if
	// available or executes the underlying use case and caches the output
	// otherwise. Cache entries are scoped to the requesting faculty so a
	// hit can never leak another faculty's recording.
	RenderGetRecording(ctx context.Context, getter RecordingGetter, facultyID int64, id db.UUID) ([]byte, string, error)
}
