package port

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/mediainfo"
)

// MetadataExtractor produces a complete metadata record for a stored video.
// It never fails: degraded inputs yield Unknown sentinels.
type MetadataExtractor interface {
	Extract(ctx context.Context, blob mediainfo.Blob, in mediainfo.ExtractInput) mediainfo.VideoMetadata
}
