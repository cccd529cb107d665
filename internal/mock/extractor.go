package mock

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/mediainfo"
)

// MockExtractor implements port.MetadataExtractor for tests.
type MockExtractor struct {
	Out mediainfo.VideoMetadata

	Called bool
	Blob   mediainfo.Blob
	Input  mediainfo.ExtractInput
}

func (m *MockExtractor) Extract(ctx context.Context, blob mediainfo.Blob, in mediainfo.ExtractInput) mediainfo.VideoMetadata {
	m.Called = true
	m.Blob = blob
	m.Input = in
	return m.Out
}
