package mock

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	ArchiveCalled bool
	ArchiveIDs    []db.UUID
	ArchiveErr    error
}

func (m *MockDispatcher) EnqueueArchiveRecording(ctx context.Context, id db.UUID) error {
	m.ArchiveCalled = true
	m.ArchiveIDs = append(m.ArchiveIDs, id)
	return m.ArchiveErr
}
