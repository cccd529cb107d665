package cache

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) (string, error) {
	return "", nil
}

func (n *NoopCache) SetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error { return nil }

func (n *NoopCache) DeleteEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error {
	return nil
}
