package mock

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	RecordingOut []byte

	// etag values
	EtagRecording string

	// errors
	GetRecordingErr     error
	GetEtagRecordingErr error
	DelRecordingErr     error
	DelEtagRecordingErr error

	// call flags
	GetRecordingCalled     bool
	GetEtagRecordingCalled bool
	SetRecordingCalled     bool
	SetEtagRecordingCalled bool
	DelRecordingCalled     bool
	DelEtagRecordingCalled bool
}

func (c *Cache) GetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) ([]byte, error) {
	c.GetRecordingCalled = true
	if c.GetRecordingErr != nil {
		return nil, c.GetRecordingErr
	}
	return c.RecordingOut, nil
}

func (c *Cache) GetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) (string, error) {
	c.GetEtagRecordingCalled = true
	if c.GetEtagRecordingErr != nil {
		return "", c.GetEtagRecordingErr
	}
	return c.EtagRecording, nil
}

func (c *Cache) SetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, data []byte, validUntil time.Time) {
	c.SetRecordingCalled = true
	c.RecordingOut = data
}

func (c *Cache) SetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, etag string, validUntil time.Time) {
	c.SetEtagRecordingCalled = true
	c.EtagRecording = etag
}

func (c *Cache) DeleteRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error {
	c.DelRecordingCalled = true
	return c.DelRecordingErr
}

func (c *Cache) DeleteEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error {
	c.DelEtagRecordingCalled = true
	return c.DelEtagRecordingErr
}
