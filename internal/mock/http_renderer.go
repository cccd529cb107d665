package mock

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data []byte
	Etag string
	Err  error

	Called    bool
	Getter    port.RecordingGetter
	FacultyID int64
	ID        db.UUID
}

func (m *MockHTTPRenderer) RenderGetRecording(ctx context.Context, getter port.RecordingGetter, facultyID int64, id db.UUID) ([]byte, string, error) {
	m.Called = true
	m.Getter = getter
	m.FacultyID = facultyID
	m.ID = id
	return m.Data, m.Etag, m.Err
}
