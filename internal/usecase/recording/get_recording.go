package recording

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type recordingGetterSrv struct {
	repo port.RecordingRepository
	strg port.Storage
}

// compile-time check: *recordingGetterSrv must satisfy port.RecordingGetter
var _ port.RecordingGetter = (*recordingGetterSrv)(nil)

// NewRecordingGetter constructs a RecordingGetter implementation.
func NewRecordingGetter(repo port.RecordingRepository, strg port.Storage) port.RecordingGetter {
	return &recordingGetterSrv{repo, strg}
}

// GetRecording returns the stored details of a validated recording along
// with a fresh presigned download link. Another faculty's recording is
// indistinguishable from a missing one.
func (s *recordingGetterSrv) GetRecording(ctx context.Context, facultyID int64, id db.UUID) (*port.GetRecordingOutput, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	if rec.FacultyID != facultyID {
		return nil, ErrObjectNotFound
	}
	if rec.Status != model.RecordingStatusValidated {
		return nil, ErrNotValidated
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, rec.Bucket, rec.ObjectKey, DownloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed generating download link for file %q: %w", rec.ObjectKey, err)
	}

	return &port.GetRecordingOutput{
		ValidUntil: time.Now().Add(DownloadURLTTL),
		URL:        url,
		Status:     rec.Status,
		Metadata:   rec.Metadata,
		Validation: buildValidationOutput(rec),
		ArchivedAt: rec.ArchivedAt,
	}, nil
}
