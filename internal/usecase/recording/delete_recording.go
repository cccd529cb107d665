package recording

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type recordingDeleterSrv struct {
	repo  port.RecordingRepository
	cache port.Cache
	strg  port.Storage
}

// compile-time check: *recordingDeleterSrv must satisfy port.RecordingDeleter
var _ port.RecordingDeleter = (*recordingDeleterSrv)(nil)

// NewRecordingDeleter constructs a RecordingDeleter implementation.
func NewRecordingDeleter(repo port.RecordingRepository, cache port.Cache, strg port.Storage) port.RecordingDeleter {
	return &recordingDeleterSrv{repo: repo, cache: cache, strg: strg}
}

// DeleteRecording removes the file from storage, deletes the DB record and
// clears cache. Another faculty's recording is indistinguishable from a
// missing one.
func (s *recordingDeleterSrv) DeleteRecording(ctx context.Context, facultyID int64, id db.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrObjectNotFound
		}
		return err
	}
	if rec.FacultyID != facultyID {
		return ErrObjectNotFound
	}

	if err := s.strg.RemoveFile(ctx, rec.Bucket, rec.ObjectKey); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rec.ID); err != nil {
		return err
	}

	if err := s.cache.DeleteRecordingDetails(ctx, rec.FacultyID, rec.ID); err != nil {
		log.Printf("failed deleting cache for recording #%s: %v", rec.ID, err)
	}
	if err := s.cache.DeleteEtagRecordingDetails(ctx, rec.FacultyID, rec.ID); err != nil {
		log.Printf("failed deleting etag cache for recording #%s: %v", rec.ID, err)
	}

	return nil
}
