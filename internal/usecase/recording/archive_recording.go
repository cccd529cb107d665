package recording

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type recordingArchiverSrv struct {
	repo port.RecordingRepository
	strg port.Storage
}

// compile-time check: *recordingArchiverSrv must satisfy port.RecordingArchiver
var _ port.RecordingArchiver = (*recordingArchiverSrv)(nil)

// NewRecordingArchiver constructs a RecordingArchiver implementation.
func NewRecordingArchiver(repo port.RecordingRepository, strg port.Storage) port.RecordingArchiver {
	return &recordingArchiverSrv{repo, strg}
}

// ArchiveRecording copies a qualified recording into the archive bucket
// and records the move. Already-archived and non-qualified recordings are
// skipped without error so task retries stay quiet.
func (s *recordingArchiverSrv) ArchiveRecording(ctx context.Context, id db.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrObjectNotFound
		}
		return err
	}
	if rec.ArchivedAt != nil {
		return nil
	}
	if rec.Status != model.RecordingStatusValidated || !rec.IsQualified {
		log.Printf("recording #%s is not a qualified validated recording, skipping archive", rec.ID)
		return nil
	}

	if err := s.strg.CopyFile(ctx, rec.Bucket, rec.ObjectKey, ArchiveBucket, rec.ObjectKey); err != nil {
		if !s.alreadyArchived(ctx, rec.ObjectKey, err) {
			return fmt.Errorf("failed to copy %q from bucket %q to bucket %q: %w", rec.ObjectKey, rec.Bucket, ArchiveBucket, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, rec.Bucket, rec.ObjectKey); err != nil {
		log.Printf("warning: failed to remove file %q from bucket %q: %v", rec.ObjectKey, rec.Bucket, err)
	}

	now := time.Now().UTC()
	rec.Bucket = ArchiveBucket
	rec.ArchivedAt = &now

	if err := s.repo.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed updating recording: %w", err)
	}

	return nil
}

// alreadyArchived reports whether a failed copy can be ignored because a
// previous attempt already landed the file in the archive bucket.
func (s *recordingArchiverSrv) alreadyArchived(ctx context.Context, objectKey string, copyErr error) bool {
	if !errors.Is(copyErr, ErrObjectNotFound) {
		return false
	}
	exists, err := s.strg.FileExists(ctx, ArchiveBucket, objectKey)
	if err != nil {
		return false
	}
	return exists
}
