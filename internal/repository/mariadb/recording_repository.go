package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type RecordingRepository struct {
	db *sql.DB
}

// compile-time check: *RecordingRepository must satisfy port.RecordingRepository
var _ port.RecordingRepository = (*RecordingRepository)(nil)

func NewRecordingRepository(db *sql.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// recordingColumns is shared between every SELECT so scanRecording always
// sees the same column order.
const recordingColumns = `id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecording(row rowScanner) (*model.Recording, error) {
	var rec model.Recording
	if err := row.Scan(
		&rec.ID, &rec.FacultyID, &rec.Bucket,
		&rec.ObjectKey, &rec.OriginalFilename,
		&rec.MimeType, &rec.SizeBytes, &rec.Status,
		&rec.FailureMessage, &rec.Metadata,
		&rec.IsQualified, &rec.MatchedPeriod, &rec.ValidationMessage,
		&rec.VideoStartTime, &rec.VideoEndTime,
		&rec.ArchivedAt, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordingRepository) Create(ctx context.Context, rec *model.Recording) error {
	log.Printf("creating database record for recording #%s, at status %q...", rec.ID, rec.Status)

	const query = `
      INSERT INTO recordings
        (id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.FacultyID, rec.Bucket,
		rec.ObjectKey, rec.OriginalFilename,
		rec.MimeType, rec.SizeBytes, rec.Status,
		rec.FailureMessage, rec.Metadata,
		rec.IsQualified, rec.MatchedPeriod, rec.ValidationMessage,
		rec.VideoStartTime, rec.VideoEndTime, rec.ArchivedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *RecordingRepository) Update(ctx context.Context, rec *model.Recording) error {
	log.Printf("updating database record for recording #%s, with status %q...", rec.ID, rec.Status)

	const query = `
      UPDATE recordings
      SET
        bucket             = ?,
        object_key         = ?,
        mime_type          = ?,
        size_bytes         = ?,
        status             = ?,
        failure_message    = ?,
        metadata           = ?,
        is_qualified       = ?,
        matched_period     = ?,
        validation_message = ?,
        video_start_time   = ?,
        video_end_time     = ?,
        archived_at        = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		rec.Bucket,
		rec.ObjectKey,
		rec.MimeType,
		rec.SizeBytes,
		rec.Status,
		rec.FailureMessage,
		rec.Metadata,
		rec.IsQualified,
		rec.MatchedPeriod,
		rec.ValidationMessage,
		rec.VideoStartTime,
		rec.VideoEndTime,
		rec.ArchivedAt,
		rec.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *RecordingRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Recording, error) {
	log.Printf("fetching recording #%s from the database...", ID)

	const query = `
      SELECT ` + recordingColumns + `
      FROM recordings
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)

	return scanRecording(row)
}

func (r *RecordingRepository) Delete(ctx context.Context, ID db.UUID) error {
	log.Printf("deleting recording #%s from the database...", ID)

	const query = `
      DELETE FROM recordings
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *RecordingRepository) ListByFaculty(ctx context.Context, facultyID int64, opts port.ListRecordingsOptions) ([]model.Recording, error) {
	log.Printf("listing recordings for faculty #%d from the database...", facultyID)

	query := `
      SELECT ` + recordingColumns + `
      FROM recordings
      WHERE faculty_id = ?`
	args := []interface{}{facultyID}

	if opts.Status != nil {
		query += `
        AND status = ?`
		args = append(args, *opts.Status)
	}
	if opts.Qualified != nil {
		query += `
        AND is_qualified = ?`
		args = append(args, *opts.Qualified)
	}
	if opts.Since != nil {
		query += `
        AND created_at >= ?`
		args = append(args, *opts.Since)
	}

	query += `
      ORDER BY created_at DESC
      LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []model.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}

func (r *RecordingRepository) ListQualifiedUnarchivedBefore(ctx context.Context, before time.Time) ([]db.UUID, error) {
	log.Printf("listing recordings awaiting archive from the database...")

	const query = `
      SELECT id
      FROM recordings
      WHERE status = ?
        AND is_qualified = 1
        AND archived_at IS NULL
        AND updated_at < ?
      ORDER BY updated_at
    `
	rows, err := r.db.QueryContext(ctx, query, model.RecordingStatusValidated, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []db.UUID
	for rows.Next() {
		var id db.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
