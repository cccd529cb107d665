package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/mediainfo"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

func sampleRecording(id db.UUID) *model.Recording {
	mime := "video/mp4"
	size := int64(5 * 1024 * 1024)
	period := 1
	start := time.Date(2026, 2, 12, 9, 5, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	md := mediainfo.NewUnknownMetadata("lecture.mp4", size, mime)
	md.Duration = "45mn"

	return &model.Recording{
		ID:                id,
		FacultyID:         42,
		Bucket:            "recordings",
		ObjectKey:         "lecture.mp4_1770000000.mp4",
		OriginalFilename:  "lecture.mp4",
		MimeType:          &mime,
		SizeBytes:         &size,
		Status:            model.RecordingStatusValidated,
		Metadata:          model.Metadata{VideoMetadata: md},
		IsQualified:       true,
		MatchedPeriod:     &period,
		ValidationMessage: "Recording matches period 1 (09:00 AM - 09:50 AM).",
		VideoStartTime:    &start,
		VideoEndTime:      &end,
	}
}

func TestRecordingRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	rec := sampleRecording(mockID)

	mock.ExpectExec(regexp.QuoteMeta(`
      INSERT INTO recordings
        (id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)).
		WithArgs(
			rec.ID,
			rec.FacultyID,
			rec.Bucket,
			rec.ObjectKey,
			rec.OriginalFilename,
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
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_Create_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	rec := &model.Recording{
		ID:               mockID,
		FacultyID:        7,
		Bucket:           "staging",
		ObjectKey:        "lecture.mp4_1770000000",
		OriginalFilename: "lecture.mp4",
		Status:           model.RecordingStatusPending,
	}

	mock.ExpectExec("INSERT INTO recordings").
		WillReturnError(errors.New("db.Exec failed"))

	err = repo.Create(context.Background(), rec)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "db.Exec failed" {
		t.Errorf("expected 'db.Exec failed', got %q", err.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_Update_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	rec := sampleRecording(mockID)
	archived := time.Date(2026, 2, 12, 11, 0, 0, 0, time.UTC)
	rec.ArchivedAt = &archived

	mock.ExpectExec(regexp.QuoteMeta(`
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
    `)).
		WithArgs(
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
			rec.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), rec); err != nil {
		t.Errorf("Update() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_Update_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	rec := sampleRecording(mockID)

	mock.ExpectExec("UPDATE recordings").
		WillReturnError(errors.New("db.Exec failed"))

	err = repo.Update(context.Background(), rec)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "db.Exec failed" {
		t.Errorf("expected 'db.Exec failed', got %q", err.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_GetByID_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	want := sampleRecording(mockID)
	metaJSON, err := want.Metadata.Value()
	if err != nil {
		t.Fatalf("failed to marshal metadata fixture: %v", err)
	}
	created := time.Date(2026, 2, 12, 9, 50, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "faculty_id", "bucket", "object_key", "original_filename",
		"mime_type", "size_bytes", "status", "failure_message", "metadata",
		"is_qualified", "matched_period", "validation_message",
		"video_start_time", "video_end_time", "archived_at", "created_at", "updated_at",
	}).AddRow(
		mockID[:], want.FacultyID, want.Bucket, want.ObjectKey, want.OriginalFilename,
		*want.MimeType, *want.SizeBytes, want.Status, nil, metaJSON,
		want.IsQualified, *want.MatchedPeriod, want.ValidationMessage,
		*want.VideoStartTime, *want.VideoEndTime, nil, created, created,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`
      SELECT id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at, created_at, updated_at
      FROM recordings
      WHERE id = ?
    `)).
		WithArgs(mockID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), mockID)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}

	if got.ID != mockID {
		t.Errorf("expected ID %s, got %s", mockID, got.ID)
	}
	if got.FacultyID != want.FacultyID {
		t.Errorf("expected faculty #%d, got #%d", want.FacultyID, got.FacultyID)
	}
	if got.MimeType == nil || *got.MimeType != *want.MimeType {
		t.Errorf("expected mime type %q, got %v", *want.MimeType, got.MimeType)
	}
	if got.Status != model.RecordingStatusValidated {
		t.Errorf("expected status %q, got %q", model.RecordingStatusValidated, got.Status)
	}
	if got.FailureMessage != nil {
		t.Errorf("expected no failure message, got %q", *got.FailureMessage)
	}
	if got.Metadata.Duration != "45mn" {
		t.Errorf("expected metadata duration '45mn', got %q", got.Metadata.Duration)
	}
	if !got.IsQualified {
		t.Error("expected recording to be qualified")
	}
	if got.MatchedPeriod == nil || *got.MatchedPeriod != 1 {
		t.Errorf("expected matched period 1, got %v", got.MatchedPeriod)
	}
	if got.VideoStartTime == nil || !got.VideoStartTime.Equal(*want.VideoStartTime) {
		t.Errorf("expected video start %v, got %v", want.VideoStartTime, got.VideoStartTime)
	}
	if got.ArchivedAt != nil {
		t.Errorf("expected no archive date, got %v", got.ArchivedAt)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected created at %v, got %v", created, got.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_GetByID_NotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	mock.ExpectQuery("FROM recordings").
		WithArgs(mockID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), mockID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_Delete_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	mock.ExpectExec(regexp.QuoteMeta(`
      DELETE FROM recordings
      WHERE id = ?
    `)).
		WithArgs(mockID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), mockID); err != nil {
		t.Errorf("Delete() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_Delete_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	mock.ExpectExec("DELETE FROM recordings").
		WithArgs(mockID).
		WillReturnError(errors.New("db.Exec failed"))

	err = repo.Delete(context.Background(), mockID)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_ListByFaculty_NoFilters(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	newest := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	oldest := db.UUID(uuid.MustParse("bbbbbbbb-cccc-dddd-eeee-ffffffffffff"))
	created := time.Date(2026, 2, 12, 9, 50, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "faculty_id", "bucket", "object_key", "original_filename",
		"mime_type", "size_bytes", "status", "failure_message", "metadata",
		"is_qualified", "matched_period", "validation_message",
		"video_start_time", "video_end_time", "archived_at", "created_at", "updated_at",
	}).AddRow(
		newest[:], int64(42), "recordings", "a.mp4_1770000000.mp4", "a.mp4",
		"video/mp4", int64(1024*1024), model.RecordingStatusValidated, nil, []byte(`{}`),
		true, int64(1), "Recording matches period 1.",
		nil, nil, nil, created, created,
	).AddRow(
		oldest[:], int64(42), "staging", "b.mp4_1770000001", "b.mp4",
		nil, nil, model.RecordingStatusPending, nil, []byte(`{}`),
		false, nil, "",
		nil, nil, nil, created.Add(-time.Hour), created.Add(-time.Hour),
	)

	mock.ExpectQuery(regexp.QuoteMeta(`
      SELECT id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at, created_at, updated_at
      FROM recordings
      WHERE faculty_id = ?
      ORDER BY created_at DESC
      LIMIT ? OFFSET ?`)).
		WithArgs(int64(42), 50, 0).
		WillReturnRows(rows)

	got, err := repo.ListByFaculty(context.Background(), 42, port.ListRecordingsOptions{Limit: 50})
	if err != nil {
		t.Fatalf("ListByFaculty() returned unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 recordings, got %d", len(got))
	}
	if got[0].ID != newest {
		t.Errorf("expected first recording #%s, got #%s", newest, got[0].ID)
	}
	if got[0].MatchedPeriod == nil || *got[0].MatchedPeriod != 1 {
		t.Errorf("expected matched period 1, got %v", got[0].MatchedPeriod)
	}
	if got[1].Status != model.RecordingStatusPending {
		t.Errorf("expected status %q, got %q", model.RecordingStatusPending, got[1].Status)
	}
	if got[1].MimeType != nil {
		t.Errorf("expected no mime type, got %q", *got[1].MimeType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_ListByFaculty_AllFilters(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	created := time.Date(2026, 2, 12, 9, 50, 0, 0, time.UTC)
	status := model.RecordingStatusValidated
	qualified := true
	since := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "faculty_id", "bucket", "object_key", "original_filename",
		"mime_type", "size_bytes", "status", "failure_message", "metadata",
		"is_qualified", "matched_period", "validation_message",
		"video_start_time", "video_end_time", "archived_at", "created_at", "updated_at",
	}).AddRow(
		mockID[:], int64(42), "recordings", "a.mp4_1770000000.mp4", "a.mp4",
		"video/mp4", int64(1024*1024), status, nil, []byte(`{}`),
		true, int64(1), "Recording matches period 1.",
		nil, nil, nil, created, created,
	)

	mock.ExpectQuery(regexp.QuoteMeta(`
      SELECT id, faculty_id, bucket, object_key, original_filename, mime_type, size_bytes, status, failure_message, metadata, is_qualified, matched_period, validation_message, video_start_time, video_end_time, archived_at, created_at, updated_at
      FROM recordings
      WHERE faculty_id = ?
        AND status = ?
        AND is_qualified = ?
        AND created_at >= ?
      ORDER BY created_at DESC
      LIMIT ? OFFSET ?`)).
		WithArgs(int64(42), status, qualified, since, 20, 10).
		WillReturnRows(rows)

	opts := port.ListRecordingsOptions{
		Status:    &status,
		Qualified: &qualified,
		Since:     &since,
		Limit:     20,
		Offset:    10,
	}
	got, err := repo.ListByFaculty(context.Background(), 42, opts)
	if err != nil {
		t.Fatalf("ListByFaculty() returned unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(got))
	}
	if got[0].ID != mockID {
		t.Errorf("expected recording #%s, got #%s", mockID, got[0].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_ListByFaculty_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mock.ExpectQuery("FROM recordings").
		WillReturnError(errors.New("db.Query failed"))

	_, err = repo.ListByFaculty(context.Background(), 42, port.ListRecordingsOptions{Limit: 50})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "db.Query failed" {
		t.Errorf("expected 'db.Query failed', got %q", err.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_ListQualifiedUnarchivedBefore_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	first := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	second := db.UUID(uuid.MustParse("bbbbbbbb-cccc-dddd-eeee-ffffffffffff"))
	before := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow(first[:]).
		AddRow(second[:])

	mock.ExpectQuery(regexp.QuoteMeta(`
      SELECT id
      FROM recordings
      WHERE status = ?
        AND is_qualified = 1
        AND archived_at IS NULL
        AND updated_at < ?
      ORDER BY updated_at
    `)).
		WithArgs(model.RecordingStatusValidated, before).
		WillReturnRows(rows)

	got, err := repo.ListQualifiedUnarchivedBefore(context.Background(), before)
	if err != nil {
		t.Fatalf("ListQualifiedUnarchivedBefore() returned unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 IDs, got %d", len(got))
	}
	if got[0] != first || got[1] != second {
		t.Errorf("expected IDs [%s %s], got %v", first, second, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordingRepository_ListQualifiedUnarchivedBefore_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewRecordingRepository(sqlDB)

	mock.ExpectQuery("SELECT id").
		WillReturnError(errors.New("db.Query failed"))

	_, err = repo.ListQualifiedUnarchivedBefore(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
