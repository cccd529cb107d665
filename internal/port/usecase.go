package port

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
)

type UUIDGen func() db.UUID

// UploadLinkGenerator returns a presigned link to upload a recording into
// the staging bucket.
type UploadLinkGenerator interface {
	GenerateUploadLink(ctx context.Context, in GenerateUploadLinkInput) (GenerateUploadLinkOutput, error)
}
type GenerateUploadLinkInput struct {
	FacultyID int64
	Name      string
}
type GenerateUploadLinkOutput struct {
	ID  db.UUID `json:"id"`
	URL string  `json:"url"`
}

// ValidationOutput mirrors the persisted qualification decision.
type ValidationOutput struct {
	IsQualified       bool       `json:"is_qualified"`
	MatchedPeriod     *int       `json:"matched_period"`
	MatchedPeriodTime string     `json:"matched_period_time,omitempty"`
	Message           string     `json:"message"`
	VideoStartTime    *time.Time `json:"video_start_time,omitempty"`
	VideoEndTime      *time.Time `json:"video_end_time,omitempty"`
}

// UploadValidator inspects a staged upload, matches it against the
// faculty's schedule for the day and finalises it into the recordings
// bucket.
type UploadValidator interface {
	ValidateUpload(ctx context.Context, in ValidateUploadInput) (*ValidateUploadOutput, error)
}
type ValidateUploadInput struct {
	ID           db.UUID
	FacultyID    int64
	TargetPeriod *int
}
type ValidateUploadOutput struct {
	ID         db.UUID          `json:"id"`
	Status     string           `json:"status"`
	Metadata   model.Metadata   `json:"metadata"`
	Validation ValidationOutput `json:"validation"`
}

// RecordingGetter retrieves recording information from the repository and
// storage. Recordings owned by another faculty member surface as not found.
type RecordingGetter interface {
	GetRecording(ctx context.Context, facultyID int64, id db.UUID) (*GetRecordingOutput, error)
}
type GetRecordingOutput struct {
	ValidUntil time.Time        `json:"valid_until"`
	URL        string           `json:"url"`
	Status     string           `json:"status"`
	Metadata   model.Metadata   `json:"metadata"`
	Validation ValidationOutput `json:"validation"`
	ArchivedAt *time.Time       `json:"archived_at,omitempty"`
}

// RecordingLister lists a faculty member's recordings, newest first.
type RecordingLister interface {
	ListRecordings(ctx context.Context, in ListRecordingsInput) ([]RecordingSummaryOutput, error)
}
type ListRecordingsInput struct {
	FacultyID int64
	Status    *string
	Qualified *bool
	Limit     int
	Offset    int
}
type RecordingSummaryOutput struct {
	ID                db.UUID   `json:"id"`
	Filename          string    `json:"filename"`
	Status            string    `json:"status"`
	IsQualified       bool      `json:"is_qualified"`
	MatchedPeriod     *int      `json:"matched_period"`
	ValidationMessage string    `json:"validation_message"`
	Duration          string    `json:"duration"`
	Resolution        string    `json:"resolution"`
	UploadedAt        time.Time `json:"uploaded_at"`
}

// RecordingDeleter deletes a recording and its file. Recordings owned by
// another faculty member surface as not found.
type RecordingDeleter interface {
	DeleteRecording(ctx context.Context, facultyID int64, id db.UUID) error
}

// TodayScheduleGetter reports today's classes with their upload status.
type TodayScheduleGetter interface {
	GetTodaySchedule(ctx context.Context, facultyID int64) (*TodayScheduleOutput, error)
}
type TodayClassOutput struct {
	Period      int      `json:"period"`
	Subject     string   `json:"subject"`
	ClassGroup  string   `json:"class_group"`
	DisplayTime string   `json:"display_time"`
	Uploaded    bool     `json:"uploaded"`
	Qualified   *bool    `json:"qualified,omitempty"`
	RecordingID *db.UUID `json:"recording_id,omitempty"`
}
type TodayScheduleOutput struct {
	Date    string             `json:"date"`
	Weekday string             `json:"weekday"`
	Classes []TodayClassOutput `json:"classes"`
}

// PeriodsLister returns the configured bell schedule.
type PeriodsLister interface {
	ListPeriods(ctx context.Context) ([]PeriodOutput, error)
}
type PeriodOutput struct {
	Period      int    `json:"period"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DisplayTime string `json:"display_time"`
}

// RecordingArchiver moves a qualified recording into cold storage.
type RecordingArchiver interface {
	ArchiveRecording(ctx context.Context, id db.UUID) error
}

// BacklogArchiver triggers archiving for stale qualified recordings.
type BacklogArchiver interface {
	ArchiveBacklog(ctx context.Context) error
}
