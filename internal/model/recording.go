package model

import (
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
)

const (
	RecordingStatusPending   = "pending"
	RecordingStatusValidated = "validated"
	RecordingStatusFailed    = "failed"
)

// Recording is one uploaded class recording and its validation outcome.
// Status covers the upload lifecycle; IsQualified is the schedule decision
// and is only meaningful once Status is "validated".
type Recording struct {
	ID               db.UUID  `json:"id"`
	FacultyID        int64    `json:"faculty_id"`
	Bucket           string   `json:"bucket"`
	ObjectKey        string   `json:"object_key"`
	OriginalFilename string   `json:"original_filename"`
	MimeType         *string  `json:"mime_type,omitempty"`
	SizeBytes        *int64   `json:"size_bytes,omitempty"`
	Status           string   `json:"status"`
	FailureMessage   *string  `json:"failure_message,omitempty"`
	Metadata         Metadata `json:"metadata"`

	IsQualified       bool       `json:"is_qualified"`
	MatchedPeriod     *int       `json:"matched_period,omitempty"`
	ValidationMessage string     `json:"validation_message"`
	VideoStartTime    *time.Time `json:"video_start_time,omitempty"`
	VideoEndTime      *time.Time `json:"video_end_time,omitempty"`

	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
