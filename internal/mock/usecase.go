package mock

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// MockRecordingGetter implements port.RecordingGetter for tests.
type MockRecordingGetter struct {
	Out       *port.GetRecordingOutput
	Err       error
	Called    bool
	FacultyID int64
}

func (m *MockRecordingGetter) GetRecording(ctx context.Context, facultyID int64, id db.UUID) (*port.GetRecordingOutput, error) {
	m.Called = true
	m.FacultyID = facultyID
	return m.Out, m.Err
}

// MockUploadLinkGenerator implements port.UploadLinkGenerator for tests.
type MockUploadLinkGenerator struct {
	Out    port.GenerateUploadLinkOutput
	Err    error
	Called bool
	In     port.GenerateUploadLinkInput
}

func (m *MockUploadLinkGenerator) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockUploadValidator implements port.UploadValidator for tests.
type MockUploadValidator struct {
	Out    *port.ValidateUploadOutput
	Err    error
	Called bool
	In     port.ValidateUploadInput
}

func (m *MockUploadValidator) ValidateUpload(ctx context.Context, in port.ValidateUploadInput) (*port.ValidateUploadOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockRecordingLister implements port.RecordingLister for tests.
type MockRecordingLister struct {
	Out    []port.RecordingSummaryOutput
	Err    error
	Called bool
	In     port.ListRecordingsInput
}

func (m *MockRecordingLister) ListRecordings(ctx context.Context, in port.ListRecordingsInput) ([]port.RecordingSummaryOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockRecordingDeleter implements port.RecordingDeleter for tests.
type MockRecordingDeleter struct {
	Err       error
	Called    bool
	ID        db.UUID
	FacultyID int64
}

func (m *MockRecordingDeleter) DeleteRecording(ctx context.Context, facultyID int64, id db.UUID) error {
	m.Called = true
	m.FacultyID = facultyID
	m.ID = id
	return m.Err
}

// MockTodayScheduleGetter implements port.TodayScheduleGetter for tests.
type MockTodayScheduleGetter struct {
	Out       *port.TodayScheduleOutput
	Err       error
	Called    bool
	FacultyID int64
}

func (m *MockTodayScheduleGetter) GetTodaySchedule(ctx context.Context, facultyID int64) (*port.TodayScheduleOutput, error) {
	m.Called = true
	m.FacultyID = facultyID
	return m.Out, m.Err
}

// MockPeriodsLister implements port.PeriodsLister for tests.
type MockPeriodsLister struct {
	Out    []port.PeriodOutput
	Err    error
	Called bool
}

func (m *MockPeriodsLister) ListPeriods(ctx context.Context) ([]port.PeriodOutput, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockRecordingArchiver implements port.RecordingArchiver for tests.
type MockRecordingArchiver struct {
	Err    error
	Called bool
	IDs    []db.UUID
}

func (m *MockRecordingArchiver) ArchiveRecording(ctx context.Context, id db.UUID) error {
	m.Called = true
	m.IDs = append(m.IDs, id)
	return m.Err
}
