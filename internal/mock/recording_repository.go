package mock

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// MockRecordingRepo implements repository operations for tests.
type MockRecordingRepo struct {
	RecordingRecord *model.Recording
	ListRecordings  []model.Recording

	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	ListErr    error
	ListIDsErr error
	ListIDsOut []db.UUID
	ListBefore time.Time

	GetCalled     bool
	Created       *model.Recording
	Updated       *model.Recording
	DeleteCalled  bool
	DeletedID     db.UUID
	ListCalled    bool
	ListFacultyID int64
	ListOpts      port.ListRecordingsOptions
	ListIDsCalled bool
}

func (m *MockRecordingRepo) GetByID(ctx context.Context, id db.UUID) (*model.Recording, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.RecordingRecord, nil
}

func (m *MockRecordingRepo) Update(ctx context.Context, recording *model.Recording) error {
	m.Updated = recording
	return m.UpdateErr
}

func (m *MockRecordingRepo) Create(ctx context.Context, recording *model.Recording) error {
	m.Created = recording
	return m.CreateErr
}

func (m *MockRecordingRepo) Delete(ctx context.Context, id db.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockRecordingRepo) ListByFaculty(ctx context.Context, facultyID int64, opts port.ListRecordingsOptions) ([]model.Recording, error) {
	m.ListCalled = true
	m.ListFacultyID = facultyID
	m.ListOpts = opts
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListRecordings, nil
}

func (m *MockRecordingRepo) ListQualifiedUnarchivedBefore(ctx context.Context, before time.Time) ([]db.UUID, error) {
	m.ListIDsCalled = true
	m.ListBefore = before
	if m.ListIDsErr != nil {
		return nil, m.ListIDsErr
	}
	return m.ListIDsOut, nil
}
