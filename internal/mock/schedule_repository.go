package mock

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/model"
)

// MockScheduleRepo implements schedule lookups for tests.
type MockScheduleRepo struct {
	PeriodsOut []model.PeriodTiming
	ClassesOut []model.ScheduledClass

	ListPeriodsErr error
	PeriodsErr     error
	ClassesErr     error

	ListPeriodsCalled bool
	PeriodsCalled     bool
	ClassesCalled     bool
	PeriodsFacultyID  int64
	PeriodsWeekday    time.Weekday
}

func (m *MockScheduleRepo) ListPeriods(ctx context.Context) ([]model.PeriodTiming, error) {
	m.ListPeriodsCalled = true
	if m.ListPeriodsErr != nil {
		return nil, m.ListPeriodsErr
	}
	return m.PeriodsOut, nil
}

func (m *MockScheduleRepo) PeriodsForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.PeriodTiming, error) {
	m.PeriodsCalled = true
	m.PeriodsFacultyID = facultyID
	m.PeriodsWeekday = weekday
	if m.PeriodsErr != nil {
		return nil, m.PeriodsErr
	}
	return m.PeriodsOut, nil
}

func (m *MockScheduleRepo) ClassesForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.ScheduledClass, error) {
	m.ClassesCalled = true
	m.PeriodsFacultyID = facultyID
	m.PeriodsWeekday = weekday
	if m.ClassesErr != nil {
		return nil, m.ClassesErr
	}
	return m.ClassesOut, nil
}
