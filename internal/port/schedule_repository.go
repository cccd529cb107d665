package port

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/model"
)

// ScheduleRepository reads the bell schedule and faculty timetables.
type ScheduleRepository interface {
	// ListPeriods returns the full bell schedule ordered by period number.
	ListPeriods(ctx context.Context) ([]model.PeriodTiming, error)
	// PeriodsForFacultyDay returns the periods a faculty member teaches on
	// the given weekday, ordered by period number.
	PeriodsForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.PeriodTiming, error)
	// ClassesForFacultyDay returns the same slots with subject and class
	// group attached, for the day view.
	ClassesForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.ScheduledClass, error)
}
