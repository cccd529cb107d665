package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type ScheduleRepository struct {
	db *sql.DB
}

// compile-time check: *ScheduleRepository must satisfy port.ScheduleRepository
var _ port.ScheduleRepository = (*ScheduleRepository)(nil)

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListPeriods(ctx context.Context) ([]model.PeriodTiming, error) {
	log.Printf("fetching the bell schedule from the database...")

	const query = `
      SELECT period_number, start_time, end_time
      FROM period_timings
      ORDER BY period_number
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var periods []model.PeriodTiming
	for rows.Next() {
		var p model.PeriodTiming
		if err := rows.Scan(&p.PeriodNumber, &p.StartTime, &p.EndTime); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *ScheduleRepository) PeriodsForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.PeriodTiming, error) {
	log.Printf("fetching periods for faculty #%d on %s...", facultyID, weekday)

	const query = `
      SELECT pt.period_number, pt.start_time, pt.end_time
      FROM timetable_entries te
      JOIN period_timings pt ON pt.period_number = te.period_number
      WHERE te.faculty_id = ? AND te.weekday = ?
      ORDER BY pt.period_number
    `
	rows, err := r.db.QueryContext(ctx, query, facultyID, int(weekday))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var periods []model.PeriodTiming
	for rows.Next() {
		var p model.PeriodTiming
		if err := rows.Scan(&p.PeriodNumber, &p.StartTime, &p.EndTime); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *ScheduleRepository) ClassesForFacultyDay(ctx context.Context, facultyID int64, weekday time.Weekday) ([]model.ScheduledClass, error) {
	log.Printf("fetching classes for faculty #%d on %s...", facultyID, weekday)

	const query = `
      SELECT pt.period_number, pt.start_time, pt.end_time, te.subject, te.class_group
      FROM timetable_entries te
      JOIN period_timings pt ON pt.period_number = te.period_number
      WHERE te.faculty_id = ? AND te.weekday = ?
      ORDER BY pt.period_number
    `
	rows, err := r.db.QueryContext(ctx, query, facultyID, int(weekday))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var classes []model.ScheduledClass
	for rows.Next() {
		var c model.ScheduledClass
		if err := rows.Scan(&c.Period.PeriodNumber, &c.Period.StartTime, &c.Period.EndTime, &c.Subject, &c.ClassGroup); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}
