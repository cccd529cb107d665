package recording

import (
	"context"
	"fmt"
	"time"

	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type todayScheduleSrv struct {
	schedules port.ScheduleRepository
	repo      port.RecordingRepository
}

// compile-time check: *todayScheduleSrv must satisfy port.TodayScheduleGetter
var _ port.TodayScheduleGetter = (*todayScheduleSrv)(nil)

// NewTodayScheduleGetter constructs a TodayScheduleGetter implementation.
func NewTodayScheduleGetter(schedules port.ScheduleRepository, repo port.RecordingRepository) port.TodayScheduleGetter {
	return &todayScheduleSrv{schedules: schedules, repo: repo}
}

// GetTodaySchedule lists the faculty member's classes for today, each
// flagged with whether a recording already covers it.
func (s *todayScheduleSrv) GetTodaySchedule(ctx context.Context, facultyID int64) (*port.TodayScheduleOutput, error) {
	now := time.Now()

	classes, err := s.schedules.ClassesForFacultyDay(ctx, facultyID, now.Weekday())
	if err != nil {
		return nil, fmt.Errorf("loading schedule failed: %w", err)
	}

	byPeriod, err := s.todayRecordingsByPeriod(ctx, facultyID, now)
	if err != nil {
		return nil, err
	}

	out := &port.TodayScheduleOutput{
		Date:    now.Format("2006-01-02"),
		Weekday: now.Weekday().String(),
		Classes: make([]port.TodayClassOutput, 0, len(classes)),
	}
	for _, class := range classes {
		c := port.TodayClassOutput{
			Period:      class.Period.PeriodNumber,
			Subject:     class.Subject,
			ClassGroup:  class.ClassGroup,
			DisplayTime: class.Period.DisplayTime(),
		}
		if rec, ok := byPeriod[class.Period.PeriodNumber]; ok {
			c.Uploaded = true
			qualified := rec.IsQualified
			c.Qualified = &qualified
			id := rec.ID
			c.RecordingID = &id
		}
		out.Classes = append(out.Classes, c)
	}
	return out, nil
}

// todayRecordingsByPeriod indexes today's validated uploads by the period
// they matched. Listing is newest first, so the freshest upload wins a
// period.
func (s *todayScheduleSrv) todayRecordingsByPeriod(ctx context.Context, facultyID int64, now time.Time) (map[int]*model.Recording, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	recs, err := s.repo.ListByFaculty(ctx, facultyID, port.ListRecordingsOptions{
		Since: &midnight,
		Limit: maxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading today's recordings failed: %w", err)
	}

	byPeriod := make(map[int]*model.Recording, len(recs))
	for i := range recs {
		rec := &recs[i]
		if rec.MatchedPeriod == nil {
			continue
		}
		if _, seen := byPeriod[*rec.MatchedPeriod]; seen {
			continue
		}
		byPeriod[*rec.MatchedPeriod] = rec
	}
	return byPeriod, nil
}
