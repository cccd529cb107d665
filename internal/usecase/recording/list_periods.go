package recording

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/port"
)

type periodsListerSrv struct {
	schedules port.ScheduleRepository
}

// compile-time check: *periodsListerSrv must satisfy port.PeriodsLister
var _ port.PeriodsLister = (*periodsListerSrv)(nil)

// NewPeriodsLister constructs a PeriodsLister implementation.
func NewPeriodsLister(schedules port.ScheduleRepository) port.PeriodsLister {
	return &periodsListerSrv{schedules}
}

// ListPeriods returns the configured bell schedule in period order.
func (s *periodsListerSrv) ListPeriods(ctx context.Context) ([]port.PeriodOutput, error) {
	periods, err := s.schedules.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]port.PeriodOutput, 0, len(periods))
	for _, p := range periods {
		out = append(out, port.PeriodOutput{
			Period:      p.PeriodNumber,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			DisplayTime: p.DisplayTime(),
		})
	}
	return out, nil
}
