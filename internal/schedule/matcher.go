// Package schedule decides whether a recording window plausibly lines up
// with one of a faculty member's scheduled periods.
package schedule

import (
	"fmt"
	"time"

	"github.com/metaview/recordings-ms-go/internal/mediainfo"
	"github.com/metaview/recordings-ms-go/internal/model"
)

const (
	// StartTolerance is how long after the bell a recording may start and
	// still count toward that period. Recordings started before the bell
	// never match: the previous period's tail would otherwise qualify.
	StartTolerance = 10 * time.Minute

	// MinDurationFraction is the share of the period a recording must
	// cover to qualify, keeping short clips from matching a full class.
	MinDurationFraction = 0.5
)

const clockLayout = "03:04 PM"

// Window is the wall-clock span a video was recorded over, derived from
// the file's creation time and its duration.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration is never negative: a window whose end precedes its start
// collapses to zero.
func (w Window) Duration() time.Duration {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}

// Result is the qualification decision. Qualified implies Matched is set;
// Message is always non-empty and states the most specific reason.
type Result struct {
	Qualified bool
	Matched   *model.PeriodTiming
	Message   string
}

type candidate struct {
	period model.PeriodTiming
	start  time.Time
	end    time.Time
}

// Match checks the recording window against the day's periods. A nil
// window means no timestamp could be recovered at all, which gets its own
// stable message and needs no schedule lookup. Periods with unparseable
// times are skipped.
func Match(w *Window, periods []model.PeriodTiming) Result {
	if w == nil || w.Start.IsZero() {
		return Result{Message: "No timestamp data could be recovered from the video file."}
	}
	if len(periods) == 0 {
		return Result{Message: "No schedule is configured for this day."}
	}

	var candidates []candidate
	for _, p := range periods {
		start, err := clockOn(w.Start, p.StartTime)
		if err != nil {
			continue
		}
		end, err := clockOn(w.Start, p.EndTime)
		if err != nil || !start.Before(end) {
			continue
		}
		if w.Start.Before(start) || w.Start.After(start.Add(StartTolerance)) {
			continue
		}
		candidates = append(candidates, candidate{period: p, start: start, end: end})
	}

	if len(candidates) == 0 {
		return Result{Message: fmt.Sprintf(
			"Recording started at %s, which does not match any scheduled period.",
			w.Start.Format(clockLayout),
		)}
	}

	// Periods are assumed non-overlapping, but a misconfigured schedule can
	// still produce several candidates; the one starting closest to the
	// recording wins.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if absDuration(w.Start.Sub(c.start)) < absDuration(w.Start.Sub(best.start)) {
			best = c
		}
	}

	needed := time.Duration(MinDurationFraction * float64(best.end.Sub(best.start)))
	if w.Duration() < needed {
		matched := best.period
		return Result{
			Matched: &matched,
			Message: fmt.Sprintf(
				"Video is too short for period %d (%s): recorded %s, need at least %s.",
				best.period.PeriodNumber, best.period.DisplayTime(),
				mediainfo.FormatDuration(w.Duration().Seconds()),
				mediainfo.FormatDuration(needed.Seconds()),
			),
		}
	}

	matched := best.period
	return Result{
		Qualified: true,
		Matched:   &matched,
		Message: fmt.Sprintf(
			"Video started at %s and matches period %d (%s).",
			w.Start.Format(clockLayout), best.period.PeriodNumber, best.period.DisplayTime(),
		),
	}
}

// clockOn anchors a stored time-of-day string to the calendar day of ref,
// in ref's location.
func clockOn(ref time.Time, clock string) (time.Time, error) {
	var parsed time.Time
	var err error
	for _, layout := range []string{clockLayout, "15:04"} {
		parsed, err = time.Parse(layout, clock)
		if err == nil {
			return time.Date(ref.Year(), ref.Month(), ref.Day(),
				parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable period time %q: %w", clock, err)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
