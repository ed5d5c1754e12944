package timespec

import (
	"fmt"
	"iter"
	"sort"
	"time"
)

// Direction selects which way the search walks from the reference instant.
type Direction int

const (
	// Forward searches ascending from the start instant.
	Forward Direction = iota
	// Backward searches descending from the start instant.
	Backward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// horizonYears bounds the generative search window. Scanning ten years of
// days keeps termination guaranteed even for unsatisfiable specs.
const horizonYears = 10

// Window is the resolved scan window: the effective start and end instants,
// the search direction, and the location all wall-clock reasoning happens in.
type Window struct {
	Start     time.Time
	End       time.Time
	Direction Direction
	Location  *time.Location
}

// newWindow computes the scan window from the caller's options. In candidate
// mode it also returns the candidate list, re-expressed in the search
// location and sorted in search order; in generative mode the returned slice
// is nil and the end instant is the start shifted by the horizon.
func newWindow(opts Options) (Window, []time.Time, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	if opts.Candidates != nil {
		if len(opts.Candidates) == 0 {
			return Window{}, nil, fmt.Errorf("explicit candidate mode: %w", ErrEmptyCandidates)
		}
		candidates := make([]time.Time, len(opts.Candidates))
		for i, c := range opts.Candidates {
			candidates[i] = c.In(loc)
		}
		sort.Slice(candidates, func(i, j int) bool {
			if opts.Direction == Backward {
				return candidates[i].After(candidates[j])
			}
			return candidates[i].Before(candidates[j])
		})
		return Window{
			Start:     candidates[0],
			End:       candidates[len(candidates)-1],
			Direction: opts.Direction,
			Location:  loc,
		}, candidates, nil
	}

	start := opts.Start
	if start.IsZero() {
		now := opts.now
		if now == nil {
			now = time.Now
		}
		start = now()
	}
	start = start.In(loc)

	return Window{
		Start:     start,
		End:       horizonEnd(start, opts.Direction),
		Direction: opts.Direction,
		Location:  loc,
	}, nil, nil
}

// horizonEnd shifts start by the horizon in the search direction. A Feb 29
// start clamps to the 28th, since the target year may not be a leap year.
func horizonEnd(start time.Time, dir Direction) time.Time {
	year := start.Year() + horizonYears
	if dir == Backward {
		year = start.Year() - horizonYears
	}
	day := start.Day()
	if start.Month() == time.February && day == 29 {
		day = 28
	}
	return time.Date(year, start.Month(), day,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(),
		start.Location())
}

// dateSpan returns the lazy calendar-day walk for the window: from the start
// date to one day past the end date in the search direction, end exclusive.
func (w Window) dateSpan() iter.Seq[Date] {
	first := DateOf(w.Start)
	last := DateOf(w.End)
	if w.Direction == Backward {
		return dateRange(first, last.AddDays(-1))
	}
	return dateRange(first, last.AddDays(1))
}

// checkDateDirection rejects an explicit date token lying on the wrong side
// of the start instant for the search direction.
func (w Window) checkDateDirection(d Date) error {
	startDate := DateOf(w.Start)
	if w.Direction == Backward && d.After(startDate) {
		return fmt.Errorf("date %s is after start %s in a backward search: %w",
			d, startDate, ErrDirectionViolation)
	}
	if w.Direction == Forward && d.Before(startDate) {
		return fmt.Errorf("date %s is before start %s in a forward search: %w",
			d, startDate, ErrDirectionViolation)
	}
	return nil
}
