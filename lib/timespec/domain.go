package timespec

import (
	"fmt"
	"iter"
	"time"
)

// matcher is the common shape of all predicate variants, one evaluation
// domain each.
type matcher[T any] interface {
	Matches(T) bool
}

// matchesAll reports whether v satisfies every predicate, short-circuiting
// on the first failure.
func matchesAll[T any, P matcher[T]](preds []P, v T) bool {
	for _, p := range preds {
		if !p.Matches(v) {
			return false
		}
	}
	return true
}

// filterSeq lazily yields the candidates satisfying every predicate,
// preserving input order. Nothing is materialized; the caller controls how
// far the underlying sequence is driven.
func filterSeq[T any, P matcher[T]](preds []P, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !matchesAll(preds, v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// collectDomain drains a filtered sequence into the ordered admissible
// domain for a field. An empty result means the predicates exclude every
// candidate, which is a hard failure.
func collectDomain[T any, P matcher[T]](field string, preds []P, seq iter.Seq[T]) ([]T, error) {
	var domain []T
	for v := range filterSeq(preds, seq) {
		domain = append(domain, v)
	}
	if len(domain) == 0 {
		return nil, fmt.Errorf("%s: %w", field, ErrEmptyDomain)
	}
	return domain, nil
}

// intRange yields lo..hi inclusive, ascending.
func intRange(lo, hi int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := lo; v <= hi; v++ {
			if !yield(v) {
				return
			}
		}
	}
}

// yearRange yields the years from start to end inclusive, stepped in the
// search direction. Years are the only scalar field whose natural range
// follows the direction; the others always ascend.
func yearRange(start, end int, dir Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		if dir == Backward {
			for y := start; y >= end; y-- {
				if !yield(y) {
					return
				}
			}
			return
		}
		for y := start; y <= end; y++ {
			if !yield(y) {
				return
			}
		}
	}
}

// dateRange walks one day at a time from start toward end, end exclusive.
// An end before start walks backward. The range is never materialized.
func dateRange(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if end.Before(start) {
			for d := start; d.After(end); d = d.AddDays(-1) {
				if !yield(d) {
					return
				}
			}
			return
		}
		for d := start; d.Before(end); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// timeRange sweeps the full day of wall-clock seconds, 00:00:00 through
// 23:59:59, descending instead when reverse is set.
func timeRange(reverse bool) iter.Seq[TimeOfDay] {
	return func(yield func(TimeOfDay) bool) {
		if reverse {
			for hour := 23; hour >= 0; hour-- {
				for minute := 59; minute >= 0; minute-- {
					for second := 59; second >= 0; second-- {
						if !yield(TimeOfDay{Hour: hour, Minute: minute, Second: second}) {
							return
						}
					}
				}
			}
			return
		}
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute++ {
				for second := 0; second < 60; second++ {
					if !yield(TimeOfDay{Hour: hour, Minute: minute, Second: second}) {
						return
					}
				}
			}
		}
	}
}

// combine lazily crosses the date and time domains into concrete instants in
// the given location, dates outermost so candidates stay in search order.
// A wall-clock combination that does not exist in the location (a DST gap)
// normalizes to a different clock reading and is skipped.
func combine(dates []Date, times []TimeOfDay, loc *time.Location) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, d := range dates {
			for _, td := range times {
				t := time.Date(d.Year, d.Month, d.Day, td.Hour, td.Minute, td.Second, 0, loc)
				if DateOf(t) != d || TimeOfDayOf(t) != td {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// sliceSeq adapts an already-ordered slice to the lazy sequence interface.
func sliceSeq[T any](values []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}
