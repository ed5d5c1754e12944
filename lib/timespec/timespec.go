// Package timespec resolves a human-written temporal specification into the
// single concrete instant that satisfies it.
//
// A specification is an unordered bag of string tokens: an ISO date
// ("2024-03-15"), a time fragment ("09:30", "9::15"), a weekday name
// ("fri"), a modulus marker ("30m" for minutes divisible by 30), or an
// epoch-second timestamp ("1700000000"). Each token compiles into one or
// more predicates over a calendar field, and the search walks candidate
// instants forward or backward from a reference instant until one satisfies
// every predicate:
//
//	at, err := timespec.Resolve([]string{"fri", "09:30"}, timespec.Options{
//	    Start:    time.Now(),
//	    Location: loc,
//	})
//
// The generative search is bounded by a ten-year horizon; alternatively an
// explicit candidate list restricts the search to exactly that list. All
// results carry the configured location.
package timespec

import (
	"fmt"
	"iter"
	"time"
)

// Options configures a resolution. The zero value searches forward from the
// current instant in UTC.
type Options struct {
	// Candidates restricts the search to exactly this list of instants.
	// A nil slice means generative search over the horizon; a non-nil
	// empty slice is an error.
	Candidates []time.Time

	// Direction selects forward (default) or backward search.
	Direction Direction

	// Start is the reference instant. The zero value means the current
	// time.
	Start time.Time

	// Location is the timezone all wall-clock reasoning happens in.
	// Nil means UTC.
	Location *time.Location

	// now overrides the clock, for tests.
	now func() time.Time
}

// Classify compiles the spec tokens into their predicate buckets without
// running the search. The window is still computed, since date tokens are
// validated against the start instant and direction.
func Classify(tokens []string, opts Options) (PredicateSet, error) {
	win, _, err := newWindow(opts)
	if err != nil {
		return PredicateSet{}, err
	}
	return classify(tokens, win)
}

// Resolve returns the first instant, in search order, satisfying every
// token of the spec. Failures are wrapped sentinel errors: ErrMalformedToken
// and ErrDirectionViolation from classification, ErrEmptyCandidates and
// ErrEmptyDomain from domain construction, and ErrNoMatch when the bounded
// search exhausts without a hit.
func Resolve(tokens []string, opts Options) (time.Time, error) {
	win, candidates, err := newWindow(opts)
	if err != nil {
		return time.Time{}, err
	}

	set, err := classify(tokens, win)
	if err != nil {
		return time.Time{}, err
	}

	dates, times, err := buildDomains(set, win)
	if err != nil {
		return time.Time{}, err
	}

	instantPreds := appendInstantPredicates(set.Instants, dates, times, win)

	var stream iter.Seq[time.Time]
	if candidates != nil {
		stream = sliceSeq(candidates)
	} else {
		stream = combine(dates, times, win.Location)
	}

	for t := range filterSeq(instantPreds, stream) {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("no instant in the scan window satisfies the spec: %w", ErrNoMatch)
}

// buildDomains materializes the admissible date and time domains for the
// window, coupling any scalar-field constraints into the composite filters.
func buildDomains(set PredicateSet, win Window) ([]Date, []TimeOfDay, error) {
	years, err := collectDomain("year", set.Years, yearRange(win.Start.Year(), win.End.Year(), win.Direction))
	if err != nil {
		return nil, nil, err
	}
	months, err := collectDomain("month", set.Months, intRange(1, 12))
	if err != nil {
		return nil, nil, err
	}
	days, err := collectDomain("day", set.Days, intRange(1, 31))
	if err != nil {
		return nil, nil, err
	}

	datePreds := set.Dates
	if len(set.Years) > 0 || len(set.Months) > 0 || len(set.Days) > 0 {
		datePreds = append(datePreds[:len(datePreds):len(datePreds)],
			DatePredicate{Op: DateYearIn, Values: years},
			DatePredicate{Op: DateMonthIn, Values: months},
			DatePredicate{Op: DateDayIn, Values: days},
		)
	}
	dates, err := collectDomain("date", datePreds, win.dateSpan())
	if err != nil {
		return nil, nil, err
	}

	hours, err := collectDomain("hour", set.Hours, intRange(0, 23))
	if err != nil {
		return nil, nil, err
	}
	minutes, err := collectDomain("minute", set.Minutes, intRange(0, 59))
	if err != nil {
		return nil, nil, err
	}
	seconds, err := collectDomain("second", set.Seconds, intRange(0, 59))
	if err != nil {
		return nil, nil, err
	}

	timePreds := set.Times
	if len(set.Hours) > 0 || len(set.Minutes) > 0 || len(set.Seconds) > 0 {
		timePreds = append(timePreds[:len(timePreds):len(timePreds)],
			TimePredicate{Op: TimeHourIn, Values: hours},
			TimePredicate{Op: TimeMinuteIn, Values: minutes},
			TimePredicate{Op: TimeSecondIn, Values: seconds},
		)
	}
	times, err := collectDomain("time", timePreds, timeRange(win.Direction == Backward))
	if err != nil {
		return nil, nil, err
	}

	return dates, times, nil
}

// appendInstantPredicates extends the instant bucket with membership in the
// materialized date and time domains plus the directional boundary relative
// to the start instant. The boundary keeps candidate-list mode honest even
// when the list's order does not naturally respect the reference instant.
func appendInstantPredicates(preds []InstantPredicate, dates []Date, times []TimeOfDay, win Window) []InstantPredicate {
	dateSet := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		dateSet[d] = struct{}{}
	}
	timeSet := make(map[TimeOfDay]struct{}, len(times))
	for _, td := range times {
		timeSet[td] = struct{}{}
	}

	boundary := InstantPredicate{Op: InstantNotBefore, At: win.Start}
	if win.Direction == Backward {
		boundary = InstantPredicate{Op: InstantNotAfter, At: win.Start}
	}

	out := make([]InstantPredicate, 0, len(preds)+3)
	out = append(out, preds...)
	return append(out,
		InstantPredicate{Op: InstantDateIn, Dates: dateSet},
		InstantPredicate{Op: InstantTimeIn, Times: timeSet},
		boundary,
	)
}
