package timespec

import "time"

// Predicates are tagged variants rather than closures: each variant carries
// its operands as plain fields and evaluates through a single Matches
// dispatch. This keeps them comparable, printable, and testable in
// isolation, with no captured state.

// FieldOp selects the evaluation rule for a FieldPredicate.
type FieldOp int

const (
	// FieldEquals matches values equal to N.
	FieldEquals FieldOp = iota
	// FieldModulo matches values evenly divisible by N.
	FieldModulo
)

// FieldPredicate constrains a single integer calendar field
// (year, month, day, hour, minute or second).
type FieldPredicate struct {
	Op FieldOp
	N  int
}

// Matches reports whether v satisfies the predicate.
func (p FieldPredicate) Matches(v int) bool {
	switch p.Op {
	case FieldEquals:
		return v == p.N
	case FieldModulo:
		return p.N > 0 && v%p.N == 0
	default:
		return false
	}
}

// DateOp selects the evaluation rule for a DatePredicate.
type DateOp int

const (
	// DateEquals matches exactly one calendar date.
	DateEquals DateOp = iota
	// DateWeekday matches dates falling on a given weekday (Monday=0).
	DateWeekday
	// DateYearIn matches dates whose year is in Values.
	DateYearIn
	// DateMonthIn matches dates whose month is in Values.
	DateMonthIn
	// DateDayIn matches dates whose day-of-month is in Values.
	DateDayIn
)

// DatePredicate constrains a composite calendar date.
type DatePredicate struct {
	Op      DateOp
	Date    Date  // DateEquals
	Weekday int   // DateWeekday, Monday=0 .. Sunday=6
	Values  []int // DateYearIn, DateMonthIn, DateDayIn
}

// Matches reports whether d satisfies the predicate.
func (p DatePredicate) Matches(d Date) bool {
	switch p.Op {
	case DateEquals:
		return d == p.Date
	case DateWeekday:
		return weekdayIndex(d.Weekday()) == p.Weekday
	case DateYearIn:
		return contains(p.Values, d.Year)
	case DateMonthIn:
		return contains(p.Values, int(d.Month))
	case DateDayIn:
		return contains(p.Values, d.Day)
	default:
		return false
	}
}

// TimeOp selects the evaluation rule for a TimePredicate.
type TimeOp int

const (
	// TimeEquals matches exactly one wall-clock time.
	TimeEquals TimeOp = iota
	// TimeHourIn matches times whose hour is in Values.
	TimeHourIn
	// TimeMinuteIn matches times whose minute is in Values.
	TimeMinuteIn
	// TimeSecondIn matches times whose second is in Values.
	TimeSecondIn
)

// TimePredicate constrains a composite wall-clock time.
type TimePredicate struct {
	Op     TimeOp
	Time   TimeOfDay // TimeEquals
	Values []int     // TimeHourIn, TimeMinuteIn, TimeSecondIn
}

// Matches reports whether td satisfies the predicate.
func (p TimePredicate) Matches(td TimeOfDay) bool {
	switch p.Op {
	case TimeEquals:
		return td == p.Time
	case TimeHourIn:
		return contains(p.Values, td.Hour)
	case TimeMinuteIn:
		return contains(p.Values, td.Minute)
	case TimeSecondIn:
		return contains(p.Values, td.Second)
	default:
		return false
	}
}

// InstantOp selects the evaluation rule for an InstantPredicate.
type InstantOp int

const (
	// InstantEquals matches exactly one absolute instant.
	InstantEquals InstantOp = iota
	// InstantDateIn matches instants whose calendar date is in Dates.
	// The instant must already be expressed in the search location.
	InstantDateIn
	// InstantTimeIn matches instants whose wall-clock time is in Times.
	InstantTimeIn
	// InstantNotBefore matches instants at or after At.
	InstantNotBefore
	// InstantNotAfter matches instants at or before At.
	InstantNotAfter
)

// InstantPredicate constrains a full datetime candidate.
type InstantPredicate struct {
	Op    InstantOp
	At    time.Time              // InstantEquals, InstantNotBefore, InstantNotAfter
	Dates map[Date]struct{}      // InstantDateIn
	Times map[TimeOfDay]struct{} // InstantTimeIn
}

// Matches reports whether t satisfies the predicate.
func (p InstantPredicate) Matches(t time.Time) bool {
	switch p.Op {
	case InstantEquals:
		return t.Equal(p.At)
	case InstantDateIn:
		_, ok := p.Dates[DateOf(t)]
		return ok
	case InstantTimeIn:
		// Membership is against whole-second times; an instant carrying
		// sub-second precision equals none of them.
		if t.Nanosecond() != 0 {
			return false
		}
		_, ok := p.Times[TimeOfDayOf(t)]
		return ok
	case InstantNotBefore:
		return !t.Before(p.At)
	case InstantNotAfter:
		return !t.After(p.At)
	default:
		return false
	}
}

// PredicateSet holds the nine predicate buckets produced by classification.
// Within each bucket, predicates keep the order of the tokens that produced
// them. The zero value is a valid, fully unconstrained set.
type PredicateSet struct {
	Years   []FieldPredicate
	Months  []FieldPredicate
	Days    []FieldPredicate
	Hours   []FieldPredicate
	Minutes []FieldPredicate
	Seconds []FieldPredicate

	Dates    []DatePredicate
	Times    []TimePredicate
	Instants []InstantPredicate
}

// weekdayIndex converts a time.Weekday (Sunday=0) to the Monday=0 indexing
// used by weekday tokens.
func weekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// contains checks if a slice contains a value
func contains(slice []int, val int) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}
