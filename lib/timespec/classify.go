package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// weekdayNames maps weekday tokens to their index, Monday=0 .. Sunday=6.
var weekdayNames = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// minTimestamp is the heuristic lower bound distinguishing epoch-second
// tokens from small plain integers (1_000_000_000 is 2001-09-09 UTC).
const minTimestamp = 1_000_000_000

// classify folds the spec tokens into a PredicateSet. Recognizers are tried
// in a fixed priority order and the first match wins:
//
//  1. ISO date YYYY-MM-DD
//  2. time fragment H:M or H:M:S (parts may be empty)
//  3. weekday name
//  4. modulus suffix Ns/Nm/Nh/Nd
//  5. epoch-second timestamp
//
// Classification is pure: the same tokens and window always produce the same
// buckets, in token order.
func classify(tokens []string, win Window) (PredicateSet, error) {
	var set PredicateSet
	for _, tok := range tokens {
		if err := classifyToken(tok, win, &set); err != nil {
			return PredicateSet{}, err
		}
	}
	return set, nil
}

// classifyToken appends the predicates for a single token to set.
func classifyToken(tok string, win Window, set *PredicateSet) error {
	if d, ok := parseISODate(tok); ok {
		if err := win.checkDateDirection(d); err != nil {
			return err
		}
		set.Years = append(set.Years, FieldPredicate{Op: FieldEquals, N: d.Year})
		set.Months = append(set.Months, FieldPredicate{Op: FieldEquals, N: int(d.Month)})
		set.Days = append(set.Days, FieldPredicate{Op: FieldEquals, N: d.Day})
		return nil
	}

	if strings.Contains(tok, ":") {
		return classifyTimeFragment(tok, set)
	}

	if idx := weekdayIndexOf(tok); idx >= 0 {
		set.Dates = append(set.Dates, DatePredicate{Op: DateWeekday, Weekday: idx})
		return nil
	}

	if prefix, unit, ok := cutModulusSuffix(tok); ok {
		return classifyModulus(tok, prefix, unit, set)
	}

	if n, err := strconv.Atoi(tok); err == nil {
		if n < minTimestamp {
			return fmt.Errorf("integer token %q is below the timestamp range: %w", tok, ErrMalformedToken)
		}
		ts := time.Unix(int64(n), 0).In(win.Location)
		set.Dates = append(set.Dates, DatePredicate{Op: DateEquals, Date: DateOf(ts)})
		set.Times = append(set.Times, TimePredicate{Op: TimeEquals, Time: TimeOfDayOf(ts)})
		set.Instants = append(set.Instants, InstantPredicate{Op: InstantEquals, At: ts})
		return nil
	}

	return fmt.Errorf("%q: %w", tok, ErrMalformedToken)
}

// parseISODate recognizes YYYY-MM-DD: exactly three hyphen-separated
// integers denoting a valid calendar date. Anything else is not a date and
// falls through to the remaining recognizers.
func parseISODate(tok string) (Date, bool) {
	parts := strings.Split(tok, "-")
	if len(parts) != 3 {
		return Date{}, false
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, false
		}
		nums[i] = n
	}
	d := NewDate(nums[0], nums[1], nums[2])
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// classifyTimeFragment handles H:M and H:M:S tokens. An empty part leaves
// that unit unconstrained; a non-empty part must parse as an integer.
func classifyTimeFragment(tok string, set *PredicateSet) error {
	parts := strings.Split(tok, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return fmt.Errorf("time fragment %q: expected H:M or H:M:S: %w", tok, ErrMalformedToken)
	}
	buckets := []*[]FieldPredicate{&set.Hours, &set.Minutes, &set.Seconds}
	for i, part := range parts {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("time fragment %q: part %q is not an integer: %w", tok, part, ErrMalformedToken)
		}
		*buckets[i] = append(*buckets[i], FieldPredicate{Op: FieldEquals, N: n})
	}
	return nil
}

// weekdayIndexOf returns the Monday=0 index for a weekday name token,
// or -1 when the token is not a weekday name. Matching is case-insensitive.
func weekdayIndexOf(tok string) int {
	lower := strings.ToLower(tok)
	for i, name := range weekdayNames {
		if lower == name {
			return i
		}
	}
	return -1
}

// cutModulusSuffix splits a modulus token into its integer prefix and unit
// suffix. ok is false when the token carries no recognized unit suffix.
func cutModulusSuffix(tok string) (prefix string, unit byte, ok bool) {
	if len(tok) < 2 {
		return "", 0, false
	}
	switch unit = tok[len(tok)-1]; unit {
	case 's', 'm', 'h', 'd':
		return tok[:len(tok)-1], unit, true
	default:
		return "", 0, false
	}
}

// classifyModulus appends a modulus predicate to the bucket selected by the
// unit suffix. The modulus must be a positive integer.
func classifyModulus(tok, prefix string, unit byte, set *PredicateSet) error {
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return fmt.Errorf("modulus token %q: prefix %q is not an integer: %w", tok, prefix, ErrMalformedToken)
	}
	if n <= 0 {
		return fmt.Errorf("modulus token %q: modulus must be positive: %w", tok, ErrMalformedToken)
	}
	pred := FieldPredicate{Op: FieldModulo, N: n}
	switch unit {
	case 's':
		set.Seconds = append(set.Seconds, pred)
	case 'm':
		set.Minutes = append(set.Minutes, pred)
	case 'h':
		set.Hours = append(set.Hours, pred)
	case 'd':
		set.Days = append(set.Days, pred)
	}
	return nil
}
