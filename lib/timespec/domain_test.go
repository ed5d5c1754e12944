package timespec

import (
	"errors"
	"testing"
	"time"
)

func TestFilterSeq_PreservesOrderAndShortCircuits(t *testing.T) {
	preds := []FieldPredicate{
		{Op: FieldModulo, N: 2},
		{Op: FieldModulo, N: 3},
	}

	var got []int
	for v := range filterSeq(preds, intRange(0, 20)) {
		got = append(got, v)
	}

	want := []int{0, 6, 12, 18}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFilterSeq_IsLazy(t *testing.T) {
	// Pulling one element from an effectively unbounded sequence must
	// terminate; this is the memory-safety property the resolver relies on
	seen := 0
	unbounded := func(yield func(int) bool) {
		for v := 0; ; v++ {
			seen++
			if !yield(v) {
				return
			}
		}
	}

	for v := range filterSeq([]FieldPredicate{{Op: FieldModulo, N: 5}}, unbounded) {
		if v != 0 {
			t.Errorf("expected first multiple of 5 to be 0, got %d", v)
		}
		break
	}
	if seen != 1 {
		t.Errorf("expected exactly 1 candidate pulled, got %d", seen)
	}
}

func TestCollectDomain_EmptyIsError(t *testing.T) {
	_, err := collectDomain("day", []FieldPredicate{{Op: FieldEquals, N: 99}}, intRange(1, 31))
	if !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("expected ErrEmptyDomain, got %v", err)
	}
}

func TestCollectDomain_NoPredicatesKeepsNaturalRange(t *testing.T) {
	domain, err := collectDomain("month", []FieldPredicate(nil), intRange(1, 12))
	if err != nil {
		t.Fatalf("collectDomain unexpected error: %v", err)
	}
	if len(domain) != 12 || domain[0] != 1 || domain[11] != 12 {
		t.Errorf("expected full 1..12 range, got %v", domain)
	}
}

func TestYearRange(t *testing.T) {
	collect := func(start, end int, dir Direction) []int {
		var out []int
		for y := range yearRange(start, end, dir) {
			out = append(out, y)
		}
		return out
	}

	forward := collect(2024, 2027, Forward)
	if len(forward) != 4 || forward[0] != 2024 || forward[3] != 2027 {
		t.Errorf("forward years wrong: %v", forward)
	}

	backward := collect(2024, 2021, Backward)
	if len(backward) != 4 || backward[0] != 2024 || backward[3] != 2021 {
		t.Errorf("backward years wrong: %v", backward)
	}
}

func TestDateRange(t *testing.T) {
	t.Run("forward excludes end", func(t *testing.T) {
		var got []Date
		for d := range dateRange(NewDate(2024, 2, 27), NewDate(2024, 3, 1)) {
			got = append(got, d)
		}
		want := []Date{NewDate(2024, 2, 27), NewDate(2024, 2, 28), NewDate(2024, 2, 29)}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("date[%d]: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("backward excludes end", func(t *testing.T) {
		var got []Date
		for d := range dateRange(NewDate(2024, 3, 1), NewDate(2024, 2, 27)) {
			got = append(got, d)
		}
		want := []Date{NewDate(2024, 3, 1), NewDate(2024, 2, 29), NewDate(2024, 2, 28)}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("date[%d]: expected %v, got %v", i, want[i], got[i])
			}
		}
	})
}

func TestTimeRange(t *testing.T) {
	t.Run("ascending covers the full day", func(t *testing.T) {
		count := 0
		var first, last TimeOfDay
		for td := range timeRange(false) {
			if count == 0 {
				first = td
			}
			last = td
			count++
		}
		if count != 24*60*60 {
			t.Errorf("expected 86400 times, got %d", count)
		}
		if first != (TimeOfDay{}) {
			t.Errorf("expected first time 00:00:00, got %v", first)
		}
		if last != (TimeOfDay{Hour: 23, Minute: 59, Second: 59}) {
			t.Errorf("expected last time 23:59:59, got %v", last)
		}
	})

	t.Run("descending starts at 23:59:59", func(t *testing.T) {
		for td := range timeRange(true) {
			if td != (TimeOfDay{Hour: 23, Minute: 59, Second: 59}) {
				t.Errorf("expected 23:59:59 first, got %v", td)
			}
			break
		}
	})
}

func TestCombine_SkipsNonexistentWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 2024-03-10 02:30 does not exist in New York; 03:30 does
	dates := []Date{NewDate(2024, 3, 10)}
	times := []TimeOfDay{
		{Hour: 2, Minute: 30},
		{Hour: 3, Minute: 30},
	}

	var got []time.Time
	for t2 := range combine(dates, times, loc) {
		got = append(got, t2)
	}

	if len(got) != 1 {
		t.Fatalf("expected the gap time to be skipped, got %v", got)
	}
	if TimeOfDayOf(got[0]) != (TimeOfDay{Hour: 3, Minute: 30}) {
		t.Errorf("expected 03:30, got %v", TimeOfDayOf(got[0]))
	}
}

func TestCombine_DatesOutermost(t *testing.T) {
	dates := []Date{NewDate(2024, 1, 2), NewDate(2024, 1, 1)}
	times := []TimeOfDay{{Hour: 8}, {Hour: 9}}

	var got []time.Time
	for t2 := range combine(dates, times, time.UTC) {
		got = append(got, t2)
	}

	want := []time.Time{
		time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}
