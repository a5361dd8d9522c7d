package timeline

import (
	"fmt"
	"time"
)

// Half selects one of the two fixed partitions of a month.
type Half int

const (
	FirstHalf  Half = 0 // days 1 through 15
	SecondHalf Half = 1 // day 16 through month end
)

// firstHalfLastIndex is the zero-based index of the 15th.
const firstHalfLastIndex = 14

// ParseHalf accepts "0"/"1" as well as "first"/"second".
func ParseHalf(s string) (Half, error) {
	switch s {
	case "0", "first":
		return FirstHalf, nil
	case "1", "second":
		return SecondHalf, nil
	}
	return FirstHalf, fmt.Errorf("invalid half %q (expected 0 or 1)", s)
}

func (h Half) String() string {
	if h == SecondHalf {
		return "second half"
	}
	return "first half"
}

// Window is the run of calendar days currently on screen.
type Window struct {
	Days []time.Time
	// TodayIndex is the offset of today within Days, or -1 when today is
	// outside the window.
	TodayIndex int
}

// Len returns the number of days in the window.
func (w Window) Len() int { return len(w.Days) }

// First returns the first day, or the zero time for an empty window.
func (w Window) First() time.Time {
	if len(w.Days) == 0 {
		return time.Time{}
	}
	return w.Days[0]
}

// Last returns the last day, or the zero time for an empty window.
func (w Window) Last() time.Time {
	if len(w.Days) == 0 {
		return time.Time{}
	}
	return w.Days[len(w.Days)-1]
}

// Contains reports whether d's calendar date falls inside the window.
func (w Window) Contains(d time.Time) bool {
	if len(w.Days) == 0 {
		return false
	}
	day := dateOnly(d)
	return !day.Before(w.First()) && !day.After(w.Last())
}

// Overlaps reports whether the date interval [start, end] shares at least
// one calendar day with the window.
func (w Window) Overlaps(start, end time.Time) bool {
	if len(w.Days) == 0 {
		return false
	}
	return !dateOnly(start).After(w.Last()) && !dateOnly(end).Before(w.First())
}

// MonthDays enumerates every calendar day of anchor's month in ascending
// order.
func MonthDays(anchor time.Time) []time.Time {
	y, m, _ := anchor.Date()
	n := daysInMonth(y, m)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = time.Date(y, m, i+1, 0, 0, 0, 0, time.UTC)
	}
	return days
}

// ComputeWindow returns the requested half of anchor's month. The first
// half covers indices [0, min(14, last)], the second [min(15, last), last].
// Any half other than SecondHalf is treated as FirstHalf.
func ComputeWindow(anchor time.Time, half Half, today time.Time) Window {
	all := MonthDays(anchor)
	last := len(all) - 1

	lo, hi := 0, min(firstHalfLastIndex, last)
	if half == SecondHalf {
		lo, hi = min(firstHalfLastIndex+1, last), last
	}

	days := make([]time.Time, hi-lo+1)
	copy(days, all[lo:hi+1])

	w := Window{Days: days, TodayIndex: -1}
	if w.Contains(today) {
		w.TodayIndex = daysBetween(w.First(), today)
	}
	return w
}

// Cursor identifies which half-month window is displayed.
type Cursor struct {
	Year  int
	Month time.Month
	Half  Half
}

// CursorFor returns the cursor for the month containing date.
func CursorFor(date time.Time, half Half) Cursor {
	y, m, _ := date.Date()
	return Cursor{Year: y, Month: m, Half: half}
}

// CursorForToday returns the current month with the half containing today.
func CursorForToday(now time.Time) Cursor {
	half := FirstHalf
	if now.Day() > firstHalfLastIndex+1 {
		half = SecondHalf
	}
	return CursorFor(now, half)
}

// Anchor returns the first day of the cursor's month.
func (c Cursor) Anchor() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next moves to the following half: first to second within the month,
// second to the first half of the next month.
func (c Cursor) Next() Cursor {
	if c.Half == FirstHalf {
		c.Half = SecondHalf
		return c
	}
	return CursorFor(c.Anchor().AddDate(0, 1, 0), FirstHalf)
}

// Prev moves to the preceding half: second to first within the month,
// first to the second half of the previous month.
func (c Cursor) Prev() Cursor {
	if c.Half == SecondHalf {
		c.Half = FirstHalf
		return c
	}
	return CursorFor(c.Anchor().AddDate(0, -1, 0), SecondHalf)
}

// WithMonth moves to date's month, keeping the current half.
func (c Cursor) WithMonth(date time.Time) Cursor {
	return CursorFor(date, c.Half)
}

// Window computes the cursor's visible days relative to today.
func (c Cursor) Window(today time.Time) Window {
	return ComputeWindow(c.Anchor(), c.Half, today)
}

func (c Cursor) String() string {
	return fmt.Sprintf("%s %d, %s", c.Month, c.Year, c.Half)
}
