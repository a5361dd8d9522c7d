package timeline

import (
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// Span is a 1-indexed grid column range with an exclusive end, so an item
// covering the first day of the window is {1, 2}.
type Span struct {
	StartCol int
	EndCol   int
}

// Width returns the number of columns the span covers.
func (s Span) Width() int { return s.EndCol - s.StartCol }

// GridCols maps an item's interval onto the window's columns. Dates before
// the window clamp to the first column and dates after it to the last, so
// every item covers at least one column: 1 <= StartCol < EndCol <= N+1.
func GridCols(item *domain.GanttItem, w Window) Span {
	n := w.Len()
	if n == 0 {
		return Span{StartCol: 1, EndCol: 2}
	}

	sIdx := dateToIndex(w, item.Start)
	eIdx := max(sIdx, dateToIndex(w, item.End))

	start := clamp(sIdx+1, 1, n+1)
	end := clamp(max(start+1, eIdx+2), start+1, n+1)
	return Span{StartCol: start, EndCol: end}
}

func dateToIndex(w Window, d time.Time) int {
	day := dateOnly(d)
	switch {
	case day.Before(w.First()):
		return 0
	case day.After(w.Last()):
		return w.Len() - 1
	default:
		return daysBetween(w.First(), day)
	}
}
