package timeline

import (
	"slices"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// Fallback span lengths used when an item has neither explicit dates nor a
// due date.
const (
	TaskFallbackDays    = 3
	ProjectFallbackDays = 7
)

// DateRange is a resolved [Start, End] interval. End is never before Start.
type DateRange struct {
	Start   time.Time
	End     time.Time
	HasReal bool
}

// Resolve derives the display interval for a raw item:
//  1. explicit start and end for the item's kind, verbatim (HasReal)
//  2. created date (or now) through the due date
//  3. created date (or now) plus a kind-specific fallback span
func Resolve(raw *domain.RawItem, now time.Time) DateRange {
	if start, end := raw.ExplicitRange(); start != nil && end != nil {
		return DateRange{Start: *start, End: *end, HasReal: true}.normalized()
	}

	start := domain.TimeFromPtrWithDefault(now, raw.CreatedAt)
	if raw.DueDate != nil {
		return DateRange{Start: start, End: *raw.DueDate}.normalized()
	}

	days := TaskFallbackDays
	if !raw.IsTask {
		days = ProjectFallbackDays
	}
	return DateRange{Start: start, End: start.AddDate(0, 0, days)}
}

// normalized raises End to Start when the source dates are inverted.
func (r DateRange) normalized() DateRange {
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	return r
}

// ResolveItems converts raw items into unlinked GanttItems, preserving input
// order. Projects take their child count from the linked task records;
// task child counts are filled in by BuildForest.
func ResolveItems(raws []domain.RawItem, now time.Time) []*domain.GanttItem {
	items := make([]*domain.GanttItem, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		r := Resolve(raw, now)
		item := &domain.GanttItem{
			ID:           raw.ID,
			Name:         raw.Name,
			Start:        r.Start,
			End:          r.End,
			HasRealDates: r.HasReal,
			IsTask:       raw.IsTask,
			Assignees:    slices.Clone(raw.Assignees),
			Completed:    raw.Completed(),
		}
		if raw.IsTask && raw.ParentID != nil {
			pid := *raw.ParentID
			item.ParentID = &pid
		}
		if !raw.IsTask {
			item.ChildCount = raw.LinkedChildCount
		}
		items = append(items, item)
	}
	return items
}
