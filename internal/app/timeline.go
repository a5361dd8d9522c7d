package app

import (
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
)

// TimelineNav is a relative navigation applied after the requested month
// and half are resolved.
type TimelineNav int

const (
	NavNone TimelineNav = iota
	NavNext
	NavPrev
	NavToday
)

type TimelineRequest struct {
	Now *time.Time
	Key domain.OrderKey
	// Month is "YYYY-MM". Empty means the month containing today.
	Month string
	// Half defaults to the half containing today when Month is empty and
	// to the first half otherwise.
	Half          *timeline.Half
	Nav           TimelineNav
	Collapsed     []string
	HideCompleted bool
}

func NewTimelineRequest(kind domain.ResourceKind, userID string) TimelineRequest {
	return TimelineRequest{
		Key: domain.OrderKey{ResourceKind: kind, UserID: userID},
	}
}

type TimelineRow struct {
	ID           string
	Name         string
	IsTask       bool
	ParentID     *string
	Level        int
	Start        time.Time
	End          time.Time
	HasRealDates bool
	StartCol     int
	EndCol       int
	ChildCount   int
	Collapsed    bool
	Assignees    []string
	Completed    bool
}

// NewTimelineRows flattens board rows into response rows.
func NewTimelineRows(rows []timeline.Row) []TimelineRow {
	out := make([]TimelineRow, 0, len(rows))
	for _, r := range rows {
		it := r.Item
		out = append(out, TimelineRow{
			ID:           it.ID,
			Name:         it.Name,
			IsTask:       it.IsTask,
			ParentID:     it.ParentID,
			Level:        it.Level,
			Start:        it.Start,
			End:          it.End,
			HasRealDates: it.HasRealDates,
			StartCol:     r.Span.StartCol,
			EndCol:       r.Span.EndCol,
			ChildCount:   it.ChildCount,
			Collapsed:    r.Collapsed,
			Assignees:    it.Assignees,
			Completed:    it.Completed,
		})
	}
	return out
}

type TimelineResponse struct {
	GeneratedAt time.Time
	Key         domain.OrderKey
	Cursor      timeline.Cursor
	Days        []time.Time
	// TodayIndex is -1 when today is outside the window.
	TodayIndex int
	Rows       []TimelineRow
	// Order is the reconciled row order for the window, including rows
	// hidden by a collapsed ancestor.
	Order []string
}

type MoveRequest struct {
	Timeline TimelineRequest
	ActiveID string
	OverID   string
}

type MoveResponse struct {
	Moved    bool
	Timeline *TimelineResponse
}

type TimelineErrorCode string

const (
	TimelineErrInvalidKind  TimelineErrorCode = "INVALID_KIND"
	TimelineErrInvalidMonth TimelineErrorCode = "INVALID_MONTH"
	TimelineErrUnknownItem  TimelineErrorCode = "UNKNOWN_ITEM"
)

type TimelineError struct {
	Code    TimelineErrorCode
	Message string
}

func (e *TimelineError) Error() string {
	return string(e.Code) + ": " + e.Message
}
