package contract

import (
	"github.com/alexanderramin/kairos-gantt/internal/app"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
)

type TimelineNav = app.TimelineNav

const (
	NavNone  TimelineNav = app.NavNone
	NavNext  TimelineNav = app.NavNext
	NavPrev  TimelineNav = app.NavPrev
	NavToday TimelineNav = app.NavToday
)

type TimelineRequest = app.TimelineRequest

func NewTimelineRequest(kind ResourceKind, userID string) TimelineRequest {
	return app.NewTimelineRequest(kind, userID)
}

type TimelineRow = app.TimelineRow

type TimelineResponse = app.TimelineResponse

type MoveRequest = app.MoveRequest

type MoveResponse = app.MoveResponse

type TimelineErrorCode = app.TimelineErrorCode

const (
	TimelineErrInvalidKind  TimelineErrorCode = app.TimelineErrInvalidKind
	TimelineErrInvalidMonth TimelineErrorCode = app.TimelineErrInvalidMonth
	TimelineErrUnknownItem  TimelineErrorCode = app.TimelineErrUnknownItem
)

type TimelineError = app.TimelineError

func NewTimelineRows(rows []timeline.Row) []TimelineRow {
	return app.NewTimelineRows(rows)
}
