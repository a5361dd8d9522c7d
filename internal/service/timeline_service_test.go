package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/app"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/testutil"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

type timelineFixture struct {
	svc    TimelineService
	items  *repository.SQLiteItemRepo
	orders *repository.SQLiteOrderRepo
	obs    *recordingObserver
}

func newTimelineFixture(t *testing.T) timelineFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := timelineFixture{
		items:  repository.NewSQLiteItemRepo(database),
		orders: repository.NewSQLiteOrderRepo(database),
		obs:    &recordingObserver{},
	}
	f.svc = NewTimelineService(f.items, f.orders, nil, f.obs)
	seedBoardItems(t, f.items)
	return f
}

func tasksRequest() app.TimelineRequest {
	req := app.NewTimelineRequest(domain.ResourceTasks, "u1")
	now := fixedNow
	req.Now = &now
	return req
}

func rowIDs(rows []app.TimelineRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestTimelineService_ViewTasks(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	resp, err := f.svc.View(ctx, tasksRequest())
	require.NoError(t, err)

	assert.Equal(t, timeline.Cursor{Year: 2024, Month: time.March, Half: timeline.FirstHalf}, resp.Cursor)
	assert.Len(t, resp.Days, 15)
	assert.Equal(t, 4, resp.TodayIndex)
	require.Equal(t, []string{"T1", "T2"}, rowIDs(resp.Rows))

	t1, t2 := resp.Rows[0], resp.Rows[1]
	assert.Equal(t, 0, t1.Level)
	assert.Equal(t, 1, t1.ChildCount)
	assert.Equal(t, 2, t1.StartCol)
	assert.Equal(t, 7, t1.EndCol)
	assert.False(t, t1.HasRealDates)

	assert.Equal(t, 1, t2.Level)
	require.NotNil(t, t2.ParentID)
	assert.Equal(t, "T1", *t2.ParentID)
	assert.Equal(t, 3, t2.StartCol)
	assert.Equal(t, 7, t2.EndCol)

	saved, err := f.orders.Load(ctx, domain.OrderKey{ResourceKind: domain.ResourceTasks, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, saved)

	assert.Equal(t, "timeline-view", f.obs.last().Name)
	assert.Equal(t, 2, f.obs.last().Fields["rows"])
}

func TestTimelineService_ViewProjects(t *testing.T) {
	f := newTimelineFixture(t)

	req := tasksRequest()
	req.Key.ResourceKind = domain.ResourceProjects
	resp, err := f.svc.View(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, []string{"P"}, rowIDs(resp.Rows))
	assert.True(t, resp.Rows[0].HasRealDates)
	assert.Equal(t, 1, resp.Rows[0].StartCol)
	assert.Equal(t, 16, resp.Rows[0].EndCol)
}

func TestTimelineService_MovePersists(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Move(ctx, app.MoveRequest{Timeline: tasksRequest(), ActiveID: "T2", OverID: "T1"})
	require.NoError(t, err)
	assert.True(t, resp.Moved)
	assert.Equal(t, []string{"T2", "T1"}, resp.Timeline.Order)
	assert.Equal(t, []string{"T2", "T1"}, rowIDs(resp.Timeline.Rows))

	again, err := f.svc.View(ctx, tasksRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "T1"}, again.Order)

	// Another user keeps arrival order.
	other := tasksRequest()
	other.Key.UserID = "u2"
	otherResp, err := f.svc.View(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, otherResp.Order)
}

func TestTimelineService_MoveOutsideWindowIsNoop(t *testing.T) {
	f := newTimelineFixture(t)

	resp, err := f.svc.Move(context.Background(), app.MoveRequest{Timeline: tasksRequest(), ActiveID: "T3", OverID: "T1"})
	require.NoError(t, err)
	assert.False(t, resp.Moved)
	assert.Equal(t, []string{"T1", "T2"}, resp.Timeline.Order)
}

func TestTimelineService_MoveRequiresIDs(t *testing.T) {
	f := newTimelineFixture(t)

	_, err := f.svc.Move(context.Background(), app.MoveRequest{Timeline: tasksRequest(), ActiveID: "T1"})
	var tlErr *app.TimelineError
	require.True(t, errors.As(err, &tlErr))
	assert.Equal(t, app.TimelineErrUnknownItem, tlErr.Code)
}

func TestTimelineService_Collapsed(t *testing.T) {
	f := newTimelineFixture(t)

	req := tasksRequest()
	req.Collapsed = []string{"T1"}
	resp, err := f.svc.View(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, []string{"T1"}, rowIDs(resp.Rows))
	assert.True(t, resp.Rows[0].Collapsed)
	assert.Equal(t, []string{"T1", "T2"}, resp.Order, "hidden rows keep their position")
}

func TestTimelineService_WindowSelection(t *testing.T) {
	second := timeline.SecondHalf

	tests := []struct {
		name   string
		mutate func(*app.TimelineRequest)
		cursor timeline.Cursor
		rows   []string
	}{
		{
			name:   "explicit month and half",
			mutate: func(r *app.TimelineRequest) { r.Month = "2024-04"; r.Half = &second },
			cursor: timeline.Cursor{Year: 2024, Month: time.April, Half: timeline.SecondHalf},
			rows:   []string{"T3"},
		},
		{
			name:   "month without half starts at first half",
			mutate: func(r *app.TimelineRequest) { r.Month = "2024-04" },
			cursor: timeline.Cursor{Year: 2024, Month: time.April, Half: timeline.FirstHalf},
			rows:   []string{},
		},
		{
			name:   "half without month uses this month",
			mutate: func(r *app.TimelineRequest) { r.Half = &second },
			cursor: timeline.Cursor{Year: 2024, Month: time.March, Half: timeline.SecondHalf},
			rows:   []string{},
		},
		{
			name:   "next",
			mutate: func(r *app.TimelineRequest) { r.Nav = app.NavNext },
			cursor: timeline.Cursor{Year: 2024, Month: time.March, Half: timeline.SecondHalf},
			rows:   []string{},
		},
		{
			name:   "prev wraps to previous month",
			mutate: func(r *app.TimelineRequest) { r.Nav = app.NavPrev },
			cursor: timeline.Cursor{Year: 2024, Month: time.February, Half: timeline.SecondHalf},
			rows:   []string{},
		},
		{
			name:   "today overrides month",
			mutate: func(r *app.TimelineRequest) { r.Month = "2023-11"; r.Nav = app.NavToday },
			cursor: timeline.Cursor{Year: 2024, Month: time.March, Half: timeline.FirstHalf},
			rows:   []string{"T1", "T2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTimelineFixture(t)
			req := tasksRequest()
			tt.mutate(&req)

			resp, err := f.svc.View(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.cursor, resp.Cursor)
			assert.Equal(t, tt.rows, rowIDs(resp.Rows))
		})
	}
}

func TestTimelineService_HideCompleted(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	t1, err := f.items.GetByID(ctx, "T1")
	require.NoError(t, err)
	done := fixedNow
	t1.CompletedAt = &done
	require.NoError(t, f.items.Update(ctx, t1))

	req := tasksRequest()
	req.HideCompleted = true
	resp, err := f.svc.View(ctx, req)
	require.NoError(t, err)

	// T2's parent is filtered out, so it is shown as a root.
	require.Equal(t, []string{"T2"}, rowIDs(resp.Rows))
	assert.Equal(t, 0, resp.Rows[0].Level)
	assert.Nil(t, resp.Rows[0].ParentID)
}

func TestTimelineService_Errors(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	badMonth := tasksRequest()
	badMonth.Month = "March"
	_, err := f.svc.View(ctx, badMonth)
	var tlErr *app.TimelineError
	require.True(t, errors.As(err, &tlErr))
	assert.Equal(t, app.TimelineErrInvalidMonth, tlErr.Code)
	assert.False(t, f.obs.last().Success)

	badKind := tasksRequest()
	badKind.Key.ResourceKind = "epics"
	_, err = f.svc.View(ctx, badKind)
	require.True(t, errors.As(err, &tlErr))
	assert.Equal(t, app.TimelineErrInvalidKind, tlErr.Code)

	err = f.svc.ResetOrder(ctx, badKind.Key)
	require.True(t, errors.As(err, &tlErr))
}

func TestTimelineService_ResetOrder(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	_, err := f.svc.Move(ctx, app.MoveRequest{Timeline: tasksRequest(), ActiveID: "T2", OverID: "T1"})
	require.NoError(t, err)

	key := domain.OrderKey{ResourceKind: domain.ResourceTasks, UserID: "u1"}
	require.NoError(t, f.svc.ResetOrder(ctx, key))

	resp, err := f.svc.View(ctx, tasksRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, resp.Order)
}

func TestTimelineService_OpenBoard(t *testing.T) {
	f := newTimelineFixture(t)
	ctx := context.Background()

	key := domain.OrderKey{ResourceKind: domain.ResourceTasks, UserID: "u1"}
	board, err := f.svc.OpenBoard(ctx, key, timeline.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	assert.Equal(t, key, board.Key())
	assert.Equal(t, []string{"T1", "T2"}, board.Order())
	assert.Len(t, board.Items(), 3)

	require.True(t, board.MoveItem(ctx, "T2", "T1"))
	saved, err := f.orders.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"T2", "T1"}, saved)

	assert.Contains(t, f.obs.names(), "timeline-open-board")
}
