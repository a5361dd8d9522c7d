package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/app"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
)

const monthLayout = "2006-01"

type timelineService struct {
	items    repository.ItemRepo
	orders   repository.OrderRepo
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewTimelineService wires the timeline engine to the item and order
// stores. A nil logger discards engine diagnostics.
func NewTimelineService(
	items repository.ItemRepo,
	orders repository.OrderRepo,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) TimelineService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &timelineService{
		items:    items,
		orders:   orders,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) View(ctx context.Context, req app.TimelineRequest) (resp *app.TimelineResponse, err error) {
	fields := map[string]any{"key": req.Key.String()}
	defer observe(ctx, s.observer, "timeline-view", time.Now().UTC(), fields, &err)

	board, now, err := s.boardFor(ctx, req)
	if err != nil {
		return nil, err
	}
	resp = buildTimelineResponse(board, now)
	fields["window"] = resp.Cursor.String()
	fields["rows"] = len(resp.Rows)
	return resp, nil
}

func (s *timelineService) Move(ctx context.Context, req app.MoveRequest) (resp *app.MoveResponse, err error) {
	fields := map[string]any{
		"key":    req.Timeline.Key.String(),
		"active": req.ActiveID,
		"over":   req.OverID,
	}
	defer observe(ctx, s.observer, "timeline-move", time.Now().UTC(), fields, &err)

	if req.ActiveID == "" || req.OverID == "" {
		return nil, &app.TimelineError{Code: app.TimelineErrUnknownItem, Message: "both active and over ids are required"}
	}

	board, now, err := s.boardFor(ctx, req.Timeline)
	if err != nil {
		return nil, err
	}
	moved := board.MoveItem(ctx, req.ActiveID, req.OverID)
	fields["moved"] = moved

	return &app.MoveResponse{
		Moved:    moved,
		Timeline: buildTimelineResponse(board, now),
	}, nil
}

func (s *timelineService) ResetOrder(ctx context.Context, key domain.OrderKey) (err error) {
	defer observe(ctx, s.observer, "timeline-reset-order", time.Now().UTC(), map[string]any{"key": key.String()}, &err)

	if _, err := domain.ParseResourceKind(string(key.ResourceKind)); err != nil {
		return &app.TimelineError{Code: app.TimelineErrInvalidKind, Message: err.Error()}
	}
	if err := s.orders.Reset(ctx, key); err != nil {
		return fmt.Errorf("resetting order: %w", err)
	}
	return nil
}

func (s *timelineService) OpenBoard(ctx context.Context, key domain.OrderKey, opts ...timeline.BoardOption) (board *timeline.Board, err error) {
	defer observe(ctx, s.observer, "timeline-open-board", time.Now().UTC(), map[string]any{"key": key.String()}, &err)

	if _, err := domain.ParseResourceKind(string(key.ResourceKind)); err != nil {
		return nil, &app.TimelineError{Code: app.TimelineErrInvalidKind, Message: err.Error()}
	}
	raws, err := s.items.List(ctx, repository.ItemFilter{Kind: key.ResourceKind})
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	opts = append([]timeline.BoardOption{timeline.WithLogger(s.logger)}, opts...)
	board = timeline.NewBoard(s.orders, key, opts...)
	board.SetItems(ctx, raws)
	return board, nil
}

// boardFor builds a board positioned at the requested window. Navigation is
// applied to the cursor before any items are loaded so the order is only
// reconciled against the final window.
func (s *timelineService) boardFor(ctx context.Context, req app.TimelineRequest) (*timeline.Board, time.Time, error) {
	if _, err := domain.ParseResourceKind(string(req.Key.ResourceKind)); err != nil {
		return nil, time.Time{}, &app.TimelineError{Code: app.TimelineErrInvalidKind, Message: err.Error()}
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	cursor, err := resolveCursor(req, now)
	if err != nil {
		return nil, time.Time{}, err
	}

	raws, err := s.items.List(ctx, repository.ItemFilter{
		Kind:          req.Key.ResourceKind,
		HideCompleted: req.HideCompleted,
	})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("loading items: %w", err)
	}

	board := timeline.NewBoard(s.orders, req.Key,
		timeline.WithClock(func() time.Time { return now }),
		timeline.WithLogger(s.logger),
		timeline.WithCursor(cursor),
		timeline.WithCollapsed(req.Collapsed...),
	)
	board.SetItems(ctx, raws)
	return board, now, nil
}

func resolveCursor(req app.TimelineRequest, now time.Time) (timeline.Cursor, error) {
	var cursor timeline.Cursor
	switch {
	case req.Month != "":
		month, err := time.Parse(monthLayout, req.Month)
		if err != nil {
			return timeline.Cursor{}, &app.TimelineError{
				Code:    app.TimelineErrInvalidMonth,
				Message: fmt.Sprintf("month %q must be YYYY-MM", req.Month),
			}
		}
		half := timeline.FirstHalf
		if req.Half != nil {
			half = *req.Half
		}
		cursor = timeline.CursorFor(month, half)
	case req.Half != nil:
		cursor = timeline.CursorFor(now, *req.Half)
	default:
		cursor = timeline.CursorForToday(now)
	}

	switch req.Nav {
	case app.NavNext:
		cursor = cursor.Next()
	case app.NavPrev:
		cursor = cursor.Prev()
	case app.NavToday:
		cursor = timeline.CursorForToday(now)
	}
	return cursor, nil
}

func buildTimelineResponse(board *timeline.Board, now time.Time) *app.TimelineResponse {
	view := board.View()
	return &app.TimelineResponse{
		GeneratedAt: now,
		Key:         board.Key(),
		Cursor:      view.Cursor,
		Days:        view.Days,
		TodayIndex:  view.TodayIndex,
		Rows:        app.NewTimelineRows(view.Rows),
		Order:       board.Order(),
	}
}
