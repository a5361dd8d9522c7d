package timeline

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// Row is one visible timeline row.
type Row struct {
	Item      *domain.GanttItem
	Span      Span
	Collapsed bool
}

// View is everything a renderer needs for one frame.
type View struct {
	Cursor     Cursor
	Days       []time.Time
	TodayIndex int
	Rows       []Row
}

// Board composes the timeline stages around one order slot. It owns the
// cursor, the row order and the collapse set, and rebuilds the item forest
// from scratch whenever the items or the cursor change. A Board is not safe
// for concurrent use.
type Board struct {
	now       func() time.Time
	logger    *slog.Logger
	cursor    Cursor
	order     *OrderManager
	collapsed CollapseSet

	raws       []domain.RawItem
	items      []*domain.GanttItem
	window     Window
	inWindow   map[string]*domain.GanttItem
	windowIDs  []string
	reconciled bool
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithClock overrides the source of "now" and "today".
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger used by the board and its order manager.
func WithLogger(l *slog.Logger) BoardOption {
	return func(b *Board) { b.logger = l }
}

// WithCursor sets the initial window. Defaults to the half containing today.
func WithCursor(c Cursor) BoardOption {
	return func(b *Board) { b.cursor = c }
}

// WithCollapsed starts the board with ids collapsed.
func WithCollapsed(ids ...string) BoardOption {
	return func(b *Board) {
		for _, id := range ids {
			b.collapsed[id] = struct{}{}
		}
	}
}

// NewBoard creates an empty board persisting its order through store.
func NewBoard(store OrderStore, key domain.OrderKey, opts ...BoardOption) *Board {
	b := &Board{
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
		collapsed: NewCollapseSet(),
		inWindow:  map[string]*domain.GanttItem{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cursor == (Cursor{}) {
		b.cursor = CursorForToday(b.now())
	}
	b.order = NewOrderManager(store, key, b.logger)
	b.window = b.cursor.Window(b.now())
	return b
}

// SetItems replaces the item set wholesale and recomputes the board.
func (b *Board) SetItems(ctx context.Context, raws []domain.RawItem) {
	b.raws = slices.Clone(raws)
	b.rebuild(ctx)
}

// MoveItem places activeID at overID's position in the row order.
func (b *Board) MoveItem(ctx context.Context, activeID, overID string) bool {
	return b.order.Move(ctx, activeID, overID)
}

// ToggleCollapse flips id's collapsed state and reports the new state.
func (b *Board) ToggleCollapse(id string) bool {
	return b.collapsed.Toggle(id)
}

// IsCollapsed reports whether id's descendants are hidden.
func (b *Board) IsCollapsed(id string) bool {
	return b.collapsed.Contains(id)
}

// GotoNextHalf advances the window by one half-month.
func (b *Board) GotoNextHalf(ctx context.Context) {
	b.setCursor(ctx, b.cursor.Next())
}

// GotoPrevHalf moves the window back by one half-month.
func (b *Board) GotoPrevHalf(ctx context.Context) {
	b.setCursor(ctx, b.cursor.Prev())
}

// GotoToday shows the half-month containing today.
func (b *Board) GotoToday(ctx context.Context) {
	b.setCursor(ctx, CursorForToday(b.now()))
}

// SetMonth shows date's month, keeping the current half.
func (b *Board) SetMonth(ctx context.Context, date time.Time) {
	b.setCursor(ctx, b.cursor.WithMonth(date))
}

// Cursor returns the current window position.
func (b *Board) Cursor() Cursor { return b.cursor }

// Key returns the board's order slot.
func (b *Board) Key() domain.OrderKey { return b.order.Key() }

// Order returns the reconciled row order.
func (b *Board) Order() []string { return b.order.Order() }

// Items returns the full flattened forest, including items outside the
// window.
func (b *Board) Items() []*domain.GanttItem { return slices.Clone(b.items) }

// View returns the visible rows in order with their column spans.
func (b *Board) View() View {
	visible := VisibleIDs(b.order.Order(), b.inWindow, b.collapsed)
	rows := make([]Row, 0, len(visible))
	for _, id := range visible {
		item := b.inWindow[id]
		rows = append(rows, Row{
			Item:      item,
			Span:      GridCols(item, b.window),
			Collapsed: b.collapsed.Contains(id),
		})
	}
	return View{
		Cursor:     b.cursor,
		Days:       slices.Clone(b.window.Days),
		TodayIndex: b.window.TodayIndex,
		Rows:       rows,
	}
}

func (b *Board) setCursor(ctx context.Context, c Cursor) {
	b.cursor = c
	b.rebuild(ctx)
}

func (b *Board) rebuild(ctx context.Context) {
	now := b.now()
	b.items = Flatten(BuildForest(ResolveItems(b.raws, now)))
	b.window = b.cursor.Window(now)

	b.inWindow = make(map[string]*domain.GanttItem, len(b.items))
	ids := make([]string, 0, len(b.items))
	for _, it := range b.items {
		if _, dup := b.inWindow[it.ID]; dup {
			continue
		}
		if b.window.Overlaps(it.Start, it.End) {
			b.inWindow[it.ID] = it
			ids = append(ids, it.ID)
		}
	}

	if !b.reconciled || !sameIDSet(ids, b.windowIDs) {
		order := b.order.Reconcile(ctx, ids)
		b.reconciled = true
		b.logger.DebugContext(ctx, "order_reconciled",
			"key", b.order.Key().String(),
			"window", b.cursor.String(),
			"count", len(order),
		)
	}
	b.windowIDs = ids
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
