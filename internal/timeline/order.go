package timeline

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// OrderStore persists one row-order slot per OrderKey.
type OrderStore interface {
	Load(ctx context.Context, key domain.OrderKey) ([]string, error)
	Save(ctx context.Context, key domain.OrderKey, ids []string) error
}

// OrderManager owns the custom row order for one OrderKey. It is a single
// writer: every command reads, modifies and writes the order in one call.
// Persistence failures are logged and never returned.
type OrderManager struct {
	store  OrderStore
	key    domain.OrderKey
	logger *slog.Logger
	order  []string
}

// NewOrderManager creates a manager for key. A nil store keeps the order in
// memory only; a nil logger discards log output.
func NewOrderManager(store OrderStore, key domain.OrderKey, logger *slog.Logger) *OrderManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OrderManager{store: store, key: key, logger: logger}
}

// Key returns the slot the manager reads and writes.
func (m *OrderManager) Key() domain.OrderKey { return m.key }

// Order returns a copy of the current order.
func (m *OrderManager) Order() []string {
	return slices.Clone(m.order)
}

// Reconcile merges the persisted order with the ids currently in the window
// and returns the result. The merged order is written back only when it
// differs from what was loaded.
func (m *OrderManager) Reconcile(ctx context.Context, windowIDs []string) []string {
	saved := m.load(ctx)
	m.order = ReconcileOrder(saved, windowIDs)
	if !slices.Equal(m.order, saved) {
		m.persist(ctx)
	}
	return m.Order()
}

// Move places activeID at overID's position. Unknown ids and activeID ==
// overID are no-ops. Reports whether the order changed.
func (m *OrderManager) Move(ctx context.Context, activeID, overID string) bool {
	next, ok := MoveID(m.order, activeID, overID)
	if !ok {
		return false
	}
	m.order = next
	m.persist(ctx)
	return true
}

func (m *OrderManager) load(ctx context.Context) []string {
	if m.store == nil {
		return slices.Clone(m.order)
	}
	ids, err := m.store.Load(ctx, m.key)
	if err != nil {
		m.logger.WarnContext(ctx, "order_load_failed", "key", m.key.String(), "error", err.Error())
		return nil
	}
	return ids
}

func (m *OrderManager) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, m.key, m.Order()); err != nil {
		m.logger.WarnContext(ctx, "order_save_failed", "key", m.key.String(), "error", err.Error())
		return
	}
	m.logger.DebugContext(ctx, "order_saved", "key", m.key.String(), "count", len(m.order))
}

// ReconcileOrder keeps the saved ids still present in windowIDs in their
// saved relative order, then appends the remaining window ids in arrival
// order. The result holds each window id exactly once.
func ReconcileOrder(saved, windowIDs []string) []string {
	inWindow := make(map[string]bool, len(windowIDs))
	for _, id := range windowIDs {
		inWindow[id] = true
	}

	out := make([]string, 0, len(windowIDs))
	seen := make(map[string]bool, len(windowIDs))
	for _, id := range saved {
		if inWindow[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range windowIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// MoveID removes activeID and reinserts it at overID's index. Returns the
// input unchanged and false when either id is missing or they are equal.
func MoveID(order []string, activeID, overID string) ([]string, bool) {
	if activeID == overID {
		return order, false
	}
	from := slices.Index(order, activeID)
	to := slices.Index(order, overID)
	if from < 0 || to < 0 {
		return order, false
	}

	out := slices.Clone(order)
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, activeID)
	return out, true
}

// CollapseSet holds the ids whose descendants are hidden. Membership never
// hides the collapsed node itself.
type CollapseSet map[string]struct{}

// NewCollapseSet returns a set containing ids.
func NewCollapseSet(ids ...string) CollapseSet {
	c := make(CollapseSet, len(ids))
	for _, id := range ids {
		c[id] = struct{}{}
	}
	return c
}

// Toggle flips id's membership and reports whether it is now collapsed.
func (c CollapseSet) Toggle(id string) bool {
	if _, ok := c[id]; ok {
		delete(c, id)
		return false
	}
	c[id] = struct{}{}
	return true
}

// Contains reports whether id is collapsed.
func (c CollapseSet) Contains(id string) bool {
	_, ok := c[id]
	return ok
}

// IDs returns the collapsed ids sorted.
func (c CollapseSet) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// VisibleIDs filters order to the ids in the window and drops tasks that
// have a collapsed ancestor. The ancestor walk only passes through items
// that are themselves in the window. Relative order is preserved.
func VisibleIDs(order []string, inWindow map[string]*domain.GanttItem, collapsed CollapseSet) []string {
	out := make([]string, 0, len(order))
	for _, id := range order {
		item, ok := inWindow[id]
		if !ok {
			continue
		}
		if item.IsTask && hiddenByAncestor(item, inWindow, collapsed) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func hiddenByAncestor(item *domain.GanttItem, inWindow map[string]*domain.GanttItem, collapsed CollapseSet) bool {
	seen := map[string]bool{item.ID: true}
	for pid := item.ParentID; pid != nil; {
		parent, ok := inWindow[*pid]
		if !ok || seen[parent.ID] {
			return false
		}
		if collapsed.Contains(parent.ID) {
			return true
		}
		seen[parent.ID] = true
		pid = parent.ParentID
	}
	return false
}
