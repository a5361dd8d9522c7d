package domain

import "time"

// GanttItem is the positioned form of a RawItem. A forest of GanttItems is
// rebuilt from scratch for every computation cycle.
type GanttItem struct {
	ID           string
	Name         string
	Start        time.Time
	End          time.Time
	HasRealDates bool
	IsTask       bool
	ParentID     *string

	// Children is owned by this node; a child has exactly one parent.
	Children []*GanttItem
	Level    int

	// ChildCount is the number of direct structural children for tasks and
	// the number of linked task records for projects.
	ChildCount int

	Assignees []string
	Completed bool
}

// HasParent reports whether the item is wired under another item.
func (g *GanttItem) HasParent() bool {
	return g.IsTask && g.ParentID != nil
}
