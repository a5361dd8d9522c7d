package timeline

import "github.com/alexanderramin/kairos-gantt/internal/domain"

// BuildForest links items into a forest through their ParentID references
// and assigns levels. It rewires Children, Level, ChildCount and ParentID in
// place and returns the roots in input order.
//
// A task whose parent is unknown (or itself) becomes a root with its
// ParentID cleared. Projects are always roots. Items that no root reaches
// hang off a parent cycle: for each such item, in input order, the first
// cycle member on its ancestor chain is detached from its parent and becomes
// a root, and traversal continues from there.
func BuildForest(items []*domain.GanttItem) []*domain.GanttItem {
	byID := make(map[string]*domain.GanttItem, len(items))
	for _, it := range items {
		it.Children = nil
		it.Level = 0
		if _, dup := byID[it.ID]; !dup {
			byID[it.ID] = it
		}
	}

	var roots []*domain.GanttItem
	for _, it := range items {
		if !it.IsTask {
			it.ParentID = nil
			roots = append(roots, it)
			continue
		}
		if it.ParentID == nil {
			roots = append(roots, it)
			continue
		}
		parent, ok := byID[*it.ParentID]
		if !ok || parent == it {
			it.ParentID = nil
			roots = append(roots, it)
			continue
		}
		parent.Children = append(parent.Children, it)
	}

	visited := make(map[*domain.GanttItem]bool, len(items))
	for _, root := range roots {
		assignLevels(root, 0, visited)
	}

	for _, it := range items {
		if visited[it] {
			continue
		}
		entry := cycleEntry(it, byID)
		if entry.ParentID != nil {
			if parent, ok := byID[*entry.ParentID]; ok {
				parent.Children = removeChild(parent.Children, entry)
			}
			entry.ParentID = nil
		}
		roots = append(roots, entry)
		assignLevels(entry, 0, visited)
	}

	for _, it := range items {
		if it.IsTask {
			it.ChildCount = len(it.Children)
		}
	}
	return roots
}

func assignLevels(node *domain.GanttItem, level int, visited map[*domain.GanttItem]bool) {
	if visited[node] {
		return
	}
	visited[node] = true
	node.Level = level
	for _, child := range node.Children {
		assignLevels(child, level+1, visited)
	}
}

// cycleEntry follows the parent chain from start and returns the first item
// seen twice.
func cycleEntry(start *domain.GanttItem, byID map[string]*domain.GanttItem) *domain.GanttItem {
	seen := make(map[*domain.GanttItem]bool)
	n := start
	for !seen[n] {
		seen[n] = true
		if n.ParentID == nil {
			return n
		}
		parent, ok := byID[*n.ParentID]
		if !ok {
			return n
		}
		n = parent
	}
	return n
}

func removeChild(children []*domain.GanttItem, target *domain.GanttItem) []*domain.GanttItem {
	out := children[:0]
	for _, c := range children {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// Flatten returns the forest in depth-first pre-order: each parent is
// followed by its subtree.
func Flatten(roots []*domain.GanttItem) []*domain.GanttItem {
	var out []*domain.GanttItem
	visited := make(map[*domain.GanttItem]bool)
	var walk func(n *domain.GanttItem)
	walk = func(n *domain.GanttItem) {
		if visited[n] {
			return
		}
		visited[n] = true
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
