package domain

import "time"

// RawItem is a task or project record as stored or fetched. The timeline
// engine reads it and never mutates it.
type RawItem struct {
	ID     string
	Name   string
	IsTask bool

	// ParentID links a task to its parent task. Ignored for projects.
	ParentID *string
	// ProjectID links a task to its containing project.
	ProjectID *string

	// Explicit task dates (actual start / actual end).
	StartDate *time.Time
	EndDate   *time.Time

	// Explicit project dates (actual kickoff / actual close).
	KickoffDate *time.Time
	CloseDate   *time.Time

	DueDate     *time.Time
	Assignees   []string
	CompletedAt *time.Time

	// LinkedChildCount is the number of task records that reference this
	// project through ProjectID. Always zero for tasks.
	LinkedChildCount int

	CreatedAt *time.Time
	UpdatedAt time.Time
}

// ExplicitRange returns the item's explicit start and end for its kind:
// actual start/end for tasks, kickoff/close for projects.
func (r *RawItem) ExplicitRange() (start, end *time.Time) {
	if r.IsTask {
		return r.StartDate, r.EndDate
	}
	return r.KickoffDate, r.CloseDate
}

// Completed reports whether the item carries a completion marker.
func (r *RawItem) Completed() bool {
	return r.CompletedAt != nil
}

// Kind returns the resource kind the item belongs to.
func (r *RawItem) Kind() ResourceKind {
	if r.IsTask {
		return ResourceTasks
	}
	return ResourceProjects
}
