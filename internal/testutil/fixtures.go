package testutil

import (
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/google/uuid"
)

// ItemOption customizes a test item.
type ItemOption func(*domain.RawItem)

func WithID(id string) ItemOption {
	return func(r *domain.RawItem) {
		r.ID = id
	}
}

func WithParent(id string) ItemOption {
	return func(r *domain.RawItem) {
		r.ParentID = &id
	}
}

func WithProject(id string) ItemOption {
	return func(r *domain.RawItem) {
		r.ProjectID = &id
	}
}

func WithCreatedAt(t time.Time) ItemOption {
	return func(r *domain.RawItem) {
		r.CreatedAt = &t
	}
}

func WithDueDate(t time.Time) ItemOption {
	return func(r *domain.RawItem) {
		r.DueDate = &t
	}
}

// WithRange sets the explicit range for the item's kind: start/end for
// tasks, kickoff/close for projects.
func WithRange(start, end time.Time) ItemOption {
	return func(r *domain.RawItem) {
		if r.IsTask {
			r.StartDate, r.EndDate = &start, &end
			return
		}
		r.KickoffDate, r.CloseDate = &start, &end
	}
}

func WithAssignees(names ...string) ItemOption {
	return func(r *domain.RawItem) {
		r.Assignees = names
	}
}

func WithCompletedAt(t time.Time) ItemOption {
	return func(r *domain.RawItem) {
		r.CompletedAt = &t
	}
}

func newTestItem(name string, isTask bool, opts []ItemOption) *domain.RawItem {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.RawItem{
		ID:        uuid.New().String(),
		Name:      name,
		IsTask:    isTask,
		CreatedAt: &now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestTask returns a task created now with no explicit dates.
func NewTestTask(name string, opts ...ItemOption) *domain.RawItem {
	return newTestItem(name, true, opts)
}

// NewTestProject returns a project created now with no explicit dates.
func NewTestProject(name string, opts ...ItemOption) *domain.RawItem {
	return newTestItem(name, false, opts)
}

// Date returns midnight UTC for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
