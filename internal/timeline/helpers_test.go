package timeline

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func task(id string, opts ...func(*domain.RawItem)) domain.RawItem {
	r := domain.RawItem{ID: id, Name: "Task " + id, IsTask: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func project(id string, opts ...func(*domain.RawItem)) domain.RawItem {
	r := domain.RawItem{ID: id, Name: "Project " + id}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func created(s string) func(*domain.RawItem) {
	return func(r *domain.RawItem) { r.CreatedAt = dayPtr(s) }
}

func due(s string) func(*domain.RawItem) {
	return func(r *domain.RawItem) { r.DueDate = dayPtr(s) }
}

func span(start, end string) func(*domain.RawItem) {
	return func(r *domain.RawItem) {
		if r.IsTask {
			r.StartDate, r.EndDate = dayPtr(start), dayPtr(end)
			return
		}
		r.KickoffDate, r.CloseDate = dayPtr(start), dayPtr(end)
	}
}

func parent(id string) func(*domain.RawItem) {
	return func(r *domain.RawItem) { r.ParentID = &id }
}

func ganttItem(id string, isTask bool, parentID string) *domain.GanttItem {
	g := &domain.GanttItem{ID: id, IsTask: isTask}
	if parentID != "" {
		g.ParentID = &parentID
	}
	return g
}

func byID(items []*domain.GanttItem) map[string]*domain.GanttItem {
	m := make(map[string]*domain.GanttItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

func ids(items []*domain.GanttItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// memStore is an in-memory OrderStore that counts writes.
type memStore struct {
	slots   map[domain.OrderKey][]string
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{slots: map[domain.OrderKey][]string{}}
}

func (s *memStore) Load(_ context.Context, key domain.OrderKey) ([]string, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]string(nil), s.slots[key]...), nil
}

func (s *memStore) Save(_ context.Context, key domain.OrderKey, ids []string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.slots[key] = append([]string(nil), ids...)
	return nil
}

var errBoom = errors.New("boom")
