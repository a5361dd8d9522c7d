package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/google/uuid"
)

// ErrInvalidItem is returned when an item fails validation on create.
var ErrInvalidItem = errors.New("invalid item")

type itemService struct {
	items    repository.ItemRepo
	observer UseCaseObserver
}

func NewItemService(items repository.ItemRepo, observers ...UseCaseObserver) ItemService {
	return &itemService{items: items, observer: useCaseObserverOrNoop(observers)}
}

func (s *itemService) Create(ctx context.Context, item *domain.RawItem) (err error) {
	defer observe(ctx, s.observer, "item-create", time.Now().UTC(), map[string]any{"kind": string(item.Kind())}, &err)

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	if item.CreatedAt == nil {
		item.CreatedAt = &now
	}
	item.UpdatedAt = now

	if !item.IsTask && (item.ParentID != nil || item.ProjectID != nil) {
		return fmt.Errorf("%w: projects cannot have a parent or project", ErrInvalidItem)
	}
	if item.ParentID != nil {
		if *item.ParentID == item.ID {
			return fmt.Errorf("%w: a task cannot be its own parent", ErrInvalidItem)
		}
		if err := s.requireKind(ctx, *item.ParentID, true); err != nil {
			return fmt.Errorf("%w: parent: %v", ErrInvalidItem, err)
		}
	}
	if item.ProjectID != nil {
		if err := s.requireKind(ctx, *item.ProjectID, false); err != nil {
			return fmt.Errorf("%w: project: %v", ErrInvalidItem, err)
		}
	}

	return s.items.Create(ctx, item)
}

func (s *itemService) requireKind(ctx context.Context, id string, task bool) error {
	ref, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ref.IsTask != task {
		return fmt.Errorf("item %s is a %s", id, strings.TrimSuffix(string(ref.Kind()), "s"))
	}
	return nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.RawItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, filter repository.ItemFilter) ([]domain.RawItem, error) {
	return s.items.List(ctx, filter)
}

// MarkDone stamps the completion time. Marking a completed item again
// keeps the original timestamp.
func (s *itemService) MarkDone(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "item-done", time.Now().UTC(), map[string]any{"id": id}, &err)

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Completed() {
		return nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	item.CompletedAt = &now
	item.UpdatedAt = now
	return s.items.Update(ctx, item)
}

func (s *itemService) Assign(ctx context.Context, id string, assignees []string) error {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return err
	}
	cleaned := make([]string, 0, len(assignees))
	for _, a := range assignees {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	return s.items.SetAssignees(ctx, id, cleaned)
}

func (s *itemService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "item-delete", time.Now().UTC(), map[string]any{"id": id}, &err)
	return s.items.Delete(ctx, id)
}
