package repository

import (
	"context"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
)

// ItemFilter narrows List results. A zero filter lists everything.
type ItemFilter struct {
	Kind          domain.ResourceKind
	HideCompleted bool
}

type ItemRepo interface {
	Create(ctx context.Context, item *domain.RawItem) error
	GetByID(ctx context.Context, id string) (*domain.RawItem, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.RawItem, error)
	Update(ctx context.Context, item *domain.RawItem) error
	SetAssignees(ctx context.Context, id string, assignees []string) error
	Delete(ctx context.Context, id string) error
}

// OrderRepo persists one custom row order per (resource kind, user) slot.
// It satisfies timeline.OrderStore.
type OrderRepo interface {
	Load(ctx context.Context, key domain.OrderKey) ([]string, error)
	Save(ctx context.Context, key domain.OrderKey, ids []string) error
	Reset(ctx context.Context, key domain.OrderKey) error
}
