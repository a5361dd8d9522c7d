package service

import (
	"context"

	"github.com/alexanderramin/kairos-gantt/internal/app"
	"github.com/alexanderramin/kairos-gantt/internal/contract"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/importer"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/timeline"
)

type ItemService interface {
	Create(ctx context.Context, item *domain.RawItem) error
	GetByID(ctx context.Context, id string) (*domain.RawItem, error)
	List(ctx context.Context, filter repository.ItemFilter) ([]domain.RawItem, error)
	MarkDone(ctx context.Context, id string) error
	Assign(ctx context.Context, id string, assignees []string) error
	Delete(ctx context.Context, id string) error
}

type TimelineService interface {
	View(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineResponse, error)
	Move(ctx context.Context, req contract.MoveRequest) (*contract.MoveResponse, error)
	ResetOrder(ctx context.Context, key domain.OrderKey) error
	// OpenBoard returns a live board loaded with the current items for an
	// interactive session.
	OpenBoard(ctx context.Context, key domain.OrderKey, opts ...timeline.BoardOption) (*timeline.Board, error)
}

// ImportResult holds the outcome of an item import.
type ImportResult = app.ImportResult

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
