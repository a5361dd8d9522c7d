package app

import (
	"context"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/importer"
)

type TimelineUseCase interface {
	View(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
	Move(ctx context.Context, req MoveRequest) (*MoveResponse, error)
	ResetOrder(ctx context.Context, key domain.OrderKey) error
}

type ImportResult struct {
	TaskCount     int
	ProjectCount  int
	AssigneeCount int
	Items         []*domain.RawItem
}

type ImportItemsUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
