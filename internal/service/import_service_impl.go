package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/db"
	"github.com/alexanderramin/kairos-gantt/internal/importer"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService persists imported items through uow so a failed import
// leaves no partial rows behind.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"items": len(schema.Items)}
	defer observe(ctx, s.observer, "import-items", time.Now().UTC(), fields, &err)

	if errs := importer.Validate(schema); len(errs) > 0 {
		return nil, fmt.Errorf("import validation failed (%d errors): %w", len(errs), errors.Join(errs...))
	}

	items, err := importer.Convert(schema, time.Now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &ImportResult{Items: items}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		for _, it := range items {
			if err := txItems.Create(ctx, it); err != nil {
				return fmt.Errorf("creating item %q: %w", it.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it.IsTask {
			result.TaskCount++
		} else {
			result.ProjectCount++
		}
		result.AssigneeCount += len(it.Assignees)
	}
	fields["tasks"] = result.TaskCount
	fields["projects"] = result.ProjectCount
	return result, nil
}
