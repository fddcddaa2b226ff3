package service

import (
	"context"
	"fmt"

	"github.com/paulavishek/prizmai/internal/db"
	"github.com/paulavishek/prizmai/internal/importer"
	"github.com/paulavishek/prizmai/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

func (s *importService) ImportSeed(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSeedFromSchema(ctx, schema)
}

// ImportSeedFromSchema persists the whole seed in one transaction; a failure
// on any record leaves the database untouched.
func (s *importService) ImportSeedFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	seed, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		boards := repository.NewSQLiteBoardRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)
		completions := repository.NewSQLiteCompletionRepo(tx)

		for _, b := range seed.Boards {
			if err := boards.Create(ctx, b); err != nil {
				return fmt.Errorf("creating board %q: %w", b.Name, err)
			}
		}
		for _, t := range seed.Tasks {
			if err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		for _, c := range seed.Completions {
			if err := completions.Create(ctx, c); err != nil {
				return fmt.Errorf("creating completion record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Organization:    schema.Organization,
		BoardCount:      len(seed.Boards),
		TaskCount:       len(seed.Tasks),
		CompletionCount: len(seed.Completions),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
