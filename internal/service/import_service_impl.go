package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/db"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/importer"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/wbs"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportEAP(ctx context.Context, session domain.Session, filePath string) (*contract.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, session, schema)
}

func (s *importService) ImportEAPFromSchema(ctx context.Context, session domain.Session, schema *importer.ImportSchema) (*contract.ImportResult, error) {
	return s.importSchema(ctx, session, schema)
}

// importSchema replays the snapshot through an empty engine so codes are
// assigned and every dependency rule is enforced, persisting as it goes.
// Any failure rolls the whole import back.
func (s *importService) importSchema(ctx context.Context, session domain.Session, schema *importer.ImportSchema) (result *contract.ImportResult, err error) {
	uc := startUseCase(s.observer, "import-eap", map[string]any{"short_id": schema.EAP.ShortID})
	defer func() { uc.finish(ctx, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	snap, err := importer.Convert(schema, session)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		eaps := repository.NewSQLiteEAPRepo(tx)
		items := repository.NewSQLiteItemRepo(tx)
		deps := repository.NewSQLiteDependencyRepo(tx)

		if _, err := eaps.GetByShortID(ctx, snap.EAP.ShortID); err == nil {
			return fmt.Errorf("short ID %q already in use", snap.EAP.ShortID)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := eaps.Create(ctx, snap.EAP); err != nil {
			return fmt.Errorf("creating eap: %w", err)
		}

		engine, err := wbs.NewEngine(nil, nil)
		if err != nil {
			return err
		}
		for i, it := range snap.Items {
			if err := engine.CreateItem(it); err != nil {
				return fmt.Errorf("items[%d] %q: %w", i, it.Name, err)
			}
			if err := items.Create(ctx, it); err != nil {
				return fmt.Errorf("creating item %q: %w", it.Name, err)
			}
		}
		for i, d := range snap.Dependencies {
			if err := engine.AddDependency(d); err != nil {
				return fmt.Errorf("dependencies[%d]: %w", i, err)
			}
			if err := deps.Create(ctx, d); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.fields["item_count"] = len(snap.Items)
	uc.fields["dependency_count"] = len(snap.Dependencies)
	return &contract.ImportResult{
		EAP:             snap.EAP,
		ItemCount:       len(snap.Items),
		DependencyCount: len(snap.Dependencies),
	}, nil
}

func formatValidationErrors(errs []error) error {
	return fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
}
