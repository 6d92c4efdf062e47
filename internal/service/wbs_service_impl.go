package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/db"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/wbs"
)

type wbsService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewWBSService(uow db.UnitOfWork, observers ...UseCaseObserver) WBSService {
	return &wbsService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *wbsService) Load(ctx context.Context, eapID string) (*wbs.Engine, error) {
	var engine *wbs.Engine
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, eapID)
		if err != nil {
			return err
		}
		engine = snap.engine
		return nil
	})
	return engine, err
}

func (s *wbsService) GetItem(ctx context.Context, id string) (*domain.WBSItem, error) {
	var it *domain.WBSItem
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		it, err = repository.NewSQLiteItemRepo(tx).GetByID(ctx, id)
		return err
	})
	return it, err
}

func (s *wbsService) CreateItem(ctx context.Context, it *domain.WBSItem) (err error) {
	uc := startUseCase(s.observer, "create-item", map[string]any{"eap_id": it.EAPID})
	defer func() { uc.finish(ctx, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, it.EAPID)
		if err != nil {
			return err
		}
		now := s.now()
		it.CreatedAt = now
		it.UpdatedAt = now
		if err := snap.engine.CreateItem(it); err != nil {
			return err
		}
		uc.fields["code"] = it.Code
		return repository.NewSQLiteItemRepo(tx).Create(ctx, it)
	})
}

func (s *wbsService) UpdateItem(ctx context.Context, id string, patch wbs.ItemPatch) (updated *domain.WBSItem, err error) {
	uc := startUseCase(s.observer, "update-item", map[string]any{"item_id": id})
	defer func() { uc.finish(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		cur, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		snap, err := loadSnapshot(ctx, tx, cur.EAPID)
		if err != nil {
			return err
		}
		next, err := snap.engine.UpdateItem(id, patch)
		if err != nil {
			return err
		}
		next.UpdatedAt = s.now()
		if err := items.Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes the item's subtree and the dependencies touching it.
// Every removed row is deleted explicitly, dependencies first and then items
// deepest first, so storage matches the engine whether or not the schema
// cascade fires.
func (s *wbsService) DeleteItem(ctx context.Context, id string) (res wbs.DeleteResult, err error) {
	uc := startUseCase(s.observer, "delete-item", map[string]any{"item_id": id})
	defer func() { uc.finish(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteItemRepo(tx)
		deps := repository.NewSQLiteDependencyRepo(tx)

		cur, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		snap, err := loadSnapshot(ctx, tx, cur.EAPID)
		if err != nil {
			return err
		}
		res, err = snap.engine.DeleteItem(id)
		if err != nil {
			return err
		}
		for _, d := range res.Dependencies {
			if err := deps.Delete(ctx, d.ID); err != nil {
				return fmt.Errorf("removing dependency %s: %w", d.ID, err)
			}
		}
		// ItemIDs is depth-first with parents before children.
		for _, rid := range slices.Backward(res.ItemIDs) {
			if err := items.Delete(ctx, rid); err != nil {
				return fmt.Errorf("removing item %s: %w", rid, err)
			}
		}
		return nil
	})
	if err != nil {
		return wbs.DeleteResult{}, err
	}
	uc.fields["items_removed"] = len(res.ItemIDs)
	uc.fields["dependencies_removed"] = len(res.Dependencies)
	return res, nil
}

func (s *wbsService) AddDependency(ctx context.Context, d *domain.Dependency) (err error) {
	uc := startUseCase(s.observer, "add-dependency", map[string]any{
		"predecessor_id": d.PredecessorID,
		"successor_id":   d.SuccessorID,
		"type":           string(d.Type),
	})
	defer func() { uc.finish(ctx, err) }()

	if d.Type == "" {
		d.Type = domain.FinishToStart
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		pred, err := repository.NewSQLiteItemRepo(tx).GetByID(ctx, d.PredecessorID)
		if err != nil {
			return fmt.Errorf("predecessor %s: %w", d.PredecessorID, err)
		}
		if d.EAPID == "" {
			d.EAPID = pred.EAPID
		}
		if d.EAPID != pred.EAPID {
			return fmt.Errorf("predecessor %s: %w", d.PredecessorID, domain.ErrNotFound)
		}
		snap, err := loadSnapshot(ctx, tx, d.EAPID)
		if err != nil {
			return err
		}
		d.CreatedAt = s.now()
		if err := snap.engine.AddDependency(d); err != nil {
			return err
		}
		return repository.NewSQLiteDependencyRepo(tx).Create(ctx, d)
	})
}

func (s *wbsService) RemoveDependency(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "remove-dependency", map[string]any{"dependency_id": id})
	defer func() { uc.finish(ctx, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		deps := repository.NewSQLiteDependencyRepo(tx)
		d, err := deps.GetByID(ctx, id)
		if err != nil {
			return err
		}
		snap, err := loadSnapshot(ctx, tx, d.EAPID)
		if err != nil {
			return err
		}
		if _, err := snap.engine.RemoveDependency(id); err != nil {
			return err
		}
		return deps.Delete(ctx, id)
	})
}

func (s *wbsService) Tree(ctx context.Context, req contract.TreeRequest) (*contract.TreeResponse, error) {
	if req.EAPID == "" {
		return nil, &contract.RequestError{Code: contract.ErrMissingEAP, Message: "an EAP is required"}
	}
	for _, st := range req.Statuses {
		if !domain.ValidItemStatuses[string(st)] {
			return nil, &contract.RequestError{Code: contract.ErrInvalidStatus, Message: fmt.Sprintf("unknown status %q", st)}
		}
	}
	today := s.today(req.Now)

	var resp *contract.TreeResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, req.EAPID)
		if err != nil {
			return err
		}
		resp = &contract.TreeResponse{EAP: snap.eap, Filtered: req.Filtered()}
		if pred := wbs.TreeFilter(req.Statuses, req.Overdue, today); pred != nil {
			resp.Rows = snap.engine.Filter(pred)
		} else {
			resp.Rows = snap.engine.Rows()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *wbsService) Status(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	if req.EAPID == "" {
		return nil, &contract.RequestError{Code: contract.ErrMissingEAP, Message: "an EAP is required"}
	}
	today := s.today(req.Now)

	var resp *contract.StatusResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, req.EAPID)
		if err != nil {
			return err
		}
		resp = &contract.StatusResponse{
			EAP:         snap.eap,
			GeneratedAt: s.now(),
			Aggregate:   snap.engine.Aggregate(),
			Schedule:    snap.engine.ScheduleStats(today),
			Violations:  len(snap.engine.Violations()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *wbsService) Schedule(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error) {
	if req.EAPID == "" {
		return nil, &contract.RequestError{Code: contract.ErrMissingEAP, Message: "an EAP is required"}
	}

	var resp *contract.ScheduleResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, req.EAPID)
		if err != nil {
			return err
		}
		resp = &contract.ScheduleResponse{
			EAP:        snap.eap,
			Gantt:      snap.engine.Gantt(),
			Violations: snap.engine.Violations(),
			CodeIssues: snap.engine.Store().CheckCodes(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *wbsService) today(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return s.now()
}
