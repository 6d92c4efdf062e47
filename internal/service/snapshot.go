package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/eap/internal/db"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/wbs"
)

// snapshot is an EAP with its engine, loaded inside one transaction.
type snapshot struct {
	eap    *domain.EAP
	engine *wbs.Engine
}

func loadSnapshot(ctx context.Context, tx db.DBTX, eapID string) (*snapshot, error) {
	e, err := repository.NewSQLiteEAPRepo(tx).GetByID(ctx, eapID)
	if err != nil {
		return nil, err
	}
	items, err := repository.NewSQLiteItemRepo(tx).ListByEAP(ctx, eapID)
	if err != nil {
		return nil, err
	}
	deps, err := repository.NewSQLiteDependencyRepo(tx).ListByEAP(ctx, eapID)
	if err != nil {
		return nil, err
	}
	engine, err := wbs.NewEngine(items, deps)
	if err != nil {
		return nil, fmt.Errorf("eap %s: %w", e.DisplayID(), err)
	}
	return &snapshot{eap: e, engine: engine}, nil
}
