package repository

import (
	"context"

	"github.com/alexanderramin/eap/internal/domain"
)

type EAPRepo interface {
	Create(ctx context.Context, e *domain.EAP) error
	GetByID(ctx context.Context, id string) (*domain.EAP, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.EAP, error)
	List(ctx context.Context) ([]*domain.EAP, error)
	Update(ctx context.Context, e *domain.EAP) error
	Delete(ctx context.Context, id string) error
}

// ItemRepo persists WBS items. ListByEAP returns every item of one EAP in
// creation order; callers rebuild the hierarchy from parent ids.
type ItemRepo interface {
	Create(ctx context.Context, it *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	ListByEAP(ctx context.Context, eapID string) ([]*domain.WBSItem, error)
	Update(ctx context.Context, it *domain.WBSItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByID(ctx context.Context, id string) (*domain.Dependency, error)
	ListByEAP(ctx context.Context, eapID string) ([]*domain.Dependency, error)
	ListPredecessors(ctx context.Context, itemID string) ([]*domain.Dependency, error)
	ListSuccessors(ctx context.Context, itemID string) ([]*domain.Dependency, error)
	Delete(ctx context.Context, id string) error
}
