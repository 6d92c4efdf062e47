package service

import (
	"context"

	"github.com/alexanderramin/eap/internal/contract"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/importer"
	"github.com/alexanderramin/eap/internal/wbs"
)

type EAPService interface {
	Create(ctx context.Context, session domain.Session, e *domain.EAP) error
	GetByID(ctx context.Context, id string) (*domain.EAP, error)
	// Resolve accepts either a short id (case-insensitive) or a full id.
	Resolve(ctx context.Context, ref string) (*domain.EAP, error)
	List(ctx context.Context) ([]*domain.EAP, error)
	Delete(ctx context.Context, id string) error
}

// WBSService runs every mutation through a wbs.Engine built from the stored
// snapshot and persists the outcome in the same transaction.
type WBSService interface {
	Load(ctx context.Context, eapID string) (*wbs.Engine, error)
	GetItem(ctx context.Context, id string) (*domain.WBSItem, error)
	CreateItem(ctx context.Context, it *domain.WBSItem) error
	UpdateItem(ctx context.Context, id string, patch wbs.ItemPatch) (*domain.WBSItem, error)
	DeleteItem(ctx context.Context, id string) (wbs.DeleteResult, error)
	AddDependency(ctx context.Context, d *domain.Dependency) error
	RemoveDependency(ctx context.Context, id string) error

	Tree(ctx context.Context, req contract.TreeRequest) (*contract.TreeResponse, error)
	Status(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
	Schedule(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
}

type ImportService interface {
	ImportEAP(ctx context.Context, session domain.Session, filePath string) (*contract.ImportResult, error)
	ImportEAPFromSchema(ctx context.Context, session domain.Session, schema *importer.ImportSchema) (*contract.ImportResult, error)
}
