package app

import (
	"context"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/importer"
)

type TreeUseCase interface {
	Tree(ctx context.Context, req TreeRequest) (*TreeResponse, error)
}

type StatusUseCase interface {
	Status(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type ScheduleUseCase interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type ImportResult struct {
	EAP             *domain.EAP
	ItemCount       int
	DependencyCount int
}

type ImportEAPUseCase interface {
	ImportEAP(ctx context.Context, session domain.Session, filePath string) (*ImportResult, error)
	ImportEAPFromSchema(ctx context.Context, session domain.Session, schema *importer.ImportSchema) (*ImportResult, error)
}
