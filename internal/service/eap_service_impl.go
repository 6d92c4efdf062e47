package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/google/uuid"
)

type eapService struct {
	eaps     repository.EAPRepo
	observer UseCaseObserver
}

func NewEAPService(eaps repository.EAPRepo, observers ...UseCaseObserver) EAPService {
	return &eapService{eaps: eaps, observer: useCaseObserverOrNoop(observers)}
}

func (s *eapService) Create(ctx context.Context, session domain.Session, e *domain.EAP) (err error) {
	uc := startUseCase(s.observer, "create-eap", map[string]any{"short_id": e.ShortID})
	defer func() { uc.finish(ctx, err) }()

	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: eap name is required", domain.ErrInvalidItem)
	}
	e.ShortID = strings.ToUpper(e.ShortID)
	if err := e.ValidateShortID(); err != nil {
		return err
	}
	if _, lookupErr := s.eaps.GetByShortID(ctx, e.ShortID); lookupErr == nil {
		return fmt.Errorf("short ID %q already in use", e.ShortID)
	} else if !errors.Is(lookupErr, domain.ErrNotFound) {
		return lookupErr
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	e.CreatedBy = session.Actor()
	return s.eaps.Create(ctx, e)
}

func (s *eapService) GetByID(ctx context.Context, id string) (*domain.EAP, error) {
	return s.eaps.GetByID(ctx, id)
}

func (s *eapService) Resolve(ctx context.Context, ref string) (*domain.EAP, error) {
	e, err := s.eaps.GetByShortID(ctx, ref)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.eaps.GetByID(ctx, ref)
}

func (s *eapService) List(ctx context.Context) ([]*domain.EAP, error) {
	return s.eaps.List(ctx)
}

func (s *eapService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-eap", map[string]any{"eap_id": id})
	defer func() { uc.finish(ctx, err) }()

	return s.eaps.Delete(ctx, id)
}
