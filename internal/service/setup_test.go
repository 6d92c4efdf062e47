package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/repository"
	"github.com/alexanderramin/eap/internal/testutil"
	"github.com/stretchr/testify/require"
)

var tester = domain.Session{UserID: "u-1", DisplayName: "Ana Souza"}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type services struct {
	db       *sql.DB
	eaps     EAPService
	wbs      WBSService
	imports  ImportService
	observer *recordingObserver
}

func newServices(t *testing.T) *services {
	t.Helper()
	return newServicesOn(t, testutil.NewTestDB(t))
}

func newServicesOn(t *testing.T, database *sql.DB) *services {
	t.Helper()
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	return &services{
		db:       database,
		eaps:     NewEAPService(repository.NewSQLiteEAPRepo(database), obs),
		wbs:      NewWBSService(uow, obs),
		imports:  NewImportService(uow, obs),
		observer: obs,
	}
}

// newEAP creates and persists an EAP through the service.
func (s *services) newEAP(t *testing.T, shortID string) *domain.EAP {
	t.Helper()
	e := &domain.EAP{Name: "Obra " + shortID, ShortID: shortID}
	require.NoError(t, s.eaps.Create(context.Background(), tester, e))
	return e
}

// addItem creates an item through the service and returns it with its code.
func (s *services) addItem(t *testing.T, eapID, name string, opts ...testutil.ItemOption) *domain.WBSItem {
	t.Helper()
	it := testutil.NewTestItem(eapID, name, opts...)
	it.ID = ""
	require.NoError(t, s.wbs.CreateItem(context.Background(), it))
	return it
}
