package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/repository"
)

// Shared fixtures for the service tests. The Repository is assembled by hand
// from the in-memory mocks; its InTx fallback serializes callbacks, which is
// the lock discipline the concurrency tests rely on.

var (
	masterActor = model.Actor{UserID: 1, Role: model.RoleMaster}

	directorActor = model.Actor{UserID: 2, Role: model.RoleDirector, DirectorateID: 1}

	auxActor = model.Actor{UserID: 3, Role: model.RoleAuxiliary, OrgUnitID: 7, DirectorateID: 1}

	commonActor = model.Actor{UserID: 4, Role: model.RoleCommon, OrgUnitID: 7, ServiceNumber: 9001}
)

type testEnv struct {
	repo     *repository.Repository
	ceilings CeilingService
	dists    DistributionService
	events   EventService
	ops      OperationService
	entries  ScheduleEntryService
	summary  SummaryService
}

func newTestEnv() *testEnv {
	repo := &repository.Repository{
		User:          newMockUserRepo(),
		Directorate:   newMockDirectorateRepo(),
		OrgUnit:       newMockOrgUnitRepo(),
		Ceiling:       newMockCeilingRepo(),
		Distribution:  newMockDistributionRepo(),
		Event:         newMockEventRepo(),
		Operation:     newMockOperationRepo(),
		ScheduleEntry: newMockScheduleEntryRepo(),
	}
	logger := zap.NewNop()
	cfg := &config.Config{Quota: config.QuotaConfig{OfficerRate: 300, EnlistedRate: 200}}
	events := NewEventService(repo, logger)
	return &testEnv{
		repo:     repo,
		ceilings: NewCeilingService(repo, logger),
		dists:    NewDistributionService(repo, logger),
		events:   events,
		ops:      NewOperationService(repo, logger),
		entries:  NewScheduleEntryService(cfg, repo, logger),
		summary:  NewSummaryService(cfg, repo, events, logger),
	}
}

// mustCeiling creates a ceiling as master or fails the test.
func (env *testEnv) mustCeiling(t *testing.T, fundCode, month, year, officers, enlisted int) *model.Ceiling {
	t.Helper()
	c, err := env.ceilings.Create(context.Background(), &dto.CreateCeilingRequest{
		FundName:        "Test Fund",
		FundCode:        fundCode,
		Month:           month,
		Year:            year,
		OfficersCeiling: officers,
		EnlistedCeiling: enlisted,
	}, masterActor)
	if err != nil {
		t.Fatalf("ceiling create: %v", err)
	}
	return c
}

func (env *testEnv) mustDistribution(t *testing.T, ceilingID, directorateID uint, officers, enlisted int) *model.Distribution {
	t.Helper()
	d, err := env.dists.Create(context.Background(), &dto.CreateDistributionRequest{
		CeilingID:     ceilingID,
		DirectorateID: directorateID,
		Name:          "Test Distribution",
		OfficersQuota: officers,
		EnlistedQuota: enlisted,
	}, masterActor)
	if err != nil {
		t.Fatalf("distribution create: %v", err)
	}
	return d
}

func (env *testEnv) mustEvent(t *testing.T, distributionID, orgUnitID uint, officers, enlisted int) *model.Event {
	t.Helper()
	e, err := env.events.Create(context.Background(), &dto.CreateEventRequest{
		DistributionID: distributionID,
		OrgUnitID:      orgUnitID,
		Name:           "Test Event",
		OfficersQuota:  officers,
		EnlistedQuota:  enlisted,
	}, masterActor)
	if err != nil {
		t.Fatalf("event create: %v", err)
	}
	return e
}

func (env *testEnv) mustOperation(t *testing.T, eventID uint, officers, enlisted int) *model.Operation {
	t.Helper()
	op, err := env.ops.Create(context.Background(), &dto.CreateOperationRequest{
		EventID:       eventID,
		Name:          "Test Operation",
		OfficersQuota: officers,
		EnlistedQuota: enlisted,
	}, masterActor)
	if err != nil {
		t.Fatalf("operation create: %v", err)
	}
	return op
}

func (env *testEnv) mustEntry(t *testing.T, operationID uint, personType model.PersonType, quota int) *model.ScheduleEntry {
	t.Helper()
	starts := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	entry, err := env.entries.Create(context.Background(), &dto.CreateEntryRequest{
		OperationID:   operationID,
		ServiceNumber: 9001,
		PersonName:    "J. Silva",
		PersonType:    string(personType),
		Quota:         quota,
		StartsAt:      starts,
		EndsAt:        starts.Add(6 * time.Hour),
	}, masterActor)
	if err != nil {
		t.Fatalf("entry create: %v", err)
	}
	return entry
}

func intPtr(v int) *int { return &v }

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}
