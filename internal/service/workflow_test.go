package service

import (
	"context"
	"errors"
	"testing"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
)

// Status automaton and capability-table behavior.

func TestWorkflow_ForwardOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 500, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 5, 5)

	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusAuthorized, masterActor); err != nil {
		t.Fatalf("PENDING→AUTHORIZED: %v", err)
	}
	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusHomologated, masterActor); err != nil {
		t.Fatalf("AUTHORIZED→HOMOLOGATED: %v", err)
	}
	// no demotion, not even for master
	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusPending, masterActor); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on demotion, got %v", err)
	}
}

// Once an ancestor is HOMOLOGATED, a unit-scoped actor's structural mutation
// fails; a privileged actor still succeeds and descendants keep their own
// statuses.
func TestWorkflow_HomologatedFreeze(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 501, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 10, 10)
	op := env.mustOperation(t, event.ID, 4, 4)

	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusHomologated, masterActor); err != nil {
		t.Fatalf("homologate: %v", err)
	}

	// unit clerk of the owning unit is frozen out
	_, err := env.ops.Update(ctx, op.ID, &dto.UpdateOperationRequest{OfficersQuota: intPtr(3)}, auxActor)
	if !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen for unit actor, got %v", err)
	}

	// privileged override still works
	updated, err := env.ops.Update(ctx, op.ID, &dto.UpdateOperationRequest{OfficersQuota: intPtr(3)}, masterActor)
	if err != nil {
		t.Fatalf("privileged update: %v", err)
	}
	if updated.OfficersQuota != 3 {
		t.Errorf("quota not applied: %d", updated.OfficersQuota)
	}
	// the override does not reset the operation's own status
	if updated.Status != model.StatusPending {
		t.Errorf("descendant status changed implicitly: %s", updated.Status)
	}
}

// A non-privileged actor tied to the owning unit may homologate their own
// unit's event; another unit's clerk may not.
func TestWorkflow_SelfServiceEventHomologation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 502, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 5, 5)

	otherUnit := model.Actor{UserID: 9, Role: model.RoleAuxiliary, OrgUnitID: 8}
	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusHomologated, otherUnit); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign unit, got %v", err)
	}

	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusHomologated, auxActor); err != nil {
		t.Fatalf("self-service homologation: %v", err)
	}
	// and never demote it
	if _, err := env.events.TransitionStatus(ctx, event.ID, model.StatusAuthorized, auxActor); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on demotion, got %v", err)
	}
}

func TestWorkflow_HomologateMonthScoping(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 503, 6, 2025, 20, 20)
	dist := env.mustDistribution(t, ceiling.ID, 1, 20, 20)
	env.mustEvent(t, dist.ID, 7, 5, 5)
	env.mustEvent(t, dist.ID, 8, 5, 5)

	// unit clerk cannot close another unit's month
	if _, err := env.events.HomologateMonth(ctx, &dto.HomologateMonthRequest{Month: 6, Year: 2025, OrgUnitID: 8}, auxActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// own unit: exactly one event closed
	n, err := env.events.HomologateMonth(ctx, &dto.HomologateMonthRequest{Month: 6, Year: 2025, OrgUnitID: 7}, auxActor)
	if err != nil {
		t.Fatalf("homologate month: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 event closed, got %d", n)
	}

	// privileged, all units: the remaining one
	n, err = env.events.HomologateMonth(ctx, &dto.HomologateMonthRequest{Month: 6, Year: 2025}, masterActor)
	if err != nil {
		t.Fatalf("privileged homologate month: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 remaining event closed, got %d", n)
	}
}

func TestWorkflow_LateEventsRequirePrivilege(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 504, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)

	_, err := env.events.Create(ctx, &dto.CreateEventRequest{
		DistributionID: dist.ID,
		OrgUnitID:      7,
		Name:           "late entry window",
		OfficersQuota:  1,
		ScheduleKind:   "LATE",
	}, auxActor)
	if !errors.Is(err, ErrLateEvent) {
		t.Fatalf("expected ErrLateEvent, got %v", err)
	}

	if _, err := env.events.Create(ctx, &dto.CreateEventRequest{
		DistributionID: dist.ID,
		OrgUnitID:      7,
		Name:           "late entry window",
		OfficersQuota:  1,
		ScheduleKind:   "LATE",
	}, masterActor); err != nil {
		t.Fatalf("privileged late event: %v", err)
	}
}

// Deletion requires zero children at every level, for every role.
func TestWorkflow_DeleteBlockedByChildren(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 505, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 5, 5)
	op := env.mustOperation(t, event.ID, 2, 2)
	entry := env.mustEntry(t, op.ID, "OFFICER", 1)

	// privilege does not bypass the zero-children rule
	if err := env.ceilings.Delete(ctx, ceiling.ID, masterActor); !errors.Is(err, ErrHasChildren) {
		t.Errorf("ceiling delete: expected ErrHasChildren, got %v", err)
	}
	if err := env.dists.Delete(ctx, dist.ID, masterActor); !errors.Is(err, ErrHasChildren) {
		t.Errorf("distribution delete: expected ErrHasChildren, got %v", err)
	}
	if err := env.events.Delete(ctx, event.ID, masterActor); !errors.Is(err, ErrHasChildren) {
		t.Errorf("event delete: expected ErrHasChildren, got %v", err)
	}
	if err := env.ops.Delete(ctx, op.ID, masterActor); !errors.Is(err, ErrHasChildren) {
		t.Errorf("operation delete: expected ErrHasChildren, got %v", err)
	}

	// bottom-up deletion works
	if err := env.entries.Delete(ctx, entry.ID, masterActor); err != nil {
		t.Fatalf("entry delete: %v", err)
	}
	if err := env.ops.Delete(ctx, op.ID, masterActor); err != nil {
		t.Fatalf("operation delete after entry removal: %v", err)
	}
	if err := env.events.Delete(ctx, event.ID, masterActor); err != nil {
		t.Fatalf("event delete: %v", err)
	}
	if err := env.dists.Delete(ctx, dist.ID, masterActor); err != nil {
		t.Fatalf("distribution delete: %v", err)
	}
	if err := env.ceilings.Delete(ctx, ceiling.ID, masterActor); err != nil {
		t.Fatalf("ceiling delete: %v", err)
	}
}

func TestWorkflow_ScopingOnMutations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 506, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 5, 5)

	// clerk of a different unit cannot resize it
	otherUnit := model.Actor{UserID: 9, Role: model.RoleAuxiliary, OrgUnitID: 8, DirectorateID: 1}
	if _, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{OfficersQuota: intPtr(4)}, otherUnit); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// a director of another directorate neither
	otherDir := model.Actor{UserID: 10, Role: model.RoleDirector, DirectorateID: 2}
	if _, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{OfficersQuota: intPtr(4)}, otherDir); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// the owning unit's clerk may
	if _, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{OfficersQuota: intPtr(4)}, auxActor); err != nil {
		t.Fatalf("owning unit update: %v", err)
	}
	// a common user may not mutate at all
	if _, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{OfficersQuota: intPtr(3)}, commonActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for common role, got %v", err)
	}
}

func TestWorkflow_ParentCannotChange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 507, 6, 2025, 10, 10)
	distA := env.mustDistribution(t, ceiling.ID, 1, 5, 5)
	distB := env.mustDistribution(t, ceiling.ID, 2, 5, 5)
	event := env.mustEvent(t, distA.ID, 7, 5, 5)

	other := distB.ID
	_, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{DistributionID: &other}, masterActor)
	if !errors.Is(err, ErrParentChange) {
		t.Fatalf("expected ErrParentChange, got %v", err)
	}
	// matching parent id in the patch is fine
	same := distA.ID
	if _, err := env.events.Update(ctx, event.ID, &dto.UpdateEventRequest{DistributionID: &same}, masterActor); err != nil {
		t.Fatalf("matching parent id rejected: %v", err)
	}
}
