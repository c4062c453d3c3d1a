package service

import (
	"context"
	"testing"
	"time"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
)

func entryFixture(t *testing.T, env *testEnv) (uint, uint) {
	t.Helper()
	ceiling := env.mustCeiling(t, 700, 6, 2025, 20, 20)
	dist := env.mustDistribution(t, ceiling.ID, 1, 20, 20)
	event := env.mustEvent(t, dist.ID, 7, 10, 10)
	op := env.mustOperation(t, event.ID, 10, 10)
	return op.ID, event.ID
}

func TestScheduleEntryService_WindowValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)

	starts := mustTime(t, "2025-06-10T18:00:00Z")
	_, err := env.entries.Create(ctx, &dto.CreateEntryRequest{
		OperationID:   opID,
		ServiceNumber: 9001,
		PersonName:    "J. Silva",
		PersonType:    "OFFICER",
		Quota:         1,
		StartsAt:      starts,
		EndsAt:        starts, // zero-length shift
	}, masterActor)
	if err != ErrEntryWindow {
		t.Fatalf("expected ErrEntryWindow, got %v", err)
	}

	entry := env.mustEntry(t, opID, "OFFICER", 1)
	bad := starts.Add(-time.Hour)
	if _, err := env.entries.Update(ctx, entry.ID, &dto.UpdateEntryRequest{
		EndsAt: &bad,
	}, masterActor); err != ErrEntryWindow {
		t.Fatalf("expected ErrEntryWindow on update, got %v", err)
	}
}

func TestScheduleEntryService_SetObs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "ENLISTED", 1)

	annotated, err := env.entries.SetObs(ctx, entry.ID, "swapped with Sgt. Costa", auxActor)
	if err != nil {
		t.Fatalf("set obs: %v", err)
	}
	if annotated.Obs != "swapped with Sgt. Costa" {
		t.Errorf("obs not stored: %q", annotated.Obs)
	}
	if annotated.ObsAuthorID == nil || *annotated.ObsAuthorID != auxActor.UserID {
		t.Errorf("obs author not recorded: %v", annotated.ObsAuthorID)
	}
	if annotated.ObsUpdatedAt == nil {
		t.Fatal("obs time not recorded")
	}

	// empty obs clears the note but still stamps who did it
	cleared, err := env.entries.SetObs(ctx, entry.ID, "", masterActor)
	if err != nil {
		t.Fatalf("clear obs: %v", err)
	}
	if cleared.Obs != "" {
		t.Errorf("obs not cleared: %q", cleared.Obs)
	}
	if cleared.ObsAuthorID == nil || *cleared.ObsAuthorID != masterActor.UserID {
		t.Errorf("clearing author not recorded: %v", cleared.ObsAuthorID)
	}
}

func TestScheduleEntryService_Comments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "OFFICER", 1)

	first, err := env.entries.AddComment(ctx, entry.ID, "confirmed by phone", auxActor)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if first.AuthorID != auxActor.UserID {
		t.Errorf("comment author wrong: %d", first.AuthorID)
	}
	if _, err := env.entries.AddComment(ctx, entry.ID, "vest size M", masterActor); err != nil {
		t.Fatalf("second comment: %v", err)
	}

	comments, err := env.entries.ListComments(ctx, entry.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}

	if _, err := env.entries.AddComment(ctx, 9999, "ghost", masterActor); err != ErrEntryNotFound {
		t.Errorf("expected ErrEntryNotFound for missing entry, got %v", err)
	}
}

func TestScheduleEntryService_PersonalSchedule(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	env.mustEntry(t, opID, "OFFICER", 1) // service number 9001

	// a common user reads their own schedule
	own, err := env.entries.ListPersonal(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9001, Month: 6, Year: 2025,
	}, commonActor)
	if err != nil {
		t.Fatalf("own schedule: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("expected 1 entry, got %d", len(own))
	}

	// but nobody else's
	if _, err := env.entries.ListPersonal(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9002, Month: 6, Year: 2025,
	}, commonActor); err != ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// clerks may look anyone up
	if _, err := env.entries.ListPersonal(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9001, Month: 6, Year: 2025,
	}, auxActor); err != nil {
		t.Errorf("clerk lookup failed: %v", err)
	}
}

func TestScheduleEntryService_PersonTypeImmutable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, eventID := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "OFFICER", 3)

	// UpdateEntryRequest carries no person type, so the only way consumption
	// moves between counters is delete + recreate
	q := 5
	updated, err := env.entries.Update(ctx, entry.ID, &dto.UpdateEntryRequest{Quota: &q}, masterActor)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PersonType != "OFFICER" || updated.Quota != 5 {
		t.Errorf("update changed the wrong fields: %+v", updated)
	}

	sum, err := env.repo.ScheduleEntry.SumByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum.Officers != 5 || sum.Enlisted != 0 {
		t.Errorf("consumption moved counters: %+v", sum)
	}
}

func TestScheduleEntryService_SetObsDirectorScope(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "ENLISTED", 1)

	// the fixture's distribution belongs to directorate 1
	if _, err := env.entries.SetObs(ctx, entry.ID, "checked in late", directorActor); err != nil {
		t.Fatalf("director of the owning directorate must be able to annotate: %v", err)
	}

	foreignDirector := model.Actor{UserID: 5, Role: model.RoleDirector, DirectorateID: 2}
	if _, err := env.entries.SetObs(ctx, entry.ID, "nope", foreignDirector); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for a foreign director, got %v", err)
	}
}

func TestScheduleEntryService_SetObsFrozen(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "OFFICER", 1)

	for _, next := range []model.WorkflowStatus{model.StatusAuthorized, model.StatusHomologated} {
		if _, err := env.entries.TransitionStatus(ctx, entry.ID, next, masterActor); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	if _, err := env.entries.SetObs(ctx, entry.ID, "too late", auxActor); err != ErrForbidden {
		t.Errorf("expected ErrForbidden on a homologated entry, got %v", err)
	}
	if _, err := env.entries.SetObs(ctx, entry.ID, "override", masterActor); err != nil {
		t.Errorf("privileged annotation after homologation failed: %v", err)
	}
}

func TestScheduleEntryService_PersonalQuota(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	env.mustEntry(t, opID, "OFFICER", 2) // service number 9001
	env.mustEntry(t, opID, "OFFICER", 3)

	quota, err := env.entries.PersonalQuota(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9001, Month: 6, Year: 2025,
	}, commonActor)
	if err != nil {
		t.Fatalf("personal quota: %v", err)
	}
	if quota.OfficersConsumed != 5 || quota.EnlistedConsumed != 0 || quota.TotalConsumed != 5 {
		t.Errorf("wrong totals: %+v", quota)
	}
	if quota.TotalValue != 1500 {
		t.Errorf("expected value 1500 at the officer rate, got %v", quota.TotalValue)
	}

	if _, err := env.entries.PersonalQuota(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9002, Month: 6, Year: 2025,
	}, commonActor); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for someone else's totals, got %v", err)
	}
	if _, err := env.entries.PersonalQuota(ctx, &dto.PersonalScheduleRequest{
		ServiceNumber: 9001, Month: 6, Year: 2025,
	}, auxActor); err != nil {
		t.Errorf("clerk lookup failed: %v", err)
	}
}

func TestScheduleEntryService_CommentScope(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "OFFICER", 1)

	outsider := model.Actor{UserID: 6, Role: model.RoleAuxiliary, OrgUnitID: 9, DirectorateID: 2}
	if _, err := env.entries.AddComment(ctx, entry.ID, "drive-by", outsider); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for a clerk of another unit, got %v", err)
	}
	if _, err := env.entries.AddComment(ctx, entry.ID, "mine?", commonActor); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for a common user, got %v", err)
	}
	if _, err := env.entries.AddComment(ctx, entry.ID, "roster ok", auxActor); err != nil {
		t.Errorf("unit clerk comment failed: %v", err)
	}
}

func TestScheduleEntryService_DeleteComment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	opID, _ := entryFixture(t, env)
	entry := env.mustEntry(t, opID, "OFFICER", 1)

	comment, err := env.entries.AddComment(ctx, entry.ID, "to be withdrawn", auxActor)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := env.entries.DeleteComment(ctx, entry.ID, comment.ID, directorActor); err != ErrForbidden {
		t.Errorf("expected ErrForbidden for a non-author non-privileged actor, got %v", err)
	}
	if err := env.entries.DeleteComment(ctx, entry.ID+1, comment.ID, auxActor); err != ErrCommentNotFound {
		t.Errorf("expected ErrCommentNotFound under the wrong entry, got %v", err)
	}
	if err := env.entries.DeleteComment(ctx, entry.ID, comment.ID, auxActor); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}

	comments, err := env.entries.ListComments(ctx, entry.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("comment survived deletion: %d left", len(comments))
	}

	second, err := env.entries.AddComment(ctx, entry.ID, "cleanup", auxActor)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if err := env.entries.DeleteComment(ctx, entry.ID, second.ID, masterActor); err != nil {
		t.Errorf("privileged delete of another author's comment failed: %v", err)
	}
	if err := env.entries.DeleteComment(ctx, entry.ID, second.ID, masterActor); err != ErrCommentNotFound {
		t.Errorf("expected ErrCommentNotFound after deletion, got %v", err)
	}
}
