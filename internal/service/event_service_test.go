package service

import (
	"context"
	"testing"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
)

func TestEventService_ListUnassignedActorSeesNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ceiling := env.mustCeiling(t, 500, 6, 2025, 20, 20)
	dist := env.mustDistribution(t, ceiling.ID, 1, 20, 20)
	env.mustEvent(t, dist.ID, 7, 10, 10)
	env.mustEvent(t, dist.ID, 8, 10, 10)

	// a unit role with no unit and a director with no directorate would
	// otherwise fall through as unfiltered queries
	for _, actor := range []model.Actor{
		{UserID: 8, Role: model.RoleCommon},
		{UserID: 9, Role: model.RoleDirector},
	} {
		result, err := env.events.List(ctx, &dto.EventListRequest{Month: 6, Year: 2025}, actor)
		if err != nil {
			t.Fatalf("list as unassigned role %d: %v", actor.Role, err)
		}
		if len(result) != 0 {
			t.Errorf("unassigned role %d must see nothing, got %d events", actor.Role, len(result))
		}
	}

	own, err := env.events.List(ctx, &dto.EventListRequest{Month: 6, Year: 2025}, auxActor)
	if err != nil {
		t.Fatalf("list as unit clerk: %v", err)
	}
	if len(own) != 1 || own[0].OrgUnitID != auxActor.OrgUnitID {
		t.Errorf("unit clerk must see only unit 7, got %+v", own)
	}
}
