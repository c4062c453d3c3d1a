package service

import (
	"context"
	"testing"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
)

func TestDistributionService_ListScopedToDirectorate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ceiling := env.mustCeiling(t, 500, 6, 2025, 20, 20)
	env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	env.mustDistribution(t, ceiling.ID, 2, 10, 10)

	all, err := env.dists.List(ctx, &dto.DistributionListRequest{Month: 6, Year: 2025}, masterActor)
	if err != nil {
		t.Fatalf("list as master: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("master must see both directorates, got %d", len(all))
	}

	own, err := env.dists.List(ctx, &dto.DistributionListRequest{Month: 6, Year: 2025}, directorActor)
	if err != nil {
		t.Fatalf("list as director: %v", err)
	}
	if len(own) != 1 || own[0].DirectorateID != directorActor.DirectorateID {
		t.Errorf("director must see only directorate 1, got %+v", own)
	}
}

func TestDistributionService_ListUnassignedActorSeesNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ceiling := env.mustCeiling(t, 500, 6, 2025, 20, 20)
	env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	env.mustDistribution(t, ceiling.ID, 2, 10, 10)

	// no directorate assignment must not read as "no filter"
	unassigned := model.Actor{UserID: 8, Role: model.RoleCommon}
	result, err := env.dists.List(ctx, &dto.DistributionListRequest{Month: 6, Year: 2025}, unassigned)
	if err != nil {
		t.Fatalf("list as unassigned actor: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("unassigned actor must see nothing, got %d distributions", len(result))
	}
}
