package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/caadpo/genesis-backend/internal/dto"
)

// The fund-247 scenario: both counters are enforced independently, overshoot
// on create is fatal, and shrinking below the children's consumption is
// rejected.

func TestQuota_CeilingScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 247, 6, 2025, 10, 20)

	// Distribution A fits: 6 of 10 officers, 10 of 20 enlisted.
	distA := env.mustDistribution(t, ceiling.ID, 1, 6, 10)

	// Distribution B would overshoot officers: 6+5=11 > 10.
	_, err := env.dists.Create(ctx, &dto.CreateDistributionRequest{
		CeilingID:     ceiling.ID,
		DirectorateID: 2,
		Name:          "B",
		OfficersQuota: 5,
		EnlistedQuota: 10,
	}, masterActor)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qe.Proposed != 11 || qe.Ceiling != 10 || qe.Counter != "officers" {
		t.Errorf("wrong numbers in rejection: %+v", qe)
	}
	if !strings.Contains(qe.Error(), "proposed 11 > ceiling 10") {
		t.Errorf("rejection must carry the offending numbers: %q", qe.Error())
	}

	// An event consumes all 6 officers of A; shrinking A to 5 must fail.
	env.mustEvent(t, distA.ID, 7, 6, 0)

	_, err = env.dists.Update(ctx, distA.ID, &dto.UpdateDistributionRequest{
		OfficersQuota: intPtr(5),
	}, masterActor)
	var be *BelowConsumedError
	if !errors.As(err, &be) {
		t.Fatalf("expected BelowConsumedError, got %v", err)
	}
	if be.Proposed != 5 || be.Consumed != 6 {
		t.Errorf("wrong numbers in rejection: %+v", be)
	}
}

func TestQuota_CountersIndependent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 100, 6, 2025, 5, 100)

	// Enlisted has plenty of room; officers alone must still block.
	_, err := env.dists.Create(ctx, &dto.CreateDistributionRequest{
		CeilingID:     ceiling.ID,
		DirectorateID: 1,
		Name:          "too many officers",
		OfficersQuota: 6,
		EnlistedQuota: 1,
	}, masterActor)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) || qe.Counter != "officers" {
		t.Fatalf("expected officers QuotaExceededError, got %v", err)
	}
}

// Overshoot on update is a hard failure, same as on create.
func TestQuota_UpdateOvershootIsFatal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 300, 6, 2025, 10, 10)
	env.mustDistribution(t, ceiling.ID, 1, 6, 6)
	distB := env.mustDistribution(t, ceiling.ID, 2, 4, 4)

	_, err := env.dists.Update(ctx, distB.ID, &dto.UpdateDistributionRequest{
		OfficersQuota: intPtr(5), // 6+5=11 > 10
	}, masterActor)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError on update, got %v", err)
	}
}

func TestQuota_ExactFitAccepted(t *testing.T) {
	env := newTestEnv()

	ceiling := env.mustCeiling(t, 301, 6, 2025, 10, 10)
	env.mustDistribution(t, ceiling.ID, 1, 6, 6)
	// reaching the ceiling exactly is legal
	env.mustDistribution(t, ceiling.ID, 2, 4, 4)
}

func TestQuota_EntryChargesMatchingCounter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 302, 6, 2025, 10, 10)
	dist := env.mustDistribution(t, ceiling.ID, 1, 10, 10)
	event := env.mustEvent(t, dist.ID, 7, 10, 10)
	op := env.mustOperation(t, event.ID, 2, 10)

	// Two officer slots fit.
	env.mustEntry(t, op.ID, "OFFICER", 1)
	env.mustEntry(t, op.ID, "OFFICER", 1)

	// A third officer must be rejected even with enlisted room to spare.
	_, err := env.entries.Create(ctx, &dto.CreateEntryRequest{
		OperationID:   op.ID,
		ServiceNumber: 9002,
		PersonName:    "M. Costa",
		PersonType:    "OFFICER",
		Quota:         1,
		StartsAt:      mustTime(t, "2025-06-10T18:00:00Z"),
		EndsAt:        mustTime(t, "2025-06-11T00:00:00Z"),
	}, masterActor)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) || qe.Counter != "officers" {
		t.Fatalf("expected officers QuotaExceededError, got %v", err)
	}

	// Enlisted counter is untouched.
	env.mustEntry(t, op.ID, "ENLISTED", 1)
}

// 50 concurrent creations whose combined quota exceeds the ceiling: exactly
// enough must be accepted to reach the ceiling, never an overshoot.
func TestQuota_ConcurrentSiblingCreations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ceiling := env.mustCeiling(t, 400, 6, 2025, 30, 30)

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := env.dists.Create(ctx, &dto.CreateDistributionRequest{
				CeilingID:     ceiling.ID,
				DirectorateID: uint(n + 1),
				Name:          "concurrent",
				OfficersQuota: 1,
				EnlistedQuota: 1,
			}, masterActor)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	accepted, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			accepted++
		default:
			var qe *QuotaExceededError
			if !errors.As(err, &qe) {
				t.Fatalf("unexpected failure: %v", err)
			}
			rejected++
		}
	}
	if accepted != 30 || rejected != 20 {
		t.Fatalf("expected exactly 30 accepted / 20 rejected, got %d / %d", accepted, rejected)
	}

	sum, err := env.repo.Distribution.SumSiblings(ctx, ceiling.ID, 0)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum.Officers != 30 || sum.Enlisted != 30 {
		t.Fatalf("committed sum overshoots the ceiling: %+v", sum)
	}
}
