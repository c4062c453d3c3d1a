package service

import (
	"fmt"

	"github.com/caadpo/genesis-backend/internal/repository"
)

// ── Quota validator ──
//
// Single enforcement point for the two hierarchy invariants:
//
//   1. Σ(sibling quotas) ≤ parent ceiling, per counter, independently.
//   2. a node's quota ≥ Σ(children consumption), per counter.
//
// Callers run these checks inside Repository.InTx with the parent row locked
// (GetForUpdate), so two concurrent sibling creations cannot both observe a
// sum below the ceiling and jointly exceed it.

// QuotaExceededError is returned when a create or resize would push the
// sibling sum above the parent's ceiling. It carries the offending numbers so
// the caller can correct input without re-querying.
type QuotaExceededError struct {
	Level    string // e.g. "distribution"
	Counter  string // "officers" or "enlisted"
	Proposed int    // sibling sum including the proposal
	Ceiling  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s %s quota: proposed %d > ceiling %d",
		e.Level, e.Counter, e.Proposed, e.Ceiling)
}

// BelowConsumedError is returned when a resize would shrink a node below
// what its children have already consumed.
type BelowConsumedError struct {
	Level    string
	Counter  string
	Proposed int
	Consumed int
}

func (e *BelowConsumedError) Error() string {
	return fmt.Sprintf("%s %s quota: proposed %d < already consumed %d",
		e.Level, e.Counter, e.Proposed, e.Consumed)
}

// checkSiblingSum verifies invariant 1 for one proposal. siblings is the sum
// of the other children of the same parent (the node being updated excluded).
func checkSiblingSum(level string, siblings repository.QuotaSum, proposedOfficers, proposedEnlisted, ceilingOfficers, ceilingEnlisted int) error {
	if total := siblings.Officers + proposedOfficers; total > ceilingOfficers {
		return &QuotaExceededError{Level: level, Counter: "officers", Proposed: total, Ceiling: ceilingOfficers}
	}
	if total := siblings.Enlisted + proposedEnlisted; total > ceilingEnlisted {
		return &QuotaExceededError{Level: level, Counter: "enlisted", Proposed: total, Ceiling: ceilingEnlisted}
	}
	return nil
}

// checkConsumedFloor verifies invariant 2 for one proposal. consumed is the
// children's committed total under the node being resized.
func checkConsumedFloor(level string, consumed repository.QuotaSum, proposedOfficers, proposedEnlisted int) error {
	if proposedOfficers < consumed.Officers {
		return &BelowConsumedError{Level: level, Counter: "officers", Proposed: proposedOfficers, Consumed: consumed.Officers}
	}
	if proposedEnlisted < consumed.Enlisted {
		return &BelowConsumedError{Level: level, Counter: "enlisted", Proposed: proposedEnlisted, Consumed: consumed.Enlisted}
	}
	return nil
}
