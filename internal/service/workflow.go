package service

import (
	"errors"

	"github.com/caadpo/genesis-backend/internal/model"
)

// ── Workflow / authorization engine ──
//
// One capability table instead of role-ID branching scattered through the
// mutation paths. Every structural mutation and status transition funnels
// through these checks before the quota validator runs.

var (
	// ErrForbidden is the generic role/scope rejection.
	ErrForbidden = errors.New("actor is not allowed to perform this action")
	// ErrFrozen rejects structural edits under a homologated node.
	ErrFrozen = errors.New("node or ancestor is homologated; only privileged roles may change it")
	// ErrInvalidTransition rejects backward or unknown status moves.
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrParentChange rejects moving a node to a different parent.
	ErrParentChange = errors.New("parent cannot be changed")
	// ErrHasChildren blocks deletion of a node with descendants.
	ErrHasChildren = errors.New("node still has children")
	// ErrLateEvent rejects non-privileged creation or edit of late events.
	ErrLateEvent = errors.New("late events require a privileged role")
)

// hierarchy levels the capability table is keyed by.
type level int

const (
	levelCeiling level = iota
	levelDistribution
	levelEvent
	levelOperation
	levelEntry
)

func (l level) String() string {
	switch l {
	case levelCeiling:
		return "ceiling"
	case levelDistribution:
		return "distribution"
	case levelEvent:
		return "event"
	case levelOperation:
		return "operation"
	case levelEntry:
		return "schedule entry"
	}
	return "node"
}

// scope is how far a role's mutation rights reach at a level.
type scope int

const (
	scopeDenied scope = iota
	scopeUnit         // own organizational unit only
	scopeDirectorate  // any unit under the actor's directorate
	scopeGlobal
)

// mutationScope is the capability table: which roles may create, resize or
// delete at each level, and within which boundary. Roles absent from a row
// are denied.
var mutationScope = map[level]map[model.Role]scope{
	levelCeiling: {
		model.RoleMaster:    scopeGlobal,
		model.RoleTechnical: scopeGlobal,
	},
	levelDistribution: {
		model.RoleMaster:         scopeGlobal,
		model.RoleTechnical:      scopeGlobal,
		model.RoleSuperintendent: scopeGlobal,
		model.RoleDirector:       scopeDirectorate,
	},
	levelEvent: {
		model.RoleMaster:         scopeGlobal,
		model.RoleTechnical:      scopeGlobal,
		model.RoleSuperintendent: scopeGlobal,
		model.RoleDirector:       scopeDirectorate,
		model.RoleAuxiliary:      scopeUnit,
	},
	levelOperation: {
		model.RoleMaster:         scopeGlobal,
		model.RoleTechnical:      scopeGlobal,
		model.RoleSuperintendent: scopeGlobal,
		model.RoleDirector:       scopeDirectorate,
		model.RoleAuxiliary:      scopeUnit,
	},
	levelEntry: {
		model.RoleMaster:         scopeGlobal,
		model.RoleTechnical:      scopeGlobal,
		model.RoleSuperintendent: scopeGlobal,
		model.RoleDirector:       scopeDirectorate,
		model.RoleAuxiliary:      scopeUnit,
	},
}

// nodeScope locates a node for the scoping check. Zero fields mean "no such
// boundary applies" (a ceiling has neither unit nor directorate).
type nodeScope struct {
	OrgUnitID     uint
	DirectorateID uint
}

// inScope reports whether the actor's assignment covers the node under the
// given reach.
func inScope(actor model.Actor, sc scope, node nodeScope) bool {
	switch sc {
	case scopeGlobal:
		return true
	case scopeDirectorate:
		return actor.DirectorateID != 0 && actor.DirectorateID == node.DirectorateID
	case scopeUnit:
		return actor.OrgUnitID != 0 && actor.OrgUnitID == node.OrgUnitID
	}
	return false
}

// canMutate authorizes a structural edit (create, resize, delete) at a level.
// frozen is true when the node's own status or any ancestor's status is
// HOMOLOGATED; only privileged roles get past that.
func canMutate(actor model.Actor, lv level, node nodeScope, frozen bool) error {
	if actor.Role.Privileged() {
		return nil
	}
	if frozen {
		return ErrFrozen
	}
	sc, ok := mutationScope[lv][actor.Role]
	if !ok || sc == scopeDenied {
		return ErrForbidden
	}
	if !inScope(actor, sc, node) {
		return ErrForbidden
	}
	return nil
}

// canTransition authorizes a workflow status move. The automaton is forward
// only; homologation is restricted to privileged roles except the
// self-service case: an actor tied to the owning unit may homologate their
// own unit's event.
func canTransition(actor model.Actor, lv level, node nodeScope, current, next model.WorkflowStatus) error {
	if !current.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	if actor.Role.Privileged() {
		return nil
	}
	if next == model.StatusHomologated {
		if lv == levelEvent && actor.OrgUnitID != 0 && actor.OrgUnitID == node.OrgUnitID {
			return nil
		}
		return ErrForbidden
	}
	sc, ok := mutationScope[lv][actor.Role]
	if !ok || sc == scopeDenied {
		return ErrForbidden
	}
	if !inScope(actor, sc, node) {
		return ErrForbidden
	}
	return nil
}
