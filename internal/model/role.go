package model

// Role identifies an actor's permission level. The numeric values are wire
// values carried in JWT claims and stored on the users table.
type Role int

const (
	// RoleCommon can only read their own schedule entries.
	RoleCommon Role = 0
	// RoleAuxiliary is a unit-scoped clerk: manages events, operations and
	// schedule entries belonging to their own organizational unit.
	RoleAuxiliary Role = 1
	// RoleDirector is directorate-scoped: reads everything under their
	// directorate's distributions.
	RoleDirector Role = 3
	// RoleSuperintendent reads across directorates but cannot override freezes.
	RoleSuperintendent Role = 4
	// RoleMaster administers the whole hierarchy, including frozen nodes.
	RoleMaster Role = 5
	// RoleTechnical is the system maintainer role, equivalent to master.
	RoleTechnical Role = 10
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCommon, RoleAuxiliary, RoleDirector, RoleSuperintendent, RoleMaster, RoleTechnical:
		return true
	}
	return false
}

// Privileged reports whether r bypasses the HOMOLOGATED freeze and the
// directorate/unit scoping rules.
func (r Role) Privileged() bool {
	return r == RoleMaster || r == RoleTechnical
}

// Actor is the authenticated caller descriptor the auth layer supplies to
// every mutation. OrgUnitID/DirectorateID are zero when the user has no
// assignment.
type Actor struct {
	UserID        uint
	Role          Role
	OrgUnitID     uint
	DirectorateID uint
	ServiceNumber int
}
