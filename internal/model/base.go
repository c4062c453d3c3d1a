package model

import "time"

// BaseModel carries the audit columns every business table embeds.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
}

// WorkflowStatus is the shared lifecycle automaton of events, operations and
// schedule entries: PENDING → AUTHORIZED → HOMOLOGATED, forward only.
type WorkflowStatus string

const (
	StatusPending     WorkflowStatus = "PENDING"
	StatusAuthorized  WorkflowStatus = "AUTHORIZED"
	StatusHomologated WorkflowStatus = "HOMOLOGATED"
)

// Valid reports whether s is one of the three workflow states.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAuthorized, StatusHomologated:
		return true
	}
	return false
}

func (s WorkflowStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusAuthorized:
		return 1
	case StatusHomologated:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether next is a legal forward step from s.
// The automaton never moves backwards; demotion is rejected for every role.
func (s WorkflowStatus) CanTransitionTo(next WorkflowStatus) bool {
	return next.Valid() && next.rank() > s.rank()
}

// PersonType selects which of the two quota counters a schedule entry consumes.
type PersonType string

const (
	PersonOfficer  PersonType = "OFFICER"
	PersonEnlisted PersonType = "ENLISTED"
)

// Valid reports whether t is a known personnel type.
func (t PersonType) Valid() bool {
	return t == PersonOfficer || t == PersonEnlisted
}
