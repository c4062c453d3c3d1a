package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// QuotaSum is a pair of counter totals returned by the sibling/consumption
// sum queries.
type QuotaSum struct {
	Officers int
	Enlisted int
}

// Repository aggregates the per-entity data access interfaces.
type Repository struct {
	db   *gorm.DB
	txMu sync.Mutex

	User          UserRepository
	Directorate   DirectorateRepository
	OrgUnit       OrgUnitRepository
	Ceiling       CeilingRepository
	Distribution  DistributionRepository
	Event         EventRepository
	Operation     OperationRepository
	ScheduleEntry ScheduleEntryRepository
}

// NewRepository wires the gorm implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Directorate:   NewDirectorateRepo(db),
		OrgUnit:       NewOrgUnitRepo(db),
		Ceiling:       NewCeilingRepo(db),
		Distribution:  NewDistributionRepo(db),
		Event:         NewEventRepo(db),
		Operation:     NewOperationRepo(db),
		ScheduleEntry: NewScheduleEntryRepo(db),
	}
}

// InTx runs fn inside a database transaction, handing it a Repository bound
// to that transaction. Every read-validate-write sequence of the quota
// validator goes through here so the parent row lock taken inside fn is held
// until commit.
//
// A Repository assembled by hand (no gorm handle, as in the service tests)
// has no transaction to offer; callbacks are then serialized with a mutex so
// the lock discipline still holds.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		r.txMu.Lock()
		defer r.txMu.Unlock()
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
