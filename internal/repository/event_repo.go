package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caadpo/genesis-backend/internal/model"
)

// EventFilter narrows event listings; zero values mean "no filter".
// OrgUnitMin/Max select a contiguous unit-ID range (battalion blocks).
type EventFilter struct {
	Month          int
	Year           int
	FundCode       int
	DistributionID uint
	OrgUnitID      uint
	DirectorateID  uint
	OrgUnitMin     uint
	OrgUnitMax     uint
}

// EventRepository is the organizational-unit slice data access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uint) (*model.Event, error)
	GetForUpdate(ctx context.Context, id uint) (*model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	SumSiblings(ctx context.Context, distributionID, excludeID uint) (QuotaSum, error)
	CountByDistribution(ctx context.Context, distributionID uint) (int64, error)
	// DistinctFundCodes returns the fund codes of a unit's events in a month,
	// used to scope which ceilings a unit clerk may see.
	DistinctFundCodes(ctx context.Context, orgUnitID uint, month, year int) ([]int, error)
	Update(ctx context.Context, event *model.Event) error
	// HomologateMonth promotes every non-homologated event of the month to
	// HOMOLOGATED in one statement; orgUnitID 0 means all units.
	HomologateMonth(ctx context.Context, month, year int, orgUnitID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo builds the gorm-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("OrgUnit.Directorate").
		Preload("Distribution").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	q := r.db.WithContext(ctx).
		Preload("OrgUnit").
		Preload("OrgUnit.Directorate").
		Preload("Distribution")

	if filter.Month != 0 {
		q = q.Where("events.month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("events.year = ?", filter.Year)
	}
	if filter.FundCode != 0 {
		q = q.Where("events.fund_code = ?", filter.FundCode)
	}
	if filter.DistributionID != 0 {
		q = q.Where("events.distribution_id = ?", filter.DistributionID)
	}
	if filter.OrgUnitID != 0 {
		q = q.Where("events.org_unit_id = ?", filter.OrgUnitID)
	}
	if filter.DirectorateID != 0 {
		q = q.Joins("JOIN distributions d ON d.id = events.distribution_id").
			Where("d.directorate_id = ?", filter.DirectorateID)
	}
	if filter.OrgUnitMin != 0 && filter.OrgUnitMax != 0 {
		q = q.Where("events.org_unit_id BETWEEN ? AND ?", filter.OrgUnitMin, filter.OrgUnitMax)
	}

	var events []model.Event
	err := q.Order("events.org_unit_id ASC, events.id ASC").Find(&events).Error
	return events, err
}

func (r *eventRepo) SumSiblings(ctx context.Context, distributionID, excludeID uint) (QuotaSum, error) {
	var sum QuotaSum
	q := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Select("COALESCE(SUM(officers_quota), 0) AS officers, COALESCE(SUM(enlisted_quota), 0) AS enlisted").
		Where("distribution_id = ?", distributionID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Scan(&sum).Error
	return sum, err
}

func (r *eventRepo) CountByDistribution(ctx context.Context, distributionID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("distribution_id = ?", distributionID).
		Count(&n).Error
	return n, err
}

func (r *eventRepo) DistinctFundCodes(ctx context.Context, orgUnitID uint, month, year int) ([]int, error) {
	var codes []int
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Distinct("fund_code").
		Where("org_unit_id = ? AND month = ? AND year = ?", orgUnitID, month, year).
		Pluck("fund_code", &codes).Error
	return codes, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) HomologateMonth(ctx context.Context, month, year int, orgUnitID uint) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("month = ? AND year = ? AND status <> ?", month, year, model.StatusHomologated)
	if orgUnitID != 0 {
		q = q.Where("org_unit_id = ?", orgUnitID)
	}
	result := q.Updates(map[string]interface{}{
		"status":     model.StatusHomologated,
		"updated_at": time.Now(),
	})
	return result.RowsAffected, result.Error
}

func (r *eventRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Event{}).Error
}
